package plan

import (
	"fmt"
	"strings"
)

// FallbackPlan returns the built-in plan served when the model provider
// is unreachable or returns an unusable response. It is deterministic for
// a given profile so repeated failures render the same page.
func FallbackPlan(profile Profile) *TrainingPlan {
	p := profile.Sanitized()

	summary := fmt.Sprintf(
		"Personalized training plan for %s belt focusing on %s over %s. "+
			"This plan addresses your specific challenges and leverages your %s body type for optimal development.",
		p.BeltRank, strings.ReplaceAll(p.PrimaryGoal, "-", " "), p.Timeframe, p.BodyType)

	return &TrainingPlan{
		Summary: summary,
		TechnicalCoach: &TechnicalCoach{
			Drills: []string{
				"Guard retention drills focusing on hip mobility",
				"Takedown entries from standing position",
				"Submission chains from dominant positions",
				"Escape sequences from bad positions",
			},
			Techniques: []string{
				"Closed guard attacks and sweeps",
				"Half guard recovery techniques",
				"Side control escapes and transitions",
				"Back control defense and escapes",
			},
			RollingFocus: []string{
				"Focus on position before submission",
				"Work on maintaining dominant positions",
				"Practice specific scenarios repeatedly",
				"Emphasize smooth transitions between positions",
			},
		},
		MentalCoach: &MentalCoach{
			MindsetShifts: []string{
				"Embrace the learning process over winning",
				"View tapping as information gathering",
				"Focus on small improvements each session",
				"Develop patience in your game development",
			},
			CompetitionPrep: []string{
				"Visualize match scenarios regularly",
				"Practice competition-specific warm-ups",
				"Develop pre-match routines",
				"Study video of potential opponents",
			},
			MentalTools: []string{
				"Breathing techniques for stress management",
				"Positive self-talk during difficult moments",
				"Goal setting for each training session",
				"Mindfulness practices for focus improvement",
			},
		},
		RecoverySpecialist: &RecoverySpecialist{
			Mobility: []string{
				"Hip flexor stretches for guard work",
				"Shoulder mobility for arm positioning",
				"Spinal rotation exercises",
				"Ankle mobility for better base",
			},
			Recovery: []string{
				"Proper sleep schedule (7-9 hours)",
				"Post-training stretching routine",
				"Hydration and nutrition timing",
				"Active recovery on rest days",
			},
			InjuryPrevention: []string{
				"Proper warm-up before training",
				"Strength training for joint stability",
				"Listen to your body's signals",
				"Regular massage or soft tissue work",
			},
		},
		StrengthCoach: &StrengthCoach{
			Conditioning: []string{
				"BJJ-specific cardio intervals",
				"Grip strength endurance training",
				"Core stability exercises",
				"Functional movement patterns",
			},
			StrengthTraining: []string{
				"Compound movements (squats, deadlifts)",
				"Pull-ups and rowing exercises",
				"Single-leg stability work",
				"Rotational power development",
			},
			EnergySystems: []string{
				"Alactic power for explosive movements",
				"Aerobic base for recovery between rounds",
				"Lactate threshold for sustained effort",
				"Neuromuscular coordination drills",
			},
		},
		CompetitionStrategist: &CompetitionStrategist{
			Gameplan: []string{
				"Develop A, B, and C game strategies",
				"Identify your strongest positions",
				"Plan for different opponent types",
				"Practice competition-specific techniques",
			},
			MatchAnalysis: []string{
				"Record and review your rolls",
				"Identify recurring problems",
				"Study successful competitors in your division",
				"Analyze your win/loss patterns",
			},
			Preparation: []string{
				"Simulate competition conditions in training",
				"Practice your competition game plan",
				"Mental rehearsal of match scenarios",
				"Physical preparation and weight management",
			},
		},
		SupportiveFriend: &SupportiveFriend{
			Motivation: []string{
				"Remember why you started BJJ",
				"Celebrate small victories and progress",
				"Connect with your training partners",
				"Set achievable short-term goals",
			},
			Accountability: []string{
				"Track your training sessions",
				"Set weekly technique goals",
				"Find a training partner for accountability",
				"Regular check-ins on your progress",
			},
			Encouragement: []string{
				"Every black belt was once a beginner",
				"Consistency beats intensity over time",
				"Your unique style is developing with each roll",
				"Trust the process and enjoy the journey",
			},
		},
	}
}
