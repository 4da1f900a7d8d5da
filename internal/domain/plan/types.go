// Package plan generates personalized BJJ training plans from an athlete
// profile, using an OpenAI-compatible model with a deterministic built-in
// fallback when the model is unavailable.
package plan

import "strings"

// Profile is the athlete questionnaire submitted from the onboarding flow.
type Profile struct {
	BeltRank          string   `json:"beltRank"`
	BodyType          string   `json:"bodyType"`
	TrainingFrequency string   `json:"trainingFrequency"`
	PrimaryGoal       string   `json:"primaryGoal"`
	Timeframe         string   `json:"timeframe"`
	Challenges        string   `json:"challenges,omitempty"`
	FocusAreas        []string `json:"focusAreas,omitempty"`
	OutputStyle       string   `json:"outputStyle,omitempty"`
}

// Sanitized returns a copy with angle brackets stripped from free-text
// fields so profile values can be embedded in prompts and summaries.
func (p Profile) Sanitized() Profile {
	clean := func(s string) string {
		return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(s))
	}

	out := Profile{
		BeltRank:          clean(p.BeltRank),
		BodyType:          clean(p.BodyType),
		TrainingFrequency: clean(p.TrainingFrequency),
		PrimaryGoal:       clean(p.PrimaryGoal),
		Timeframe:         clean(p.Timeframe),
		Challenges:        clean(p.Challenges),
		OutputStyle:       clean(p.OutputStyle),
	}
	for _, area := range p.FocusAreas {
		if a := clean(area); a != "" {
			out.FocusAreas = append(out.FocusAreas, a)
		}
	}
	return out
}

// HasFocusArea reports whether the profile selected the named focus area.
func (p Profile) HasFocusArea(name string) bool {
	for _, area := range p.FocusAreas {
		if area == name {
			return true
		}
	}
	return false
}

// TrainingPlan is the structured plan shown on the plan page. Each coach
// section groups advice lists under a persona the UI renders as a card.
type TrainingPlan struct {
	Summary               string                 `json:"summary"`
	RawResponse           string                 `json:"rawResponse,omitempty"`
	TechnicalCoach        *TechnicalCoach        `json:"technicalCoach,omitempty"`
	MentalCoach           *MentalCoach           `json:"mentalCoach,omitempty"`
	RecoverySpecialist    *RecoverySpecialist    `json:"recoverySpecialist,omitempty"`
	StrengthCoach         *StrengthCoach         `json:"strengthCoach,omitempty"`
	CompetitionStrategist *CompetitionStrategist `json:"competitionStrategist,omitempty"`
	SupportiveFriend      *SupportiveFriend      `json:"supportiveFriend,omitempty"`
}

type TechnicalCoach struct {
	Drills       []string `json:"drills"`
	Techniques   []string `json:"techniques"`
	RollingFocus []string `json:"rollingFocus"`
}

type MentalCoach struct {
	MindsetShifts   []string `json:"mindsetShifts"`
	CompetitionPrep []string `json:"competitionPrep"`
	MentalTools     []string `json:"mentalTools"`
}

type RecoverySpecialist struct {
	Mobility         []string `json:"mobility"`
	Recovery         []string `json:"recovery"`
	InjuryPrevention []string `json:"injuryPrevention"`
}

type StrengthCoach struct {
	Conditioning     []string `json:"conditioning"`
	StrengthTraining []string `json:"strengthTraining"`
	EnergySystems    []string `json:"energySystems"`
}

type CompetitionStrategist struct {
	Gameplan      []string `json:"gameplan"`
	MatchAnalysis []string `json:"matchAnalysis"`
	Preparation   []string `json:"preparation"`
}

type SupportiveFriend struct {
	Motivation     []string `json:"motivation"`
	Accountability []string `json:"accountability"`
	Encouragement  []string `json:"encouragement"`
}

// Result is what Generate hands back to the transport layer.
type Result struct {
	Plan     *TrainingPlan `json:"plan"`
	Model    string        `json:"model"`
	Fallback bool          `json:"fallback"`
	Cached   bool          `json:"cached"`
}
