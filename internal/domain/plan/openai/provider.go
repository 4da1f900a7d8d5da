// Package openai adapts an OpenAI-compatible chat completion endpoint to
// the plan.Provider interface.
package openai

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sashabaranov/go-openai"

	"matmind-server-go/internal/domain/plan"
	"matmind-server-go/internal/platform/errors"
)

// Config carries the provider settings from the server configuration.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

type provider struct {
	client  *openai.Client
	model   string
	maxTok  int
	temp    float32
	timeout time.Duration
}

// New builds a plan provider over the configured endpoint.
func New(cfg Config) (plan.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.KindConfig, "openai.new", "API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New(errors.KindConfig, "openai.new", "model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &provider{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		maxTok:  cfg.MaxTokens,
		temp:    cfg.Temperature,
		timeout: timeout,
	}, nil
}

func (p *provider) Model() string { return p.model }

func (p *provider) GeneratePlan(ctx context.Context, profile plan.Profile) (*plan.TrainingPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temp,
		MaxTokens:   p.maxTok,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: plan.BuildStructuredInstruction(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: plan.BuildPrompt(profile),
			},
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, errors.Wrap(errors.KindPlan, "openai.generate_plan", "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New(errors.KindPlan, "openai.generate_plan", "no response choices")
	}

	content := resp.Choices[0].Message.Content
	result, err := decodePlan(content)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// decodePlan parses the model output into a TrainingPlan. Some models wrap
// JSON in a fenced code block even when asked not to, so fences are
// stripped before decoding.
func decodePlan(content string) (*plan.TrainingPlan, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result plan.TrainingPlan
	if err := sonic.UnmarshalString(text, &result); err != nil {
		return nil, errors.Wrap(errors.KindPlan, "openai.decode_plan", "model returned non-JSON plan", err)
	}
	if result.Summary == "" {
		return nil, errors.New(errors.KindPlan, "openai.decode_plan", "model plan is missing a summary")
	}
	result.RawResponse = content
	return &result, nil
}
