// Package llm adapts external large-language-model completion
// providers behind a minimal Completer interface. The classification
// pipeline treats a provider as an opaque prompt → text function;
// provider identity, auth, and retry policy live here.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Completer is the contract the classification pipeline depends on.
// Implementations must honor ctx for cancellation and deadlines.
type Completer interface {
	// Complete sends a system + user prompt pair and returns the raw
	// assistant text.
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrEmptyCompletion is returned when the provider answers with no
// choices or blank content.
var ErrEmptyCompletion = errors.New("llm: provider returned empty completion")

// OpenAI is a Completer backed by an OpenAI-compatible chat
// completion endpoint.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// OpenAIOptions configures the OpenAI completer.
type OpenAIOptions struct {
	APIKey  string
	BaseURL string        // optional; for OpenAI-compatible gateways
	Model   string        // defaults to gpt-4o-mini
	Timeout time.Duration // per-call deadline; defaults to 10s
}

// NewOpenAI constructs an OpenAI completer.
func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("llm: api key required")
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete implements Completer. Temperature is pinned to zero so the
// structured-output contract stays as deterministic as the provider
// allows.
func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
