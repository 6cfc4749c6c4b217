package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const openAIModel = openai.ChatModelGPT4oMini

// OpenAIConfig configures the OpenAI engine.
type OpenAIConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint when non-empty.
	BaseURL string
}

// OpenAIEngine calls OpenAI's Responses API to produce summaries.
type OpenAIEngine struct {
	client openai.Client
}

// NewOpenAIEngine builds a new engine instance. The client never retries.
func NewOpenAIEngine(cfg OpenAIConfig) (*OpenAIEngine, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIEngine{
		client: openai.NewClient(opts...),
	}, nil
}

func (e *OpenAIEngine) Name() string {
	return "openai"
}

// Summarize requests a deterministic summary capped at req.MaxLength tokens.
func (e *OpenAIEngine) Summarize(ctx context.Context, req Request) (string, error) {
	resp, err := e.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openAIModel,
		MaxOutputTokens: openai.Int(int64(req.MaxLength)),
		Temperature:     openai.Float(0),
		Store:           openai.Bool(false),
		Instructions:    openai.String(instructions(req)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.Status == "incomplete" {
		return "", fmt.Errorf(
			"%w (reason = %s, maxOutputTokens = %d)",
			ErrIncomplete,
			resp.IncompleteDetails.Reason,
			req.MaxLength,
		)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", fmt.Errorf("%w (status = %s)", ErrEmptyOutput, resp.Status)
	}

	return summary, nil
}
