package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	ollamaModel = "llama3.2"
	ollamaSeed  = 42

	ollamaDoneReasonLength = "length"
)

// OllamaConfig configures the Ollama engine.
type OllamaConfig struct {
	// Host is the absolute URL of the Ollama server.
	Host string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// OllamaEngine summarizes with a model served by a local Ollama instance.
type OllamaEngine struct {
	client *api.Client
	model  string
	log    *slog.Logger
}

// NewOllamaEngine connects to the server and makes sure the model weights
// are present, pulling them when they are not.
func NewOllamaEngine(ctx context.Context, cfg OllamaConfig, log *slog.Logger) (*OllamaEngine, error) {
	host := strings.TrimSpace(cfg.Host)

	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse host: %w", err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("host must be an absolute URL: %q", host)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	e := &OllamaEngine{
		client: api.NewClient(base, httpClient),
		model:  ollamaModel,
		log:    log,
	}

	if err = e.ensureModel(ctx); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *OllamaEngine) Name() string {
	return "ollama"
}

// Summarize runs a single non-streaming generation.
func (e *OllamaEngine) Summarize(ctx context.Context, req Request) (string, error) {
	stream := false

	var (
		out        strings.Builder
		doneReason string
	)

	err := e.client.Generate(ctx, &api.GenerateRequest{
		Model:  e.model,
		System: instructions(req),
		Prompt: req.Text,
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0,
			"seed":        ollamaSeed,
			"num_predict": req.MaxLength,
		},
	}, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		if resp.Done {
			doneReason = resp.DoneReason
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if doneReason == ollamaDoneReasonLength {
		return "", fmt.Errorf(
			"%w (reason = %s, numPredict = %d)",
			ErrIncomplete,
			doneReason,
			req.MaxLength,
		)
	}

	summary := strings.TrimSpace(out.String())
	if summary == "" {
		return "", fmt.Errorf("%w (doneReason = %s)", ErrEmptyOutput, doneReason)
	}

	return summary, nil
}

func (e *OllamaEngine) ensureModel(ctx context.Context) error {
	list, err := e.client.List(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	for _, m := range list.Models {
		if sameModel(m.Name, e.model) || sameModel(m.Model, e.model) {
			e.log.DebugContext(ctx, "Model is present locally",
				"model", e.model)

			return nil
		}
	}

	e.log.InfoContext(ctx, "Model is missing locally so it will be pulled",
		"model", e.model)

	err = e.client.Pull(ctx, &api.PullRequest{Model: e.model}, func(p api.ProgressResponse) error {
		e.log.DebugContext(ctx, "Pulling model",
			"model", e.model,
			"status", p.Status,
			"completed", p.Completed,
			"total", p.Total)

		return nil
	})
	if err != nil {
		return fmt.Errorf("pull model: %w", err)
	}

	e.log.InfoContext(ctx, "Model is pulled",
		"model", e.model)

	return nil
}

func sameModel(name, model string) bool {
	return strings.TrimSuffix(name, ":latest") == strings.TrimSuffix(model, ":latest")
}
