package cli

import (
	"context"
	"log/slog"

	"textsum/internal/config"
	"textsum/internal/summarizer"
)

// NewEngine initializes the configured engine. A backend that cannot be
// initialized is replaced by one that always fails, so the run still ends with
// the fallback text.
func NewEngine(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Engine {
	switch cfg.Engine {
	case config.EngineOpenAI:
		e, err := summarizer.NewOpenAIEngine(summarizer.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to create OpenAI engine so fallback will be used",
				"error", err,
				"envVar", "OPENAI_API_KEY")

			return summarizer.Unavailable(err)
		}

		log.InfoContext(ctx, "OpenAI engine is initialized",
			"provider", "openai")

		return e
	case config.EngineOllama:
		e, err := summarizer.NewOllamaEngine(ctx, summarizer.OllamaConfig{Host: cfg.OllamaHost}, log)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create Ollama engine so fallback will be used",
				"error", err,
				"host", cfg.OllamaHost)

			return summarizer.Unavailable(err)
		}

		log.InfoContext(ctx, "Ollama engine is initialized",
			"provider", "ollama",
			"host", cfg.OllamaHost)

		return e
	default:
		log.InfoContext(ctx, "Extractive engine is initialized",
			"provider", "extractive")

		return summarizer.NewExtractiveEngine()
	}
}
