package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	EngineExtractive = "extractive"
	EngineOpenAI     = "openai"
	EngineOllama     = "ollama"
)

type Config struct {
	Engine        string     `env:"SUMMARIZER_ENGINE"`
	OpenAIAPIKey  string     `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string     `env:"OPENAI_BASE_URL"`
	OllamaHost    string     `env:"OLLAMA_HOST"       envDefault:"http://127.0.0.1:11434"`
	LogLevel      slog.Level `env:"LOG_LEVEL"         envDefault:"warn"`
	LogFile       string     `env:"LOG_FILE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return LoadFrom(env.Options{})
}

// LoadFrom is Load with explicit parser options, e.g. a fixed environment.
func LoadFrom(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)
	cfg.OllamaHost = strings.TrimSpace(cfg.OllamaHost)
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)

	if cfg.Engine == "" {
		cfg.Engine = EngineExtractive
		if cfg.OpenAIAPIKey != "" {
			cfg.Engine = EngineOpenAI
		}
	}

	switch cfg.Engine {
	case EngineExtractive, EngineOpenAI, EngineOllama:
	default:
		return Config{}, fmt.Errorf("unknown SUMMARIZER_ENGINE %q", cfg.Engine)
	}

	return cfg, nil
}
