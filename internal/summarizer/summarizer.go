package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"textsum/internal/text"
)

const (
	// MinLength and MaxLength bound every summary, in the engine's units.
	MinLength = 50
	MaxLength = 150

	// Fallback is printed instead of a summary when summarization fails.
	Fallback = "Could not summarize the text."

	diagnosticFormat = "Error summarizing text: %v\n"
)

var (
	ErrEmptyInput        = errors.New("input is empty")
	ErrEmptyOutput       = errors.New("output text is missing")
	ErrIncomplete        = errors.New("response is incomplete")
	ErrNoWords           = errors.New("input has no words")
	ErrUnsupportedScript = errors.New("unsupported script")
	ErrInvalidBounds     = errors.New("invalid length bounds")
)

// Request describes the payload for a summary request.
type Request struct {
	// Text contains the normalized plain text to summarise.
	Text string
	// MinLength is the lower bound of the summary length.
	MinLength int
	// MaxLength is the upper bound of the summary length.
	MaxLength int
}

// Engine produces a single summary for a given request.
type Engine interface {
	Name() string
	Summarize(ctx context.Context, req Request) (string, error)
}

// Summarizer wraps an Engine and never fails: any engine error is reported
// to the diagnostic writer and replaced by Fallback.
type Summarizer struct {
	engine Engine
	diag   io.Writer
	log    *slog.Logger
}

func New(engine Engine, diag io.Writer, log *slog.Logger) *Summarizer {
	if engine == nil {
		engine = Unavailable(errors.New("engine is not configured"))
	}
	if diag == nil {
		diag = io.Discard
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Summarizer{
		engine: engine,
		diag:   diag,
		log:    log,
	}
}

// Summarize returns the summary of input or Fallback.
func (s *Summarizer) Summarize(ctx context.Context, input string) string {
	summary, err := s.summarize(ctx, input)
	if err != nil {
		if _, writeErr := fmt.Fprintf(s.diag, diagnosticFormat, err); writeErr != nil {
			s.log.ErrorContext(ctx, "Failed to write diagnostic",
				"error", writeErr)
		}

		s.log.ErrorContext(ctx, "Failed to summarize text so fallback will be used",
			"error", err,
			"engine", s.engine.Name(),
			"inputBytes", len(input))

		return Fallback
	}

	s.log.InfoContext(ctx, "Text is summarized",
		"engine", s.engine.Name(),
		"inputBytes", len(input),
		"summaryBytes", len(summary))

	return summary
}

func (s *Summarizer) summarize(ctx context.Context, input string) (summary string, err error) {
	defer func() {
		if r := recover(); r != nil {
			summary = ""
			err = fmt.Errorf("engine panicked: %v", r)
		}
	}()

	normalized := text.Normalize(input)
	if normalized == "" {
		return "", ErrEmptyInput
	}

	summary, err = s.engine.Summarize(ctx, Request{
		Text:      normalized,
		MinLength: MinLength,
		MaxLength: MaxLength,
	})
	if err != nil {
		return "", err
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", ErrEmptyOutput
	}

	return summary, nil
}

type unavailableEngine struct {
	err error
}

// Unavailable returns an Engine that fails every call with err. It stands in
// for an engine whose initialization failed.
func Unavailable(err error) Engine {
	return unavailableEngine{err: err}
}

func (unavailableEngine) Name() string {
	return "unavailable"
}

func (e unavailableEngine) Summarize(context.Context, Request) (string, error) {
	return "", fmt.Errorf("engine is unavailable: %w", e.err)
}

func instructions(req Request) string {
	return fmt.Sprintf(`Summarize the text.

Rules:
- Between %d and %d tokens; shorter only when the text itself is shorter.
- One paragraph of plain prose, no lists, no headings.
- Keep the core ideas and critical context (dates, numbers, names).
- Neutral tone.
- Write in the same language as the input.`, req.MinLength, req.MaxLength)
}
