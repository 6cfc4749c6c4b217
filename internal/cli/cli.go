package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"textsum/internal/document"
	"textsum/internal/summarizer"
)

// EngineFactory builds the process-wide engine. It is called once per run.
type EngineFactory func(ctx context.Context) summarizer.Engine

// NewCommand returns the root command. Summarization failures are printed as
// the fallback text and never make the command fail.
func NewCommand(newEngine EngineFactory, log *slog.Logger, version string) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "textsum",
		Short: "Summarize text read from standard input",
		Long: `Textsum reads a document from standard input and prints its summary.

The summary is between 50 and 150 units long (words for the extractive
engine, tokens for model backends). When summarization fails the text
"Could not summarize the text." is printed and the reason goes to stderr.

The engine is selected with SUMMARIZER_ENGINE (extractive, openai, ollama).`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s := summarizer.New(newEngine(ctx), cmd.ErrOrStderr(), log)

			input, err := readInput(cmd.InOrStdin(), html)
			if err != nil {
				return err
			}

			if _, err = fmt.Fprintln(cmd.OutOrStdout(), s.Summarize(ctx, input)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false,
		"parse input as HTML and summarize its main content")

	return cmd
}

func readInput(r io.Reader, html bool) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	if !html {
		return string(data), nil
	}

	extracted, err := document.ExtractText(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	return extracted, nil
}
