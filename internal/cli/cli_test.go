package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"textsum/internal/cli"
	"textsum/internal/config"
	"textsum/internal/summarizer"
	"textsum/internal/text"
)

const solarParagraph = `Solar power has become the cheapest source of new electricity in many
countries. The price of photovoltaic modules fell by roughly ninety percent
during the last decade, driven by manufacturing scale and steady improvements
in cell efficiency. Utilities now build large solar farms in deserts and on
former farmland, while households install panels on their roofs. Because the
sun does not shine at night, solar power must be paired with storage or other
sources. Battery prices have dropped as well, so many new solar projects are
built with batteries that shift midday energy into the evening peak. Grid
operators are learning to manage the rapid swings in output caused by passing
clouds. Some regions already produce more solar power at noon than they can
use, which pushes wholesale prices below zero. Engineers expect that better
transmission lines, flexible demand and long duration storage will let solar
power supply a much larger share of electricity in the coming decades.`

type failingEngine struct{}

func (failingEngine) Name() string {
	return "failing"
}

func (failingEngine) Summarize(context.Context, summarizer.Request) (string, error) {
	return "", errors.New("CUDA out of memory")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func run(t *testing.T, engine summarizer.Engine, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	factoryCalls := 0
	cmd := cli.NewCommand(func(context.Context) summarizer.Engine {
		factoryCalls++

		return engine
	}, slog.New(slog.DiscardHandler), "1.2.3")

	var stdout, stderr bytes.Buffer
	cmd.SetIn(stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	if factoryCalls > 1 {
		t.Fatalf("expected the engine to be built at most once, got %d", factoryCalls)
	}

	return stdout.String(), stderr.String(), err
}

func TestCommandPrintsSummary(t *testing.T) {
	stdout, stderr, err := run(t, summarizer.NewExtractiveEngine(), strings.NewReader(solarParagraph))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stderr != "" {
		t.Fatalf("expected no diagnostic, got %q", stderr)
	}

	if !strings.HasSuffix(stdout, "\n") {
		t.Fatalf("expected a trailing newline, got %q", stdout)
	}

	words := text.CountWords(stdout)
	if words < summarizer.MinLength || words > summarizer.MaxLength {
		t.Fatalf("summary has %d words: %q", words, stdout)
	}

	if words >= text.CountWords(solarParagraph) {
		t.Fatalf("expected summary to be shorter than input")
	}
}

func TestCommandEmptyInputPrintsFallback(t *testing.T) {
	stdout, stderr, err := run(t, summarizer.NewExtractiveEngine(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout != summarizer.Fallback+"\n" {
		t.Fatalf("unexpected output: %q", stdout)
	}

	if stderr != "Error summarizing text: input is empty\n" {
		t.Fatalf("unexpected diagnostic: %q", stderr)
	}
}

func TestCommandUnsupportedScriptPrintsFallback(t *testing.T) {
	input := "太陽光発電は多くの国で最も安い新しい電力源になった。"

	stdout, stderr, err := run(t, summarizer.NewExtractiveEngine(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout != summarizer.Fallback+"\n" {
		t.Fatalf("unexpected output: %q", stdout)
	}

	if !strings.Contains(stderr, "Error summarizing text: unsupported script") {
		t.Fatalf("unexpected diagnostic: %q", stderr)
	}
}

func TestCommandEngineFailureDoesNotFail(t *testing.T) {
	stdout, stderr, err := run(t, failingEngine{}, strings.NewReader(solarParagraph))
	if err != nil {
		t.Fatalf("expected success despite engine failure, got %v", err)
	}

	if stdout != summarizer.Fallback+"\n" {
		t.Fatalf("unexpected output: %q", stdout)
	}

	if stderr != "Error summarizing text: CUDA out of memory\n" {
		t.Fatalf("unexpected diagnostic: %q", stderr)
	}
}

func TestCommandHTMLInput(t *testing.T) {
	html := "<html><body><nav>Menu</nav><main><p>" + solarParagraph +
		"</p><script>var tracking = true;</script></main></body></html>"

	stdout, _, err := run(t, summarizer.NewExtractiveEngine(), strings.NewReader(html), "--html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stdout, "<") || strings.Contains(stdout, "tracking") || strings.Contains(stdout, "Menu") {
		t.Fatalf("expected markup to be stripped, got %q", stdout)
	}

	if words := text.CountWords(stdout); words < summarizer.MinLength {
		t.Fatalf("summary has %d words: %q", words, stdout)
	}
}

func TestCommandReadError(t *testing.T) {
	if _, _, err := run(t, summarizer.NewExtractiveEngine(), errReader{}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestCommandRejectsArguments(t *testing.T) {
	if _, _, err := run(t, summarizer.NewExtractiveEngine(), strings.NewReader("x"), "file.txt"); err == nil {
		t.Fatalf("expected error for positional arguments")
	}
}

func TestCommandVersion(t *testing.T) {
	stdout, _, err := run(t, summarizer.NewExtractiveEngine(), strings.NewReader(""), "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout, "1.2.3") {
		t.Fatalf("expected version in output, got %q", stdout)
	}
}

func TestNewEngine(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "extractive", cfg: config.Config{Engine: config.EngineExtractive}, want: "extractive"},
		{name: "openai", cfg: config.Config{Engine: config.EngineOpenAI, OpenAIAPIKey: "sk-test"}, want: "openai"},
		{name: "openai without key", cfg: config.Config{Engine: config.EngineOpenAI}, want: "unavailable"},
		{name: "ollama with bad host", cfg: config.Config{Engine: config.EngineOllama, OllamaHost: "::"}, want: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cli.NewEngine(ctx, tt.cfg, log).Name(); got != tt.want {
				t.Fatalf("expected %s engine, got %s", tt.want, got)
			}
		})
	}
}
