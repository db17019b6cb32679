package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/gemini"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/htmltomarkdown"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/news"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/scrape"
	logslog "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/slog"
	"github.com/alecthomas/kong"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewsService used by commands. Wired by Run, overridable for tests.
	NewsService relnews.NewsService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("relnewsd"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'relnewsd --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Each command carries its own source flags; pick them off the command
	// kong resolved rather than guessing from argv.
	kind, model, rps := cli.SourceFlags(kongCtx.Command())

	if m.NewsService == nil {
		source, err := buildSource(ctx, kind, model, rps, logger, stderr)
		if err != nil {
			return err
		}
		m.NewsService = news.NewService(source, logger)
	}
	deps.News = m.NewsService

	return kongCtx.Run(deps)
}

// buildSource wires the configured release source. A missing API key yields
// a nil source: the service stays up and reports the missing configuration
// on each request instead of crashing at startup.
func buildSource(ctx context.Context, kind, model string, rps float64, logger *slog.Logger, stderr io.Writer) (relnews.ReleaseSource, error) {
	var source relnews.ReleaseSource
	switch kind {
	case "scrape":
		source = scrape.NewSource(nil, htmltomarkdown.NewConverter(), rps)
	default:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, nil
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		source = gemini.NewSource(client, model)
	}

	return logslog.NewLoggingSource(source, logger), nil
}
