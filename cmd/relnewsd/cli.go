package main

import (
	"context"
	"io"
	"log/slog"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	News   relnews.NewsService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Run the release-news HTTP API server"`
	News  NewsCmd  `cmd:"" help:"Print release news for a component"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr   string  `default:":8080" help:"Listen address"`
	Source string  `enum:"gemini,scrape" default:"gemini" help:"Release source (gemini or scrape)"`
	Model  string  `help:"Gemini model (defaults to the package default)"`
	RPS    float64 `default:"1" help:"Request rate against the vendor site (scrape source only)"`
}

// NewsCmd is the "news" subcommand.
type NewsCmd struct {
	Component string  `arg:"" help:"Component ID (oneagent or activegate)"`
	Source    string  `enum:"gemini,scrape" default:"gemini" help:"Release source (gemini or scrape)"`
	Model     string  `help:"Gemini model (defaults to the package default)"`
	RPS       float64 `default:"1" help:"Request rate against the vendor site (scrape source only)"`
}

// SourceFlags returns the source selection flags of the resolved command.
// The command string is kong's resolved form (e.g. "news <component>"),
// which is stable under command abbreviation and flag reordering.
func (c *CLI) SourceFlags(command string) (kind, model string, rps float64) {
	switch command {
	case "news <component>":
		return c.News.Source, c.News.Model, c.News.RPS
	default:
		return c.Serve.Source, c.Serve.Model, c.Serve.RPS
	}
}
