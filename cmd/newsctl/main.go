// Package main provides a command-line client that runs the news pipeline
// once and prints the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"newsgate/internal/apierr"
	"newsgate/internal/config"
	"newsgate/internal/formatter"
	"newsgate/internal/logger"
	"newsgate/internal/models"
	"newsgate/internal/newsapi"
	"newsgate/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	op := flag.String("op", string(models.OpHeadlines), "Operation: search, headlines or sources")
	format := flag.String("format", "table", "Output format: table or json")
	maxWidth := flag.Int("width", formatter.DefaultMaxCellWidth, "Maximum width of free-text table cells (0 = unlimited)")
	verbose := flag.Bool("v", false, "Log provider calls to stderr")

	flag.Usage = printUsage
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("error", cfg.Logging.Format, os.Stderr)
	if *verbose {
		log.SetLevel("debug")
	}

	client, err := newsapi.NewClient(cfg.Provider, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v (set %s)\n", err, config.EnvAPIKey)
		os.Exit(1)
	}

	operation, err := parseOperation(*op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	query, err := parseQuery(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := pipeline.NewService(client, pipeline.WithLogger(log))

	result, err := svc.Run(ctx, operation, query)
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}

	f := formatter.New()
	f.MaxCellWidth = *maxWidth

	if err := render(os.Stdout, f, *format, result); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func parseOperation(name string) (models.Operation, error) {
	op := models.Operation(strings.ToLower(strings.TrimSpace(name)))
	if op.IsValid() {
		return op, nil
	}

	names := make([]string, 0, len(models.Operations()))
	for _, known := range models.Operations() {
		names = append(names, string(known))
	}

	return "", fmt.Errorf("unknown operation %q (want %s)", name, strings.Join(names, ", "))
}

// parseQuery turns key=value arguments into query parameters.
func parseQuery(args []string) (url.Values, error) {
	query := url.Values{}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", arg)
		}

		query[key] = append(query[key], value)
	}

	return query, nil
}

func render(w io.Writer, f *formatter.Formatter, format string, result any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	case "table":
		switch r := result.(type) {
		case *models.ArticlesResponse:
			_, err := fmt.Fprintf(w, "%s\n📰 %d articles\n", f.Articles(r), len(r.Articles))
			return err
		case *models.SourcesResponse:
			_, err := fmt.Fprintf(w, "%s\n📚 %d sources\n", f.Sources(r), len(r.Sources))
			return err
		}

		return fmt.Errorf("unexpected result type %T", result)
	}

	return fmt.Errorf("unknown format %q (want table or json)", format)
}

func printError(w io.Writer, err error) {
	classified := apierr.Classify("", err)

	fmt.Fprintf(w, "❌ %s (%s, HTTP %d)\n", classified.Message, classified.Kind, classified.Status())

	for _, v := range classified.Violations {
		fmt.Fprintf(w, "   - %s: %s\n", v.Field, v.Reason)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `newsctl - query the news provider through the gateway pipeline

Usage:
  newsctl [flags] [key=value ...]

Examples:
  newsctl -op headlines category=technology country=us
  newsctl -op search q=bitcoin sortBy=publishedAt pageSize=10
  newsctl -op sources language=en -format json

Flags:
`)
	flag.PrintDefaults()
}
