// Command snapshot performs one sheet load and writes the cleaned,
// display-formatted table to a local CSV or Excel file. Useful for
// verifying upstream layout changes without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pragati/internal/config"
	"pragati/internal/exporter"
	"pragati/internal/infrastructure"
	"pragati/internal/sheet"
)

func main() {
	out := flag.String("out", "", "output file path (defaults to projects_<timestamp>.csv in the working directory)")
	format := flag.String("format", "csv", "csv | xlsx")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" {
		slog.Error("Invalid format", "format", *format)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *out == "" {
		*out = exporter.ExportFilename(*format, time.Now())
	} else if !strings.HasSuffix(*out, "."+*format) {
		logger.Warn("Output extension does not match format",
			slog.String("out", *out), slog.String("format", *format))
	}

	fetcher := sheet.NewFetcher(cfg.Sheet, logger)
	loader := sheet.NewLoader(fetcher, cfg.Sheet.SourceURL(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sheet.FetchTimeout+10*time.Second)
	defer cancel()

	table, err := loader.Load(ctx)
	if err != nil {
		logger.Error("Sheet load failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(*out)), 0755); err != nil && filepath.Dir(*out) != "." {
		logger.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	file, err := os.Create(*out)
	if err != nil {
		logger.Error("Failed to create output file", "error", err)
		os.Exit(1)
	}
	defer file.Close()

	switch *format {
	case "xlsx":
		err = exporter.WriteExcel(file, table.Records)
	default:
		err = exporter.WriteCSV(file, table.Records, exporter.WriteOptions{BOMPrefix: true})
	}
	if err != nil {
		logger.Error("Failed to write snapshot", "error", err)
		os.Exit(1)
	}

	logger.Info("Snapshot written",
		slog.String("file", *out),
		slog.Int("records", len(table.Records)),
		slog.String("fetched_at", table.FetchedAt.Format(time.RFC3339)))
	fmt.Printf("wrote %d records to %s\n", len(table.Records), *out)
}
