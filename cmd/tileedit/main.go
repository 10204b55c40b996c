// Package main is the entry point for the tilegrid map editor.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tilegrid/internal/editor"
	"github.com/samdwyer/tilegrid/internal/grid"
	"github.com/samdwyer/tilegrid/internal/telemetry"
)

// debugLogFile receives grid debug output when TILEGRID_DEBUG=1. The
// terminal belongs to tcell, so it cannot go to stderr.
const debugLogFile = "tilegrid-debug.log"

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	if os.Getenv("TILEGRID_DEBUG") == "1" {
		f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("Warning: debug log disabled: %v", err)
		} else {
			defer f.Close()
			grid.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	}

	cfg, err := editor.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	var tracer trace.Tracer
	shutdown, err := telemetry.Setup(ctx, telemetry.Map{
		Tileset: cfg.Tileset,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Layers:  cfg.Layers,
		Seed:    cfg.Seed,
	})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Editor will run without observability")
		tracer = telemetry.NoopTracer()
	} else {
		tracer = telemetry.Tracer("editor")
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	e, err := editor.New(ctx, cfg, tracer)
	if err != nil {
		log.Fatalf("Failed to initialize editor: %v", err)
	}

	if err := e.Run(ctx); err != nil {
		log.Fatalf("Editor error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here.
	apiKey := os.Getenv("HONEYCOMB_TILEGRID_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TILEGRID_DATASET")
	if dataset == "" {
		dataset = "tilegrid"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
