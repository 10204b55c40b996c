// Package telemetry provides OpenTelemetry tracing for the editor and map generator.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "tilegrid"
	serviceVersion = "0.1.0"

	// DefaultTileset names the embedded tileset in resource attributes.
	DefaultTileset = "embedded"
)

// Map describes the map a process edits. It is recorded on the trace
// resource so every span can be grouped by map shape and tileset.
type Map struct {
	Tileset string
	Width   int
	Height  int
	Layers  int
	Seed    int64
}

// attributes returns the resource attributes for m.
func (m Map) attributes() []attribute.KeyValue {
	tileset := m.Tileset
	if tileset == "" {
		tileset = DefaultTileset
	}
	return []attribute.KeyValue{
		attribute.String("tilegrid.tileset", tileset),
		attribute.Int("tilegrid.map.width", m.Width),
		attribute.Int("tilegrid.map.height", m.Height),
		attribute.Int("tilegrid.map.layers", m.Layers),
		attribute.Int64("tilegrid.map.seed", m.Seed),
	}
}

// resourceAttributes returns the service attributes followed by the map's.
func resourceAttributes(m Map) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.version", runtime.Version()),
	}
	return append(attrs, m.attributes()...)
}

// Setup installs a tracer provider exporting over OTLP HTTP. The exporter
// reads OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_HEADERS.
//
// Returns a shutdown function that should be called on exit.
func Setup(ctx context.Context, m Map) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// resource.Default() is not merged: its schema URL conflicts.
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(m)...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for an editor or generator component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("tilegrid/" + name)
}

// NoopTracer returns a tracer that records nothing, for tests and for runs
// where Setup failed.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("tilegrid/noop")
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
