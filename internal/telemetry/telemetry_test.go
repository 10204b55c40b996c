package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(Map{Width: 80, Height: 24, Layers: 3, Seed: 42})

	got := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}

	tests := []struct {
		key  attribute.Key
		want attribute.Value
	}{
		{"service.name", attribute.StringValue("tilegrid")},
		{"tilegrid.tileset", attribute.StringValue(DefaultTileset)},
		{"tilegrid.map.width", attribute.IntValue(80)},
		{"tilegrid.map.height", attribute.IntValue(24)},
		{"tilegrid.map.layers", attribute.IntValue(3)},
		{"tilegrid.map.seed", attribute.Int64Value(42)},
	}
	for _, tt := range tests {
		if v, ok := got[tt.key]; !ok || v.Emit() != tt.want.Emit() {
			t.Errorf("%s = %v, want %v", tt.key, v.Emit(), tt.want.Emit())
		}
	}
}

func TestMapTilesetOverride(t *testing.T) {
	for _, kv := range (Map{Tileset: "/maps/cave.json"}).attributes() {
		if kv.Key == "tilegrid.tileset" && kv.Value.AsString() != "/maps/cave.json" {
			t.Errorf("tileset = %q", kv.Value.AsString())
		}
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "test")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("noop tracer produced a valid span context")
	}
}
