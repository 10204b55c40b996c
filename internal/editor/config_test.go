package editor

import "testing"

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TILEGRID_WIDTH", "100")
	t.Setenv("TILEGRID_HEIGHT", "30")
	t.Setenv("TILEGRID_LAYERS", "4")
	t.Setenv("TILEGRID_SEED", "99")
	t.Setenv("TILEGRID_TILESET", "/tmp/tiles.json")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 30 || cfg.Layers != 4 || cfg.Seed != 99 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Tileset != "/tmp/tiles.json" {
		t.Errorf("Tileset = %q", cfg.Tileset)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad width", "TILEGRID_WIDTH", "wide"},
		{"bad seed", "TILEGRID_SEED", "0x"},
		{"too small", "TILEGRID_HEIGHT", "3"},
		{"one layer", "TILEGRID_LAYERS", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := ConfigFromEnv(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig invalid: %v", err)
	}
}
