package editor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/tilegrid/internal/world"
)

// Config holds editor configuration options.
type Config struct {
	// Seed for map generation and seeded brushes. Used for reproducible maps.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Map dimensions in tiles.
	Width  int
	Height int

	// Number of layers; the bottom layer holds terrain, the top one labels.
	Layers int

	// Path to a tileset JSON file. Empty uses the embedded default.
	Tileset string
}

// Minimum layer count: terrain and overlay.
const minLayers = 2

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Width:  world.DefaultWidth,
		Height: world.DefaultHeight,
		Layers: 3,
	}
}

// ConfigFromEnv reads overrides from TILEGRID_* environment variables on top
// of DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"TILEGRID_WIDTH", &cfg.Width},
		{"TILEGRID_HEIGHT", &cfg.Height},
		{"TILEGRID_LAYERS", &cfg.Layers},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("TILEGRID_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid TILEGRID_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	cfg.Tileset = os.Getenv("TILEGRID_TILESET")

	return cfg, cfg.Validate()
}

// Validate checks that the configuration can produce a usable map.
func (c Config) Validate() error {
	if c.Width < world.DefaultWidth/4 || c.Height < world.DefaultHeight/2 {
		return fmt.Errorf("map %dx%d is too small, need at least %dx%d",
			c.Width, c.Height, world.DefaultWidth/4, world.DefaultHeight/2)
	}
	if c.Layers < minLayers {
		return fmt.Errorf("need at least %d layers, got %d", minLayers, c.Layers)
	}
	return nil
}
