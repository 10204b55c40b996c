// Package tileset provides the embedded tile palette and auto-tile rule
// definitions, and utilities for loading them.
package tileset

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
