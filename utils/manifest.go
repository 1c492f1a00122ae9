package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ManifestPath is where the frontend build writes its Vite manifest.
const ManifestPath = "static/dist/.vite/manifest.json"

// Entry points the board page asks the manifest for.
const (
	boardScriptSrc = "src/board.ts"
	boardStyleSrc  = "src/board.css"
)

// ManifestEntry represents a Vite manifest entry
type ManifestEntry struct {
	File    string   `json:"file"`
	Name    string   `json:"name"`
	Src     string   `json:"src"`
	IsEntry bool     `json:"isEntry"`
	CSS     []string `json:"css"`
}

// ViteManifest holds the parsed Vite manifest
type ViteManifest map[string]ManifestEntry

// Assets are the URLs the board page links to.
type Assets struct {
	Script     string
	Stylesheet string
}

// FallbackAssets are served when no build manifest is present.
var FallbackAssets = Assets{
	Script:     "/static/board.js",
	Stylesheet: "/static/board.css",
}

var (
	boardAssets     Assets
	boardAssetsOnce sync.Once
)

// LoadViteManifest reads and parses a Vite manifest file.
func LoadViteManifest(path string) (ViteManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest ViteManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return manifest, nil
}

// ResolveAssets maps the board entry points through manifest. Entries the
// manifest lacks keep their fallback path.
func ResolveAssets(manifest ViteManifest) Assets {
	assets := FallbackAssets

	if entry, ok := manifest[boardScriptSrc]; ok {
		assets.Script = "/static/dist/" + entry.File
		if len(entry.CSS) > 0 {
			assets.Stylesheet = "/static/dist/" + entry.CSS[0]
		}
	}
	if entry, ok := manifest[boardStyleSrc]; ok {
		assets.Stylesheet = "/static/dist/" + entry.File
	}

	return assets
}

// BoardAssets returns the board page assets, reading the manifest once per
// process.
func BoardAssets(logger *slog.Logger) Assets {
	boardAssetsOnce.Do(func() {
		manifest, err := LoadViteManifest(ManifestPath)
		if err != nil {
			logger.Warn("Using fallback board assets", "error", err)
			boardAssets = FallbackAssets
			return
		}

		boardAssets = ResolveAssets(manifest)
		logger.Info("Vite manifest loaded successfully", "entries", len(manifest))
	})

	return boardAssets
}
