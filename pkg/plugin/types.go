package plugin

import "context"

// OutputPlugin is the interface that output plugins must implement.
type OutputPlugin interface {
	// Generate renders files from an extracted palette. Keys of the
	// returned map are paths relative to the host's output directory.
	Generate(ctx context.Context, palette PaletteData) (map[string][]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}

// ColorData is one palette colour as sent to plugins.
type ColorData struct {
	Hex        string  `json:"hex"` // lowercase, without "#"
	R          uint8   `json:"r"`
	G          uint8   `json:"g"`
	B          uint8   `json:"b"`
	Prominence float64 `json:"prominence"`
}

// PaletteData is the palette of one image as sent to plugins.
type PaletteData struct {
	// Source is the image path or URL the palette was extracted from.
	Source string `json:"source"`

	// Colors are the reported colours, most prominent first.
	Colors []ColorData `json:"colors"`

	// Background is nil when no saturated background was detected.
	Background *ColorData `json:"background,omitempty"`
}
