// Package plugin provides the public API for colorific output plugins.
//
// An output plugin is a separate executable that receives each extracted
// palette over go-plugin net/rpc and returns files to write. A minimal
// plugin implements OutputPlugin and calls Serve from its main function.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "1.0.0"

	// OutputPluginName is the name under which output plugins are dispensed.
	OutputPluginName = "output"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1, // Major version from ProtocolVersion
	MagicCookieKey:   "COLORIFIC_PLUGIN",
	MagicCookieValue: "colorific_palette",
}

// PluginMap returns the go-plugin plugin set for impl. Hosts pass a nil
// impl.
func PluginMap(impl OutputPlugin) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		OutputPluginName: &OutputPluginRPC{Impl: impl},
	}
}

// Serve runs impl as a plugin process. It blocks until the host exits.
func Serve(impl OutputPlugin) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
