// Package executor runs colorific output plugins as go-plugin subprocesses.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/colorific/internal/colour"
	pkgplugin "github.com/jmylchreest/colorific/pkg/plugin"
)

// ErrNotExecutable is returned when a plugin path is not an executable file.
var ErrNotExecutable = errors.New("plugin is not an executable file")

// PluginExecutor starts an output plugin and forwards palettes to it.
type PluginExecutor struct {
	path   string
	logger hclog.Logger
	client *plugin.Client
	output pkgplugin.OutputPlugin
}

// New creates a PluginExecutor for the plugin binary at pluginPath. The
// plugin process is started lazily on first use.
func New(pluginPath string, logger hclog.Logger) (*PluginExecutor, error) {
	info, err := os.Stat(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat plugin: %w", err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotExecutable, pluginPath)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &PluginExecutor{
		path:   pluginPath,
		logger: logger,
	}, nil
}

// Path returns the plugin binary path.
func (e *PluginExecutor) Path() string {
	return e.path
}

// connect starts the plugin process and dispenses its output interface.
func (e *PluginExecutor) connect() (pkgplugin.OutputPlugin, error) {
	if e.output != nil {
		return e.output, nil
	}

	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pkgplugin.Handshake,
		Plugins:          pkgplugin.PluginMap(nil),
		Cmd:              exec.Command(e.path), // #nosec G204 - Plugin path is chosen by the user
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(pkgplugin.OutputPluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	output, ok := raw.(pkgplugin.OutputPlugin)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.output = output
	return output, nil
}

// Metadata returns the plugin's self-description.
func (e *PluginExecutor) Metadata() (pkgplugin.PluginInfo, error) {
	output, err := e.connect()
	if err != nil {
		return pkgplugin.PluginInfo{}, err
	}
	return output.GetMetadata(), nil
}

// Generate sends palette to the plugin and returns the files it produced.
func (e *PluginExecutor) Generate(ctx context.Context, palette pkgplugin.PaletteData) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := e.connect()
	if err != nil {
		return nil, err
	}

	e.logger.Debug("sending palette to plugin", "plugin", e.path, "source", palette.Source, "colours", len(palette.Colors))
	files, err := output.Generate(ctx, palette)
	if err != nil {
		return nil, fmt.Errorf("plugin %s failed: %w", e.path, err)
	}
	return files, nil
}

// Close stops the plugin process.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.output = nil
	}
}

// PaletteData converts an extracted palette into its plugin wire form.
func PaletteData(source string, palette *colour.Palette) pkgplugin.PaletteData {
	reported := palette.Reported()
	data := pkgplugin.PaletteData{
		Source: source,
		Colors: make([]pkgplugin.ColorData, len(reported)),
	}
	for i, c := range reported {
		data.Colors[i] = colorData(c)
	}
	if palette.Background != nil {
		bg := colorData(*palette.Background)
		data.Background = &bg
	}
	return data
}

func colorData(c colour.Color) pkgplugin.ColorData {
	return pkgplugin.ColorData{
		Hex:        c.Value.Hex(),
		R:          c.Value.R,
		G:          c.Value.G,
		B:          c.Value.B,
		Prominence: c.Prominence,
	}
}
