package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// OutputPluginRPC implements the go-plugin Plugin interface for output plugins.
type OutputPluginRPC struct {
	plugin.Plugin
	Impl OutputPlugin
}

// Server returns an RPC server for this plugin.
func (p *OutputPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &OutputPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *OutputPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &OutputPluginRPCClient{client: c}, nil
}

// OutputPluginRPCServer is the RPC server implementation for output plugins.
type OutputPluginRPCServer struct {
	Impl OutputPlugin
}

// Generate implements the RPC method for output generation.
func (s *OutputPluginRPCServer) Generate(palette PaletteData, resp *map[string][]byte) error {
	result, err := s.Impl.Generate(context.Background(), palette)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *OutputPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// OutputPluginRPCClient is the RPC client implementation for output plugins.
type OutputPluginRPCClient struct {
	client *rpc.Client
}

// Generate calls the remote Generate method.
func (c *OutputPluginRPCClient) Generate(_ context.Context, palette PaletteData) (map[string][]byte, error) {
	var result map[string][]byte
	if err := c.client.Call("Plugin.Generate", palette, &result); err != nil {
		return nil, &RPCError{Message: err.Error()}
	}
	return result, nil
}

// GetMetadata calls the remote GetMetadata method. Metadata is empty when
// the call fails.
func (c *OutputPluginRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
