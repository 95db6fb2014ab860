// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcptool

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/companydir/pkg/types"
)

var clientImpl = &mcp.Implementation{Name: "companydir-client", Version: "0.1.0"}

// Client talks to a tool server running as a stdio subprocess.
type Client struct {
	session *mcp.ClientSession
}

// Spawn starts the tool server described by cfg as an MCP stdio subprocess,
// connects to it, and verifies that the conversion tool is advertised. The
// server's stderr is passed through so its warnings stay visible.
func Spawn(ctx context.Context, cfg types.ToolConfig) (*Client, error) {
	command, err := resolveCommand(cfg)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(command, cfg.Args...)
	cmd.Stderr = os.Stderr

	client := mcp.NewClient(clientImpl, nil)
	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to tool server %s: %w", command, err)
	}

	c := &Client{session: session}
	if err := c.verify(ctx); err != nil {
		session.Close()
		return nil, err
	}
	return c, nil
}

// resolveCommand picks the server executable: cfg.Command when set,
// otherwise the running binary re-invoked with cfg.Args.
func resolveCommand(cfg types.ToolConfig) (string, error) {
	if cfg.Command != "" {
		return cfg.Command, nil
	}
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating tool server binary: %w", err)
	}
	return self, nil
}

// Connect attaches to an already-running server over the given transport.
// Tests use this with in-memory transports.
func Connect(ctx context.Context, transport mcp.Transport) (*Client, error) {
	client := mcp.NewClient(clientImpl, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to tool server: %w", err)
	}

	c := &Client{session: session}
	if err := c.verify(ctx); err != nil {
		session.Close()
		return nil, err
	}
	return c, nil
}

// verify checks that the server advertises the conversion tool.
func (c *Client) verify(ctx context.Context) error {
	result, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing tools: %w", err)
	}
	for _, tool := range result.Tools {
		if tool.Name == ToolConvert {
			return nil
		}
	}
	return fmt.Errorf("tool server does not provide %s", ToolConvert)
}

// Close shuts down the session and, for spawned servers, the subprocess.
func (c *Client) Close() error {
	return c.session.Close()
}

// ConvertToMarkdown invokes the conversion tool for uri and returns the
// Markdown text.
func (c *Client) ConvertToMarkdown(ctx context.Context, uri string) (string, error) {
	return c.callText(ctx, ToolConvert, map[string]any{"uri": uri})
}

func (c *Client) callText(ctx context.Context, name string, args map[string]any) (string, error) {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", name, err)
	}
	if err := result.GetError(); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			return tc.Text, nil
		}
	}
	return "", fmt.Errorf("%s returned no text content", name)
}
