package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fleetctl/pkg/logging"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "fleetctl"

// ServerTools binds every tool definition to its handler.
func (ft *FleetTools) ServerTools() []server.ServerTool {
	handlers := map[string]server.ToolHandlerFunc{
		"list_hosts":  ft.HandleListHosts,
		"get_host":    ft.HandleGetHost,
		"add_host":    ft.HandleAddHost,
		"delete_host": ft.HandleDeleteHost,
		"host_action": ft.HandleHostAction,
		"add_app":     ft.HandleAddApp,
		"delete_app":  ft.HandleDeleteApp,
		"app_action":  ft.HandleAppAction,
	}

	var out []server.ServerTool
	for _, tool := range ft.GetTools() {
		handler, ok := handlers[tool.Name]
		if !ok {
			logging.Warn("Tools", "No handler for tool %s", tool.Name)
			continue
		}
		out = append(out, server.ServerTool{Tool: tool, Handler: logged(tool.Name, handler)})
	}
	return out
}

func logged(name string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logging.Debug("Tools", "Calling %s", name)
		result, err := h(ctx, req)
		if result != nil && result.IsError {
			logging.Info("Tools", "%s returned an error result", name)
		}
		return result, err
	}
}

// NewServer creates an MCP server exposing the fleet tools.
func NewServer(engine Engine, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)
	s.AddTools(NewFleetTools(engine).ServerTools()...)
	return s
}

// ServeStdio serves the fleet tools over stdin/stdout until the client
// disconnects or ctx is cancelled.
func ServeStdio(ctx context.Context, engine Engine, version string) error {
	stdio := server.NewStdioServer(NewServer(engine, version))
	stdio.SetErrorLogger(log.New(logWriter{}, "", 0))

	logging.Info("Tools", "Serving MCP tools on stdio")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// logWriter routes the stdio server's own error log into pkg/logging, since
// stdout carries the protocol.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logging.Warn("Tools", "%s", strings.TrimSpace(string(p)))
	return len(p), nil
}
