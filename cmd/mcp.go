package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fleetctl/internal/app"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve fleet tools to AI assistants over MCP (stdio)",
		Long: `Runs a Model Context Protocol server on stdin/stdout. Configure it in
your assistant as a stdio server with the command 'fleetctl mcp'.

Tools: list_hosts, get_host, add_host, delete_host, host_action, add_app,
delete_app and app_action. delete_host and host_action only return the
confirmation prompt unless called with confirm=true.

Logs go to stderr since stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication(appCfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return application.RunMCP(ctx, rootCmd.Version)
		},
	}
}
