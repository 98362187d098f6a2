package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fleetctl/internal/app"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive fleet dashboard",
		Long: `Opens the terminal dashboard. It polls the fleet server, shows every
computer with its stats and applications, and lets you add, remove, start,
stop, shut down and restart from the keyboard. Press ? inside for help.

Destructive host actions (delete, shutdown, restart) ask for confirmation.`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	application, err := app.NewApplication(appCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.RunDashboard(ctx)
}
