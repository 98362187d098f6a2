package cmd

import (
	"github.com/spf13/cobra"

	"fleetctl/internal/api"
	"fleetctl/internal/cli"
	"fleetctl/internal/dashboard"
)

func newAppsCmd() *cobra.Command {
	appsCmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app"},
		Short:   "Manage applications on a computer",
		Long: `Manage the applications a computer's agent supervises.

Computers and applications can be referred to by id or by name. Adding,
starting and stopping need the computer to be online.

Available commands:
  add    - Add an application to a computer
  delete - Remove an application (no confirmation)
  start  - Start an application
  stop   - Stop an application`,
	}

	var path, processName, appArgs string
	addCmd := &cobra.Command{
		Use:   "add <computer> <name>",
		Short: "Add an application to a computer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.AddAppRequest{Name: args[1], Path: path, ProcessName: processName, Args: appArgs}
			if err := api.Validate(req); err != nil {
				return err
			}
			s, err := newFleetSession(cmd, cli.OutputFormatTable)
			if err != nil {
				return err
			}
			host, err := s.host(args[0])
			if err != nil {
				return err
			}
			return s.dispatch(dashboard.AddApp(host.ID, req))
		},
	}
	addCmd.Flags().StringVar(&path, "path", "", "Executable path on the computer (required)")
	addCmd.Flags().StringVar(&processName, "process", "", "Process name used to detect that it runs (required)")
	addCmd.Flags().StringVar(&appArgs, "args", "", "Command line arguments")
	appsCmd.AddCommand(addCmd)

	appsCmd.AddCommand(appCmd("delete <computer> <app>", "Remove an application", func(host api.Host, app api.Application) dashboard.Command {
		return dashboard.DeleteApp(host.ID, app)
	}))
	for _, action := range []api.AppActionType{api.AppActionStart, api.AppActionStop} {
		action := action
		appsCmd.AddCommand(appCmd(string(action)+" <computer> <app>", "Send a "+string(action)+" command to an application", func(host api.Host, app api.Application) dashboard.Command {
			return dashboard.AppAction(host.ID, app, action)
		}))
	}
	return appsCmd
}

func appCmd(use, short string, build func(api.Host, api.Application) dashboard.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newFleetSession(cmd, cli.OutputFormatTable)
			if err != nil {
				return err
			}
			host, err := s.host(args[0])
			if err != nil {
				return err
			}
			app, err := resolveApp(host, args[1])
			if err != nil {
				return err
			}
			return s.dispatch(build(host, app))
		},
	}
}
