package cmd

import (
	"github.com/spf13/cobra"

	"fleetctl/internal/api"
	"fleetctl/internal/cli"
	"fleetctl/internal/dashboard"
)

func newHostsCmd() *cobra.Command {
	var outputFormat string

	hostsCmd := &cobra.Command{
		Use:     "hosts",
		Aliases: []string{"host", "computers"},
		Short:   "List and manage computers",
		Long: `List and manage the computers in the fleet.

A computer can be referred to by its id or by its name.

Available commands:
  list      - List all computers with stats
  get       - Show one computer and its applications
  add       - Register a new computer
  delete    - Remove a computer (asks for confirmation)
  shutdown  - Shut a computer down (asks for confirmation)
  restart   - Restart a computer (asks for confirmation)`,
	}
	hostsCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, yaml)")

	session := func(cmd *cobra.Command) (*fleetSession, error) {
		format, err := cli.ParseOutputFormat(outputFormat)
		if err != nil {
			return nil, err
		}
		return newFleetSession(cmd, format)
	}

	hostsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all computers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session(cmd)
			if err != nil {
				return err
			}
			hosts, err := s.hosts()
			if err != nil {
				return err
			}
			return s.printer.Hosts(hosts)
		},
	})

	hostsCmd.AddCommand(&cobra.Command{
		Use:   "get <computer>",
		Short: "Show a computer with its stats and applications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session(cmd)
			if err != nil {
				return err
			}
			host, err := s.host(args[0])
			if err != nil {
				return err
			}
			return s.printer.Host(host)
		},
	})

	hostsCmd.AddCommand(&cobra.Command{
		Use:   "add <name> <ip-address>",
		Short: "Register a new computer",
		Long: `Registers a new computer. It shows as offline until the fleet agent
runs on it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.AddHostRequest{Name: args[0], IPAddress: args[1]}
			if err := api.Validate(req); err != nil {
				return err
			}
			s, err := session(cmd)
			if err != nil {
				return err
			}
			return s.dispatch(dashboard.AddHost(req))
		},
	})

	hostsCmd.AddCommand(gatedHostCmd("delete <computer>", "Remove a computer from the fleet", session,
		func(s *fleetSession, host api.Host, yes bool) error {
			title, desc := dashboard.DeleteHostPrompt(host)
			return s.confirmAndDispatch(title, desc, dashboard.DeleteHost(host), yes)
		}))

	for _, action := range []api.HostActionType{api.HostActionShutdown, api.HostActionRestart} {
		action := action
		hostsCmd.AddCommand(gatedHostCmd(string(action)+" <computer>", "Send a "+string(action)+" command to a computer", session,
			func(s *fleetSession, host api.Host, yes bool) error {
				if err := s.refuseOffline(host); err != nil {
					return err
				}
				title, desc := dashboard.HostActionPrompt(host, action)
				return s.confirmAndDispatch(title, desc, dashboard.HostAction(host.ID, action), yes)
			}))
	}

	return hostsCmd
}

// gatedHostCmd builds a subcommand for an action that needs confirmation.
func gatedHostCmd(use, short string, session func(*cobra.Command) (*fleetSession, error), run func(*fleetSession, api.Host, bool) error) *cobra.Command {
	var yes bool
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session(cmd)
			if err != nil {
				return err
			}
			host, err := s.host(args[0])
			if err != nil {
				return err
			}
			return run(s, host, yes)
		},
	}
	c.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return c
}
