package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"fleetctl/internal/app"
	"fleetctl/internal/cli"
)

const versionTemplate = `{{printf "fleetctl version %s\n" .Version}}`

// appCfg collects the global flags; every subcommand builds its
// application from it.
var appCfg = app.NewConfig(false)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleetctl",
		Short: "Monitor and control a fleet of computers",
		Long: `fleetctl is an operator console for computers running the fleet agent.
It shows live host stats and managed applications, and sends commands
such as starting an application or restarting a computer.

Run without a subcommand to open the interactive dashboard. The hosts and
apps subcommands do the same work from scripts, and 'fleetctl mcp' exposes
it to AI assistants over the Model Context Protocol.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. invalid arguments, failed connections)
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDashboard,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&appCfg.ServerURL, "server", "", "Fleet API server base URL (default from config, http://localhost:5000)")
	flags.DurationVar(&appCfg.PollInterval, "poll-interval", 0, "How often the dashboard refreshes (default 5s)")
	flags.DurationVar(&appCfg.RequestTimeout, "request-timeout", 0, "Timeout for each request to the server (default 10s)")
	flags.StringVar(&appCfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&appCfg.LogFile, "log-file", "", "Write logs to this file while the dashboard runs")
	flags.StringVar(&appCfg.Theme, "theme", "", "Colour theme: auto, dark or light")
	flags.BoolVar(&appCfg.Debug, "debug", false, "Enable debug logging")

	root.AddCommand(newDashboardCmd())
	root.AddCommand(newHostsCmd())
	root.AddCommand(newAppsCmd())
	root.AddCommand(newMCPCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newSelfUpdateCmd())
	return root
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(versionTemplate)

	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			cli.NewPrinter(os.Stdout, os.Stderr, cli.OutputFormatTable, false).Failure(err.Error())
		}
		os.Exit(1)
	}
}

// reportedError marks an error whose message was already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }
