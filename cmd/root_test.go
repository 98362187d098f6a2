package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	orig := rootCmd.Version
	defer func() { rootCmd.Version = orig }()

	SetVersion("1.2.3-test")
	assert.Equal(t, "1.2.3-test", rootCmd.Version)
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	assert.Equal(t, "fleetctl", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)
	assert.NotNil(t, root.RunE, "the root command opens the dashboard")
}

func TestVersionTemplate(t *testing.T) {
	root := newRootCmd()
	root.Version = "1.0.0"
	root.SetVersionTemplate(versionTemplate)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "fleetctl version 1.0.0\n", buf.String())
}

func TestSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"version", "self-update", "dashboard", "hosts", "apps", "mcp"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestGlobalFlags(t *testing.T) {
	flags := newRootCmd().PersistentFlags()
	for _, name := range []string{"server", "poll-interval", "request-timeout", "log-level", "log-file", "theme", "debug"} {
		assert.NotNil(t, flags.Lookup(name), "missing --%s", name)
	}
}

func TestRootCommandHelp(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "operator console")
	assert.Contains(t, buf.String(), "hosts")
}

func TestReportedErrorUnwraps(t *testing.T) {
	cause := errors.New("Action failed: Agent unreachable")
	err := fmt.Errorf("restart: %w", reportedError{err: cause})

	var reported reportedError
	assert.True(t, errors.As(err, &reported))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), reported.Error())
}
