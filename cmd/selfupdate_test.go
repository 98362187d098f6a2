package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelfUpdateCmd(t *testing.T) {
	c := newSelfUpdateCmd()

	assert.Equal(t, "self-update", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.Contains(t, c.Long, "fleetctl")
	assert.NotNil(t, c.RunE)
	assert.Error(t, c.Args(c, []string{"extra"}))
}

func TestRunSelfUpdate_RefusesDevelopmentBuilds(t *testing.T) {
	orig := rootCmd.Version
	defer func() { rootCmd.Version = orig }()

	for _, v := range []string{"", "dev"} {
		t.Run("version="+v, func(t *testing.T) {
			rootCmd.Version = v
			err := runSelfUpdate(nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot self-update a development version")
		})
	}
}

func TestSelfUpdate_Help(t *testing.T) {
	c := newSelfUpdateCmd()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetArgs([]string{"--help"})

	require.NoError(t, c.Execute())
	assert.Contains(t, buf.String(), "Checks for the latest release of fleetctl")
}

func TestSelfUpdate_ReleasesComeFromFleetctlRepo(t *testing.T) {
	assert.Equal(t, "fleetctl/fleetctl", githubRepoSlug)
}
