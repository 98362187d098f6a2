package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetctl/internal/api"
	"fleetctl/internal/api/apitest"
	"fleetctl/internal/dashboard"
	"fleetctl/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	color.NoColor = true
	text.DisableColors()
	os.Exit(m.Run())
}

// runFleetCmd executes args against a fresh command tree backed by fake.
func runFleetCmd(t *testing.T, fake *apitest.FakeFleet, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	original := newFleetEngine
	t.Cleanup(func() { newFleetEngine = original })
	newFleetEngine = func() (fleetEngine, error) {
		return dashboard.New(fake, dashboard.Options{}), nil
	}

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func fleetFixture() *apitest.FakeFleet {
	return apitest.NewFakeFleet(
		apitest.OnlineHost("h1", "Office PC", api.Application{ID: "a1", Name: "nginx", IsRunning: true}),
		apitest.OfflineHost("h2", "Lab PC"),
	)
}

func TestHostsList(t *testing.T) {
	out, _, err := runFleetCmd(t, fleetFixture(), "", "hosts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Office PC")
	assert.Contains(t, out, "Lab PC")
	assert.Contains(t, out, "2 computers, 1 online")
}

func TestHostsList_JSON(t *testing.T) {
	out, _, err := runFleetCmd(t, fleetFixture(), "", "hosts", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"ipAddress"`)
}

func TestHostsList_ServerDown(t *testing.T) {
	fake := fleetFixture()
	fake.SetListErr(&api.RemoteError{Kind: api.ErrorKindTransport, Message: "connection refused"})

	_, _, err := runFleetCmd(t, fake, "", "hosts", "list")
	require.Error(t, err)
	assert.Equal(t, "Failed to connect to server. Is it running? Error: connection refused", err.Error())
}

func TestHostsGet_ByName(t *testing.T) {
	out, _, err := runFleetCmd(t, fleetFixture(), "", "hosts", "get", "office pc")
	require.NoError(t, err)
	assert.Contains(t, out, "nginx")
}

func TestHostsAdd(t *testing.T) {
	fake := fleetFixture()
	out, _, err := runFleetCmd(t, fake, "", "hosts", "add", "Lab PC 2", "192.168.1.60")
	require.NoError(t, err)
	assert.Equal(t, "✓ Computer \"Lab PC 2\" added. Run the agent on it to bring it online.\n", out)
	assert.Len(t, fake.Calls(), 1)
}

func TestHostsAdd_InvalidNeverSent(t *testing.T) {
	fake := fleetFixture()
	_, _, err := runFleetCmd(t, fake, "", "hosts", "add", "x", "not an address!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ipAddress")
	assert.Empty(t, fake.Calls())
}

func TestHostsDelete_Prompt(t *testing.T) {
	fake := fleetFixture()

	out, _, err := runFleetCmd(t, fake, "n\n", "hosts", "delete", "h2")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete Lab PC?")
	assert.Contains(t, out, "Cancelled.")
	assert.Empty(t, fake.Calls())

	out, _, err = runFleetCmd(t, fake, "y\n", "hosts", "delete", "h2")
	require.NoError(t, err)
	assert.Contains(t, out, `Computer "Lab PC" deleted.`)
	assert.Equal(t, []apitest.Call{{Method: "DeleteHost", HostID: "h2"}}, fake.Calls())
}

func TestHostsRestart(t *testing.T) {
	fake := fleetFixture()

	out, _, err := runFleetCmd(t, fake, "", "hosts", "restart", "Office PC", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "System restart command sent.")

	_, errOut, err := runFleetCmd(t, fake, "", "hosts", "shutdown", "Lab PC", "--yes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dashboard.ErrHostOffline))
	assert.Contains(t, errOut, "Lab PC is offline.")

	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, "restart", fake.Calls()[0].Action)
}

func TestAppsStartAndFailure(t *testing.T) {
	fake := fleetFixture()

	out, _, err := runFleetCmd(t, fake, "", "apps", "stop", "Office PC", "nginx")
	require.NoError(t, err)
	assert.Contains(t, out, `Command to stop "nginx" sent.`)

	fake.SetCommandErr(errors.New("Agent unreachable"))
	_, errOut, err := runFleetCmd(t, fake, "", "apps", "start", "h1", "a1")
	require.Error(t, err)
	assert.Contains(t, errOut, "Action failed: Agent unreachable")
}

func TestAppsAdd(t *testing.T) {
	fake := fleetFixture()

	_, _, err := runFleetCmd(t, fake, "", "apps", "add", "h1", "redis")
	require.Error(t, err, "path and process are required")
	assert.Empty(t, fake.Calls())

	out, _, err := runFleetCmd(t, fake, "", "apps", "add", "h1", "redis", "--path", "/usr/bin/redis-server", "--process", "redis-server")
	require.NoError(t, err)
	assert.Contains(t, out, `Application "redis" added.`)

	_, errOut, err := runFleetCmd(t, fake, "", "apps", "add", "h2", "redis", "--path", "/usr/bin/redis-server", "--process", "redis-server")
	require.Error(t, err)
	assert.Contains(t, errOut, "Lab PC is offline.")
	assert.Len(t, fake.Calls(), 1)
}

func TestAppsDelete_NotGated(t *testing.T) {
	fake := fleetFixture()
	out, _, err := runFleetCmd(t, fake, "", "apps", "delete", "h1", "nginx")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, `Application "nginx" deleted.`)
}

func TestResolveHost(t *testing.T) {
	hosts := []api.Host{{ID: "h1", Name: "PC"}, {ID: "h2", Name: "pc"}, {ID: "h3", Name: "Lab"}}

	h, err := resolveHost(hosts, "h3")
	require.NoError(t, err)
	assert.Equal(t, "Lab", h.Name)

	_, err = resolveHost(hosts, "PC")
	assert.ErrorContains(t, err, "use the id")

	_, err = resolveHost(hosts, "nope")
	assert.ErrorContains(t, err, "not found")
}
