package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetctl/internal/api"
	"fleetctl/internal/api/apitest"
	"fleetctl/internal/dashboard"
	"fleetctl/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

func newTools(hosts ...api.Host) (*FleetTools, *apitest.FakeFleet) {
	fake := apitest.NewFakeFleet(hosts...)
	return NewFleetTools(dashboard.New(fake, dashboard.Options{})), fake
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.Len(t, r.Content, 1)
	text, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected TextContent")
	return text.Text
}

func TestGetTools(t *testing.T) {
	ft, _ := newTools()
	tools := ft.GetTools()

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"list_hosts", "get_host", "add_host", "delete_host", "host_action", "add_app", "delete_app", "app_action"} {
		assert.True(t, names[want], want)
	}
	assert.Len(t, ft.ServerTools(), len(tools), "every tool has a handler")
}

func TestListHosts(t *testing.T) {
	ft, _ := newTools(apitest.OnlineHost("h1", "Office PC"), apitest.OfflineHost("h2", "Lab PC"))

	result, err := ft.HandleListHosts(context.Background(), call("list_hosts", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var hosts []api.Host
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &hosts))
	require.Len(t, hosts, 2)
	assert.Equal(t, "Office PC", hosts[0].Name)
	assert.False(t, hosts[1].IsOnline)
}

func TestListHosts_ServerDown(t *testing.T) {
	ft, fake := newTools()
	fake.SetListErr(&api.RemoteError{Kind: api.ErrorKindTransport, Message: "connection refused"})

	result, err := ft.HandleListHosts(context.Background(), call("list_hosts", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Failed to connect to server")
}

func TestAddHost(t *testing.T) {
	ft, fake := newTools()

	result, err := ft.HandleAddHost(context.Background(), call("add_host", map[string]interface{}{
		"name": "Lab PC", "ip_address": "192.168.1.50",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, `Computer "Lab PC" added. Run the agent on it to bring it online.`, resultText(t, result))
	assert.Len(t, fake.Hosts, 1)
}

func TestAddHost_Invalid(t *testing.T) {
	ft, fake := newTools()

	result, err := ft.HandleAddHost(context.Background(), call("add_host", map[string]interface{}{
		"name": "Lab PC", "ip_address": "not an address!",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Empty(t, fake.Calls())

	result, _ = ft.HandleAddHost(context.Background(), call("add_host", map[string]interface{}{}))
	assert.True(t, result.IsError)
	assert.Equal(t, "name is required", resultText(t, result))
}

func TestDeleteHost_RequiresConfirm(t *testing.T) {
	ft, fake := newTools(apitest.OnlineHost("h1", "Office PC"))

	result, err := ft.HandleDeleteHost(context.Background(), call("delete_host", map[string]interface{}{"host_id": "h1"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Delete Office PC?")
	assert.Contains(t, resultText(t, result), "confirm=true")
	assert.Empty(t, fake.Calls())

	result, err = ft.HandleDeleteHost(context.Background(), call("delete_host", map[string]interface{}{"host_id": "h1", "confirm": true}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, `Computer "Office PC" deleted.`, resultText(t, result))
	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, apitest.Call{Method: "DeleteHost", HostID: "h1"}, fake.Calls()[0])
}

// interleavingEngine runs during once, just before the first confirm.
type interleavingEngine struct {
	*dashboard.Engine
	once   sync.Once
	during func()
}

func (e *interleavingEngine) ConfirmPending(ctx context.Context) error {
	e.once.Do(e.during)
	return e.Engine.ConfirmPending(ctx)
}

func TestDeleteHost_OverlappingConfirmsRunTheirOwnCommands(t *testing.T) {
	fake := apitest.NewFakeFleet(apitest.OnlineHost("h1", "Office PC"), apitest.OnlineHost("h2", "Lab PC"))
	engine := &interleavingEngine{Engine: dashboard.New(fake, dashboard.Options{})}
	ft := NewFleetTools(engine)

	second := make(chan *mcp.CallToolResult, 1)
	engine.during = func() {
		go func() {
			r, _ := ft.HandleDeleteHost(context.Background(), call("delete_host", map[string]interface{}{"host_id": "h2", "confirm": true}))
			second <- r
		}()
		// Give the second call time to reach the gate.
		time.Sleep(50 * time.Millisecond)
	}

	first, err := ft.HandleDeleteHost(context.Background(), call("delete_host", map[string]interface{}{"host_id": "h1", "confirm": true}))
	require.NoError(t, err)
	assert.Equal(t, `Computer "Office PC" deleted.`, resultText(t, first))

	select {
	case r := <-second:
		assert.Equal(t, `Computer "Lab PC" deleted.`, resultText(t, r))
	case <-time.After(2 * time.Second):
		t.Fatal("second delete never finished")
	}

	assert.ElementsMatch(t, []apitest.Call{
		{Method: "DeleteHost", HostID: "h1"},
		{Method: "DeleteHost", HostID: "h2"},
	}, fake.Calls())
}

func TestDeleteHost_UnknownHost(t *testing.T) {
	ft, _ := newTools()

	result, err := ft.HandleDeleteHost(context.Background(), call("delete_host", map[string]interface{}{"host_id": "nope", "confirm": true}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")
}

func TestHostAction(t *testing.T) {
	ft, fake := newTools(apitest.OnlineHost("h1", "Office PC"), apitest.OfflineHost("h2", "Lab PC"))

	result, _ := ft.HandleHostAction(context.Background(), call("host_action", map[string]interface{}{"host_id": "h1", "action": "hibernate", "confirm": true}))
	assert.True(t, result.IsError)

	result, _ = ft.HandleHostAction(context.Background(), call("host_action", map[string]interface{}{"host_id": "h2", "action": "shutdown", "confirm": true}))
	assert.True(t, result.IsError)
	assert.Equal(t, "Lab PC is offline.", resultText(t, result))

	result, _ = ft.HandleHostAction(context.Background(), call("host_action", map[string]interface{}{"host_id": "h1", "action": "restart", "confirm": true}))
	assert.False(t, result.IsError)
	assert.Equal(t, "System restart command sent.", resultText(t, result))

	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, "restart", fake.Calls()[0].Action)
}

func TestAddApp(t *testing.T) {
	ft, fake := newTools(apitest.OnlineHost("h1", "Office PC"), apitest.OfflineHost("h2", "Lab PC"))
	args := func(host string) map[string]interface{} {
		return map[string]interface{}{
			"host_id": host, "name": "nginx", "path": `C:\nginx\nginx.exe`, "process_name": "nginx.exe",
		}
	}

	result, _ := ft.HandleAddApp(context.Background(), call("add_app", args("h1")))
	assert.False(t, result.IsError)
	assert.Equal(t, `Application "nginx" added.`, resultText(t, result))

	result, _ = ft.HandleAddApp(context.Background(), call("add_app", args("h2")))
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "offline")

	assert.Len(t, fake.Calls(), 1)
}

func TestAppActionAndDelete(t *testing.T) {
	nginx := api.Application{ID: "a1", Name: "nginx"}
	ft, fake := newTools(apitest.OnlineHost("h1", "Office PC", nginx))

	result, _ := ft.HandleAppAction(context.Background(), call("app_action", map[string]interface{}{"host_id": "h1", "app_id": "a1", "action": "start"}))
	assert.False(t, result.IsError)
	assert.Equal(t, `Command to start "nginx" sent.`, resultText(t, result))

	result, _ = ft.HandleAppAction(context.Background(), call("app_action", map[string]interface{}{"host_id": "h1", "app_id": "zz", "action": "start"}))
	assert.True(t, result.IsError)

	result, _ = ft.HandleDeleteApp(context.Background(), call("delete_app", map[string]interface{}{"host_id": "h1", "app_id": "a1"}))
	assert.False(t, result.IsError)
	assert.Equal(t, `Application "nginx" deleted.`, resultText(t, result))

	assert.Len(t, fake.Calls(), 2)
}

func TestCommandFailure(t *testing.T) {
	ft, fake := newTools(apitest.OnlineHost("h1", "Office PC", api.Application{ID: "a1", Name: "nginx"}))
	fake.SetCommandErr(errors.New("Agent unreachable"))

	result, err := ft.HandleAppAction(context.Background(), call("app_action", map[string]interface{}{"host_id": "h1", "app_id": "a1", "action": "stop"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Action failed: Agent unreachable", resultText(t, result))
}

func TestNewServer(t *testing.T) {
	fake := apitest.NewFakeFleet()
	s := NewServer(dashboard.New(fake, dashboard.Options{}), "test")
	assert.NotNil(t, s)
}
