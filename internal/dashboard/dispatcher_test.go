package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetctl/internal/api"
	"fleetctl/internal/api/apitest"
)

type dispatchFixture struct {
	fleet     *apitest.FakeFleet
	notes     *NotificationQueue
	state     *Reconciler
	refreshes int
	d         *Dispatcher
}

func newDispatchFixture(hosts ...api.Host) *dispatchFixture {
	f := &dispatchFixture{
		fleet: apitest.NewFakeFleet(hosts...),
		notes: NewNotificationQueue(0, nil),
		state: NewReconciler(),
	}
	f.state.Replace(hosts)
	f.d = NewDispatcher(f.fleet, f.notes, f.state.Lookup, func(ctx context.Context) error {
		f.refreshes++
		return nil
	})
	return f
}

func TestDispatcher_SuccessNotifiesAndRefreshesOnce(t *testing.T) {
	f := newDispatchFixture(apitest.OnlineHost("h1", "Office PC", api.Application{ID: "a1", Name: "nginx"}))

	err := f.d.Dispatch(context.Background(), AppAction("h1", api.Application{ID: "a1", Name: "nginx"}, api.AppActionStart))
	require.NoError(t, err)

	assert.Equal(t, 1, f.refreshes)
	list := f.notes.List()
	require.Len(t, list, 1)
	assert.Equal(t, KindSuccess, list[0].Kind)
	assert.Equal(t, `Command to start "nginx" sent.`, list[0].Message)
	assert.Equal(t, []apitest.Call{{Method: "AppAction", HostID: "h1", AppID: "a1", Action: "start"}}, f.fleet.Calls())
}

func TestDispatcher_FailureNotifiesWithoutRefresh(t *testing.T) {
	f := newDispatchFixture(apitest.OnlineHost("h1", "Office PC"))
	f.fleet.SetCommandErr(&api.RemoteError{Kind: api.ErrorKindProtocol, StatusCode: 404, Message: "Computer not found"})

	err := f.d.Dispatch(context.Background(), HostAction("h1", api.HostActionRestart))
	require.Error(t, err)

	assert.Equal(t, 0, f.refreshes)
	list := f.notes.List()
	require.Len(t, list, 1)
	assert.Equal(t, KindError, list[0].Kind)
	assert.Equal(t, "Action failed: Computer not found", list[0].Message)
}

func TestDispatcher_RefusesOfflineHost(t *testing.T) {
	f := newDispatchFixture(apitest.OfflineHost("h1", "Office PC"))

	err := f.d.Dispatch(context.Background(), HostAction("h1", api.HostActionShutdown))
	assert.ErrorIs(t, err, ErrHostOffline)

	assert.Empty(t, f.fleet.Calls())
	assert.Equal(t, 0, f.refreshes)
	list := f.notes.List()
	require.Len(t, list, 1)
	assert.Equal(t, KindWarning, list[0].Kind)
	assert.Equal(t, "Office PC is offline.", list[0].Message)
}

func TestDispatcher_UnknownHostIsSentAnyway(t *testing.T) {
	// The snapshot may lag the server; let the server decide.
	f := newDispatchFixture()

	err := f.d.Dispatch(context.Background(), HostAction("ghost", api.HostActionRestart))
	require.NoError(t, err)
	assert.Len(t, f.fleet.Calls(), 1)
}

func TestCommandMessages(t *testing.T) {
	app := api.Application{ID: "a1", Name: "nginx"}
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"add host", AddHost(api.AddHostRequest{Name: "Lab PC", IPAddress: "192.168.1.50"}), `Computer "Lab PC" added. Run the agent on it to bring it online.`},
		{"delete host", DeleteHost(api.Host{ID: "h1", Name: "Lab PC"}), `Computer "Lab PC" deleted.`},
		{"add app", AddApp("h1", api.AddAppRequest{Name: "nginx"}), `Application "nginx" added.`},
		{"delete app", DeleteApp("h1", app), `Application "nginx" deleted.`},
		{"start app", AppAction("h1", app, api.AppActionStart), `Command to start "nginx" sent.`},
		{"stop app", AppAction("h1", app, api.AppActionStop), `Command to stop "nginx" sent.`},
		{"restart host", HostAction("h1", api.HostActionRestart), "System restart command sent."},
		{"shutdown host", HostAction("h1", api.HostActionShutdown), "System shutdown command sent."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.SuccessMessage)
		})
	}
}

func TestDispatcher_PassesThroughNonRemoteErrors(t *testing.T) {
	f := newDispatchFixture()
	boom := errors.New("boom")

	err := f.d.Dispatch(context.Background(), Command{
		Name: "custom",
		Run:  func(context.Context, api.FleetAPI) error { return boom },
	})
	assert.ErrorIs(t, err, boom)
	require.Len(t, f.notes.List(), 1)
	assert.Equal(t, "Action failed: boom", f.notes.List()[0].Message)
}
