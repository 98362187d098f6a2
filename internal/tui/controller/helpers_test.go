package controller

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"fleetctl/internal/api"
	"fleetctl/internal/api/apitest"
	"fleetctl/internal/dashboard"
	"fleetctl/internal/tui/model"
	"fleetctl/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, hosts ...api.Host) (*model.Model, *apitest.FakeFleet) {
	t.Helper()
	fleet := apitest.NewFakeFleet(hosts...)
	engine := dashboard.New(fleet, dashboard.Options{PollInterval: time.Hour, NotificationTTL: time.Hour})
	t.Cleanup(engine.Stop)
	require.NoError(t, engine.Refresh(context.Background()))

	m := model.InitializeModel(context.Background(), model.TUIConfig{Engine: engine, ServerURL: "http://fleet.test"}, nil)
	m.Width, m.Height = 100, 30
	t.Cleanup(func() {
		if m.Unsubscribe != nil {
			m.Unsubscribe()
		}
	})
	return m, fleet
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *model.Model, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	updated, cmd := Update(msg, m)
	require.Same(t, m, updated)
	return cmd
}

// runCmd executes cmd and feeds a resulting CommandDoneMsg back through
// Update, the way the Bubble Tea runtime would.
func runCmd(t *testing.T, m *model.Model, cmd tea.Cmd) model.CommandDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(model.CommandDoneMsg)
	require.True(t, ok, "expected CommandDoneMsg, got %T", msg)
	Update(done, m)
	return done
}

func notificationMessages(m *model.Model) []string {
	var out []string
	for _, n := range m.Snapshot.Notifications {
		out = append(out, n.Message)
	}
	return out
}
