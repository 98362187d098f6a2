package controller

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/api"
	"fleetctl/internal/dashboard"
	"fleetctl/internal/tui/model"
	"fleetctl/pkg/logging"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

func handleKeyMsg(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	// A pending confirmation captures the keyboard until answered.
	if _, pending := m.Snapshot.Confirmation.(dashboard.PendingConfirmation); pending {
		return handleKeyMsgConfirm(m, keyMsg)
	}

	switch m.CurrentAppMode {
	case model.ModeAddHostForm, model.ModeAddAppForm:
		return handleKeyMsgForm(m, keyMsg)
	case model.ModeLogOverlay:
		return handleKeyMsgLogOverlay(m, keyMsg)
	case model.ModeHelpOverlay:
		if key.Matches(keyMsg, m.Keys.Help) || keyMsg.Type == tea.KeyEsc {
			m.CurrentAppMode = model.ModeMainDashboard
		}
		return m, nil
	}

	return handleKeyMsgGlobal(m, keyMsg)
}

func handleKeyMsgConfirm(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Confirm):
		return m, model.RunEngineCmd(m.Ctx, "confirm", m.Engine.ConfirmPending)
	case key.Matches(keyMsg, m.Keys.Cancel):
		m.Engine.CancelPending()
		m.ApplySnapshot(m.Engine.View())
	}
	return m, nil
}

func handleKeyMsgLogOverlay(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.ToggleLog), keyMsg.Type == tea.KeyEsc:
		m.CurrentAppMode = model.ModeMainDashboard
		return m, nil
	case key.Matches(keyMsg, m.Keys.CopyLogs), keyMsg.String() == "y":
		return m, copyToClipboard("logs", strings.Join(m.ActivityLog, "\n"))
	case key.Matches(keyMsg, m.Keys.Quit):
		return quit(m)
	}
	var cmd tea.Cmd
	m.LogViewport, cmd = m.LogViewport.Update(keyMsg)
	return m, cmd
}

// handleKeyMsgGlobal handles the fleet and host detail screens.
func handleKeyMsgGlobal(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		return quit(m)
	case key.Matches(keyMsg, m.Keys.Help):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleLog):
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.GotoBottom()
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleDark):
		m.DarkMode = !lipgloss.HasDarkBackground()
		lipgloss.SetHasDarkBackground(m.DarkMode)
		return m, nil
	case key.Matches(keyMsg, m.Keys.CopyLogs):
		return m, copyToClipboard("logs", strings.Join(m.ActivityLog, "\n"))
	case key.Matches(keyMsg, m.Keys.Refresh):
		return m, tea.Batch(
			m.SetStatusMessage("Refreshing...", model.StatusBarInfo, model.StatusBarMessageDuration),
			model.RunEngineCmd(m.Ctx, "refresh", m.Engine.Refresh),
		)
	case key.Matches(keyMsg, m.Keys.Dismiss):
		if n := len(m.Snapshot.Notifications); n > 0 {
			m.Engine.DismissNotification(m.Snapshot.Notifications[n-1].ID)
			m.ApplySnapshot(m.Engine.View())
		}
		return m, nil
	}

	if m.InDetailView() {
		return handleKeyMsgDetail(m, keyMsg)
	}
	return handleKeyMsgFleet(m, keyMsg)
}

func handleKeyMsgFleet(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.HostCursor > 0 {
			m.HostCursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.HostCursor < len(m.Snapshot.Hosts)-1 {
			m.HostCursor++
		}
	case key.Matches(keyMsg, m.Keys.Enter):
		if host, ok := m.CursorHost(); ok {
			m.Engine.Select(host.ID)
			m.AppCursor = 0
			m.ApplySnapshot(m.Engine.View())
		}
	case key.Matches(keyMsg, m.Keys.AddHost):
		m.Form = model.NewAddHostForm()
		m.CurrentAppMode = model.ModeAddHostForm
	default:
		return handleHostKeys(m, keyMsg)
	}
	return m, nil
}

func handleKeyMsgDetail(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	host := *m.Snapshot.Selected

	switch {
	case key.Matches(keyMsg, m.Keys.Back):
		m.Engine.Select("")
		m.ApplySnapshot(m.Engine.View())
	case key.Matches(keyMsg, m.Keys.Up):
		if m.AppCursor > 0 {
			m.AppCursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.AppCursor < len(host.Apps)-1 {
			m.AppCursor++
		}
	case key.Matches(keyMsg, m.Keys.AddApp):
		m.Form = model.NewAddAppForm(host.ID, host.Name)
		m.CurrentAppMode = model.ModeAddAppForm
	case key.Matches(keyMsg, m.Keys.ToggleApp):
		app, ok := m.CursorApp()
		if !ok {
			return m, nil
		}
		action := api.AppActionStart
		if app.IsRunning {
			action = api.AppActionStop
		}
		return m, model.RunEngineCmd(m.Ctx, "app-"+string(action), func(ctx context.Context) error {
			return m.Engine.AppAction(ctx, host.ID, app.ID, action)
		})
	case key.Matches(keyMsg, m.Keys.DeleteApp):
		app, ok := m.CursorApp()
		if !ok {
			return m, nil
		}
		return m, model.RunEngineCmd(m.Ctx, "delete-app", func(ctx context.Context) error {
			return m.Engine.DeleteApp(ctx, host.ID, app.ID)
		})
	default:
		return handleHostKeys(m, keyMsg)
	}
	return m, nil
}

// handleHostKeys covers the host actions shared by both screens.
func handleHostKeys(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	host, ok := m.TargetHost()
	if !ok {
		return m, nil
	}

	var err error
	switch {
	case key.Matches(keyMsg, m.Keys.DeleteHost):
		err = m.Engine.RequestDeleteHost(host.ID)
	case key.Matches(keyMsg, m.Keys.Shutdown):
		err = requestPowerAction(m, host, api.HostActionShutdown)
	case key.Matches(keyMsg, m.Keys.Restart):
		err = requestPowerAction(m, host, api.HostActionRestart)
	case key.Matches(keyMsg, m.Keys.CopyIP):
		return m, copyToClipboard(host.IPAddress, host.IPAddress)
	default:
		return m, nil
	}
	if err != nil {
		logging.Warn(controllerSubsystem, "Host action on %s ignored: %v", host.ID, err)
	}
	m.ApplySnapshot(m.Engine.View())
	return m, nil
}

// requestPowerAction refuses offline hosts up front so the operator is not
// asked to confirm something that cannot be sent.
func requestPowerAction(m *model.Model, host api.Host, action api.HostActionType) error {
	if !host.IsOnline {
		m.Engine.Notify(dashboard.KindWarning, host.Name+" is offline.")
		return dashboard.ErrHostOffline
	}
	return m.Engine.RequestHostAction(host.ID, action)
}

func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		return model.ClipboardResultMsg{What: what, Err: clipboardWriteAll(text)}
	}
}
