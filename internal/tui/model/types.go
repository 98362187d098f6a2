package model

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/internal/api"
	"fleetctl/internal/dashboard"
	"fleetctl/pkg/logging"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeMainDashboard AppMode = iota
	ModeHelpOverlay
	ModeLogOverlay
	ModeAddHostForm
	ModeAddAppForm
	ModeQuitting
)

// String provides a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeMainDashboard:
		return "MainDashboard"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeAddHostForm:
		return "AddHostForm"
	case ModeAddAppForm:
		return "AddAppForm"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType is the tone of a local status bar message.
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
)

const (
	MaxActivityLogLines = 1000
	// StatusBarMessageDuration is how long local status messages stay.
	StatusBarMessageDuration = 3 * time.Second
)

// Engine is the part of the dashboard engine the TUI drives.
type Engine interface {
	Start(ctx context.Context)
	Stop()
	Refresh(ctx context.Context) error
	View() dashboard.View
	Subscribe() (<-chan struct{}, func())
	Select(hostID string) bool

	AddHost(ctx context.Context, req api.AddHostRequest) error
	AddApp(ctx context.Context, hostID string, req api.AddAppRequest) error
	DeleteApp(ctx context.Context, hostID, appID string) error
	AppAction(ctx context.Context, hostID, appID string, action api.AppActionType) error
	RequestDeleteHost(hostID string) error
	RequestHostAction(hostID string, action api.HostActionType) error
	ConfirmPending(ctx context.Context) error
	CancelPending()
	DismissNotification(id int64) bool
	Notify(kind dashboard.NotificationKind, message string) dashboard.Notification
}

var _ Engine = (*dashboard.Engine)(nil)

// TUIConfig carries everything the model needs from the command line.
type TUIConfig struct {
	Engine    Engine
	ServerURL string
	DebugMode bool
	DarkMode  bool
}

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Quit       key.Binding
	Help       key.Binding
	Refresh    key.Binding
	AddHost    key.Binding
	AddApp     key.Binding
	DeleteHost key.Binding
	DeleteApp  key.Binding
	ToggleApp  key.Binding
	Shutdown   key.Binding
	Restart    key.Binding
	Dismiss    key.Binding
	CopyIP     key.Binding
	CopyLogs   key.Binding
	ToggleLog  key.Binding
	ToggleDark key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
}

// Model is the TUI state. Fleet data is never stored here directly; Snapshot
// is the engine's view model, replaced wholesale on every change signal.
type Model struct {
	Width  int
	Height int

	CurrentAppMode AppMode
	LastAppMode    AppMode
	DebugMode      bool
	DarkMode       bool
	ServerURL      string

	Engine   Engine
	Ctx      context.Context
	Snapshot dashboard.View

	// HostCursor indexes Snapshot.Hosts in the fleet view; AppCursor indexes
	// the selected host's apps in the detail view.
	HostCursor int
	AppCursor  int

	Form *Form

	ActivityLog          []string
	ActivityLogDirty     bool
	LogViewport          viewport.Model
	LogViewportLastWidth int

	Spinner spinner.Model
	Keys    KeyMap
	Help    help.Model

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	QuittingMessage string

	Changes     <-chan struct{}
	Unsubscribe func()
	LogChannel  <-chan logging.LogEntry
}

// InDetailView reports whether a host is open.
func (m *Model) InDetailView() bool {
	return m.Snapshot.Selected != nil
}

// CursorHost returns the host under the fleet cursor.
func (m *Model) CursorHost() (api.Host, bool) {
	if m.HostCursor < 0 || m.HostCursor >= len(m.Snapshot.Hosts) {
		return api.Host{}, false
	}
	return m.Snapshot.Hosts[m.HostCursor], true
}

// TargetHost is the host that host-level keys act on: the open host in the
// detail view, otherwise the one under the cursor.
func (m *Model) TargetHost() (api.Host, bool) {
	if m.Snapshot.Selected != nil {
		return *m.Snapshot.Selected, true
	}
	return m.CursorHost()
}

// CursorApp returns the application under the detail cursor.
func (m *Model) CursorApp() (api.Application, bool) {
	host := m.Snapshot.Selected
	if host == nil || m.AppCursor < 0 || m.AppCursor >= len(host.Apps) {
		return api.Application{}, false
	}
	return host.Apps[m.AppCursor], true
}

// ApplySnapshot swaps in a fresh engine view and keeps the cursors on the
// same host and app ids where they still exist.
func (m *Model) ApplySnapshot(v dashboard.View) {
	var hostID, appID string
	if h, ok := m.CursorHost(); ok {
		hostID = h.ID
	}
	if a, ok := m.CursorApp(); ok {
		appID = a.ID
	}

	m.Snapshot = v

	m.HostCursor = clampIndex(m.HostCursor, len(v.Hosts))
	for i, h := range v.Hosts {
		if h.ID == hostID {
			m.HostCursor = i
			break
		}
	}

	if v.Selected == nil {
		m.AppCursor = 0
		return
	}
	m.AppCursor = clampIndex(m.AppCursor, len(v.Selected.Apps))
	for i, a := range v.Selected.Apps {
		if a.ID == appID {
			m.AppCursor = i
			break
		}
	}
}

// SetStatusMessage shows a local message (clipboard, refresh) that clears
// itself after clearAfter.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}
	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
