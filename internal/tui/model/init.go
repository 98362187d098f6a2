package model

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/internal/tui/design"
	"fleetctl/pkg/logging"
)

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "navigate up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "navigate down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open host"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back to fleet"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh now"),
		),
		AddHost: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add computer"),
		),
		AddApp: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add application"),
		),
		DeleteHost: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete computer"),
		),
		DeleteApp: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete application"),
		),
		ToggleApp: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/stop application"),
		),
		Shutdown: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "shutdown"),
		),
		Restart: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "restart"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "dismiss notification"),
		),
		CopyIP: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy IP address"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy logs"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log overlay"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle dark/light"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.AddHost, k.DeleteHost, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Refresh, k.Quit},
		{k.AddHost, k.DeleteHost, k.Shutdown, k.Restart, k.CopyIP},
		{k.AddApp, k.ToggleApp, k.DeleteApp},
		{k.Dismiss, k.ToggleLog, k.CopyLogs, k.ToggleDark, k.Help},
	}
}

// InitializeModel builds the model around a running engine.
func InitializeModel(ctx context.Context, cfg TUIConfig, logChannel <-chan logging.LogEntry) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = design.TextInfoStyle

	m := &Model{
		CurrentAppMode: ModeMainDashboard,
		DebugMode:      cfg.DebugMode,
		DarkMode:       cfg.DarkMode,
		ServerURL:      cfg.ServerURL,
		Engine:         cfg.Engine,
		Ctx:            ctx,
		ActivityLog:    make([]string, 0),
		LogViewport:    viewport.New(0, 0),
		Spinner:        s,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		LogChannel:     logChannel,
	}
	if cfg.Engine != nil {
		m.Snapshot = cfg.Engine.View()
		m.Changes, m.Unsubscribe = cfg.Engine.Subscribe()
	}
	return m
}

// Init starts the spinner and the engine and log listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		ListenForEngineChangesCmd(m.Changes),
		ListenForLogEntriesCmd(m.LogChannel),
	)
}
