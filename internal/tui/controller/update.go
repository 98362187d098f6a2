package controller

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/internal/tui/model"
	"fleetctl/internal/tui/view"
	"fleetctl/pkg/logging"
)

// Update is the central message router.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return quit(m)
		}
		return handleKeyMsg(m, msg)

	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case model.EngineChangedMsg:
		m.ApplySnapshot(m.Engine.View())
		cmds = append(cmds, model.ListenForEngineChangesCmd(m.Changes))

	case model.CommandDoneMsg:
		if msg.Err != nil {
			LogDebug(m, "%s finished with error: %v", msg.Name, msg.Err)
		}
		m.ApplySnapshot(m.Engine.View())

	case model.NewLogEntryMsg:
		handleNewLogEntry(m, msg)
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))

	case model.ClipboardResultMsg:
		if msg.Err != nil {
			logging.Error(controllerSubsystem, msg.Err, "Clipboard write failed")
			cmds = append(cmds, m.SetStatusMessage("Copy "+msg.What+" failed", model.StatusBarError, model.StatusBarMessageDuration))
		} else {
			cmds = append(cmds, m.SetStatusMessage("Copied "+msg.What+" to clipboard", model.StatusBarSuccess, model.StatusBarMessageDuration))
		}

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		m.StatusBarClearCancel = nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if m.CurrentAppMode == model.ModeLogOverlay {
			var cmd tea.Cmd
			m.LogViewport, cmd = m.LogViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		if m.Form != nil {
			cmds = append(cmds, m.Form.Update(msg))
		}
	}

	refreshLogViewport(m)
	return m, tea.Batch(cmds...)
}

func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	w, h := view.LogOverlaySize(m.Width, m.Height)
	m.LogViewport.Width = w
	m.LogViewport.Height = h
	refreshLogViewport(m)
	return m, nil
}

func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) {
	if msg.Entry.Level < logging.LevelInfo && !m.DebugMode {
		return
	}
	model.AddRawLineToActivityLog(m, logging.FormatEntry(msg.Entry))
}

func refreshLogViewport(m *model.Model) {
	widthChanged := m.LogViewportLastWidth != m.LogViewport.Width
	if !m.ActivityLogDirty && !widthChanged {
		return
	}
	atBottom := m.LogViewport.AtBottom()
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog, m.LogViewport.Width))
	if atBottom || m.CurrentAppMode != model.ModeLogOverlay {
		m.LogViewport.GotoBottom()
	}
	m.LogViewportLastWidth = m.LogViewport.Width
	m.ActivityLogDirty = false
}

func quit(m *model.Model) (*model.Model, tea.Cmd) {
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Disconnecting from fleet server..."
	if m.Unsubscribe != nil {
		m.Unsubscribe()
		m.Unsubscribe = nil
	}
	return m, tea.Quit
}
