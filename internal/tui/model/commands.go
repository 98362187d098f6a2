package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"fleetctl/pkg/logging"
)

// ListenForEngineChangesCmd waits for the next engine change signal. It
// returns nil once the subscription is closed.
func ListenForEngineChangesCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return EngineChangedMsg{}
	}
}

// ListenForLogEntriesCmd waits for the next log entry.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// RunEngineCmd runs fn off the update loop and reports completion.
func RunEngineCmd(ctx context.Context, name string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return CommandDoneMsg{Name: name, Err: fn(ctx)}
	}
}
