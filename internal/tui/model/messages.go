package model

import "fleetctl/pkg/logging"

// EngineChangedMsg signals that the engine view model changed.
type EngineChangedMsg struct{}

// NewLogEntryMsg carries one log entry for the activity log.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// CommandDoneMsg reports the end of an engine call started from the UI.
// Outcome messages are already in the engine's notifications; Err is kept
// for the controller's own bookkeeping.
type CommandDoneMsg struct {
	Name string
	Err  error
}

// ClipboardResultMsg reports a clipboard write.
type ClipboardResultMsg struct {
	What string
	Err  error
}

// ClearStatusBarMsg clears the local status message.
type ClearStatusBarMsg struct{}
