// Package tui provides the terminal dashboard for fleetctl.
//
// The TUI is built on Bubble Tea and split Model-View-Controller style:
//
//   - model (internal/tui/model): UI state around a dashboard.Engine, key
//     bindings, forms and the messages the program exchanges
//   - controller (internal/tui/controller): routes keys and engine signals,
//     starts engine calls as tea.Cmds
//   - view (internal/tui/view): renders the fleet list, host detail, toasts,
//     the connection banner and overlays
//   - components and design: reusable widgets and the adaptive colour palette
//
// The model never mutates fleet data. It re-reads the engine's View after
// every change signal, so what is drawn is always the engine's latest
// snapshot, selection, notifications and pending confirmation.
//
// # Keyboard
//
// Fleet view: ↑/↓ move, enter opens a computer, a adds one, D deletes,
// S shuts down, R restarts, y copies its IP address. Host view: ↑/↓ move
// between applications, space starts or stops, x deletes, a adds, esc goes
// back. Everywhere: r refreshes, c dismisses the newest notification,
// L shows the activity log, T toggles the theme, ? shows help, q quits.
package tui
