// Package dashboard is the synchronization and command orchestration engine
// behind every fleetctl front end (TUI, CLI and MCP tools).
//
// The Engine owns one view model: the latest fleet snapshot, the id of the
// host being viewed, the notification list and the single pending
// confirmation. All mutation goes through the engine:
//
//   - the Poller refreshes the snapshot on a fixed interval
//   - the Reconciler swaps snapshots wholesale and resolves the selection by id
//   - the Dispatcher runs a Command, notifies, and forces one refresh on success
//   - the ConfirmationGate holds at most one destructive Command awaiting approval
//   - the NotificationQueue holds transient messages until they expire or are dismissed
//
// Front ends read an immutable View and subscribe to change signals.
package dashboard
