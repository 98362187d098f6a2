// Package tools exposes fleet operations as MCP tools.
//
// Every mutating tool goes through the dashboard engine's command protocol,
// so an agent sees the same success and failure messages as the terminal
// dashboard. Destructive host operations (delete, shutdown, restart) pass
// through the confirmation gate and need an explicit confirm=true argument;
// without it the tool only returns the confirmation prompt.
package tools
