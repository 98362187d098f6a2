package dashboard

import (
	"context"
	"errors"
	"fmt"

	"fleetctl/internal/api"
	"fleetctl/pkg/logging"
)

// ErrHostOffline is returned when a command targets a host the current
// snapshot reports as offline.
var ErrHostOffline = errors.New("host is offline")

// Dispatcher runs commands with one uniform outcome protocol:
// success notifies and forces exactly one refresh, failure notifies and
// leaves the snapshot untouched.
type Dispatcher struct {
	client  api.FleetAPI
	notes   *NotificationQueue
	lookup  func(hostID string) (api.Host, bool)
	refresh func(ctx context.Context) error
}

// NewDispatcher wires a dispatcher. lookup resolves hosts in the current
// snapshot; refresh performs one reconciliation.
func NewDispatcher(client api.FleetAPI, notes *NotificationQueue, lookup func(string) (api.Host, bool), refresh func(context.Context) error) *Dispatcher {
	return &Dispatcher{
		client:  client,
		notes:   notes,
		lookup:  lookup,
		refresh: refresh,
	}
}

// Dispatch runs cmd and reports its outcome through the notification queue.
// The returned error is the command's own failure; a failure of the
// follow-up refresh is surfaced through the connection error state instead.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) error {
	if cmd.RequiresOnlineHost != "" && d.lookup != nil {
		if host, ok := d.lookup(cmd.RequiresOnlineHost); ok && !host.IsOnline {
			d.notes.Push(KindWarning, fmt.Sprintf("%s is offline.", host.Name))
			logging.Warn("Dispatcher", "Refused %s: host %s is offline", cmd.Name, host.ID)
			return fmt.Errorf("%s: %w", cmd.Name, ErrHostOffline)
		}
	}

	logging.Debug("Dispatcher", "Running %s", cmd.Name)
	if err := cmd.Run(ctx, d.client); err != nil {
		d.notes.Push(KindError, "Action failed: "+err.Error())
		var remoteErr *api.RemoteError
		if errors.As(err, &remoteErr) {
			logging.Error("Dispatcher", err, "%s failed (%s, status %d)", cmd.Name, remoteErr.Kind, remoteErr.StatusCode)
		} else {
			logging.Error("Dispatcher", err, "%s failed", cmd.Name)
		}
		return err
	}

	logging.Info("Dispatcher", "%s succeeded", cmd.Name)
	d.notes.Push(KindSuccess, cmd.SuccessMessage)
	if d.refresh != nil {
		_ = d.refresh(ctx)
	}
	return nil
}
