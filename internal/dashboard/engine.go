package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fleetctl/internal/api"
	"fleetctl/pkg/logging"
)

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 5 * time.Second

// ErrUnknownHost is returned when an intent names a host that is not in
// the current snapshot.
var ErrUnknownHost = errors.New("host not found")

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	PollInterval    time.Duration
	NotificationTTL time.Duration
}

// View is a read-only copy of the engine state for rendering.
type View struct {
	Hosts         []api.Host
	SelectedID    string
	Selected      *api.Host
	Notifications []Notification
	Confirmation  Confirmation
	// Loading is true until the first refresh settles.
	Loading bool
	// ConnectionError is the banner text of the last failed refresh, or ""
	// once a refresh succeeds.
	ConnectionError string
	LastUpdated     time.Time
}

// Engine ties together the poller, reconciler, dispatcher, confirmation gate
// and notification queue behind one API for the front ends.
type Engine struct {
	client     api.FleetAPI
	state      *Reconciler
	notes      *NotificationQueue
	gate       *ConfirmationGate
	dispatcher *Dispatcher
	poller     *Poller

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates an engine bound to client. Nothing runs until Start.
func New(client api.FleetAPI, opts Options) *Engine {
	if opts.NotificationTTL <= 0 {
		opts.NotificationTTL = DefaultNotificationTTL
	}

	e := &Engine{
		client: client,
		state:  NewReconciler(),
		gate:   NewConfirmationGate(),
		subs:   make(map[int]chan struct{}),
	}
	e.notes = NewNotificationQueue(opts.NotificationTTL, e.changed)
	e.dispatcher = NewDispatcher(client, e.notes, e.state.Lookup, e.Refresh)
	e.poller = NewPoller(opts.PollInterval, e.Refresh)
	return e
}

// Start begins polling. The first refresh runs immediately.
func (e *Engine) Start(ctx context.Context) {
	logging.Info("Engine", "Starting fleet synchronization")
	e.poller.Start(ctx)
}

// Stop halts polling and pending notification timers.
func (e *Engine) Stop() {
	e.poller.Stop()
	e.notes.Close()
	logging.Info("Engine", "Fleet synchronization stopped")
}

// Refresh fetches the fleet once and reconciles it. A failure keeps the
// last good snapshot and sets the connection banner; it never produces a
// notification.
func (e *Engine) Refresh(ctx context.Context) error {
	seq := e.state.Begin()
	hosts, err := e.client.ListHosts(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			// Shutting down; not a connectivity problem.
			return err
		}
		if e.state.Fail(seq, err) {
			logging.Warn("Engine", "Refresh failed: %v", err)
			e.changed()
		}
		return err
	}

	if e.state.Apply(seq, hosts, time.Now()) {
		logging.Debug("Engine", "Snapshot updated with %d hosts", len(hosts))
		e.changed()
	} else {
		logging.Debug("Engine", "Discarded stale snapshot (refresh %d)", seq)
	}
	return nil
}

// Snapshot returns the current fleet.
func (e *Engine) Snapshot() []api.Host {
	return e.state.Hosts()
}

// Select changes the viewed host; "" returns to the fleet view.
func (e *Engine) Select(hostID string) bool {
	ok := e.state.Select(hostID)
	if ok {
		e.changed()
	}
	return ok
}

// Dispatch runs cmd through the command protocol.
func (e *Engine) Dispatch(ctx context.Context, cmd Command) error {
	return e.dispatcher.Dispatch(ctx, cmd)
}

// RequestConfirmation parks cmd until ConfirmPending or CancelPending. Any
// earlier pending command is discarded without running.
func (e *Engine) RequestConfirmation(title, description string, cmd Command) {
	if e.gate.Request(title, description, cmd) {
		logging.Debug("Engine", "Pending confirmation replaced by %q", title)
	}
	e.changed()
}

// ConfirmPending clears the pending confirmation and dispatches its
// command. It is a no-op when nothing is pending.
func (e *Engine) ConfirmPending(ctx context.Context) error {
	p, ok := e.gate.Take()
	if !ok {
		return nil
	}
	e.changed()
	return e.dispatcher.Dispatch(ctx, p.Command)
}

// CancelPending discards the pending confirmation.
func (e *Engine) CancelPending() {
	if e.gate.Cancel() {
		e.changed()
	}
}

// DismissNotification removes exactly the notification with id.
func (e *Engine) DismissNotification(id int64) bool {
	return e.notes.Dismiss(id)
}

// Notify pushes a notification that did not come from a command, such as
// a form validation warning.
func (e *Engine) Notify(kind NotificationKind, message string) Notification {
	return e.notes.Push(kind, message)
}

// View returns a copy of the full view model.
func (e *Engine) View() View {
	s := e.state.Read()
	v := View{
		Hosts:         s.Hosts,
		SelectedID:    s.SelectedID,
		Selected:      s.Selected,
		Notifications: e.notes.List(),
		Confirmation:  e.gate.Current(),
		Loading:       s.Loading,
		LastUpdated:   s.LastUpdated,
	}
	if s.LastErr != nil {
		v.ConnectionError = ConnectionBanner(s.LastErr)
	}
	return v
}

// ConnectionBanner is the persistent banner text for a failed refresh.
func ConnectionBanner(err error) string {
	return fmt.Sprintf("Failed to connect to server. Is it running? Error: %v", err)
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals coalesce: a slow reader sees one pending signal, not one
// per change. The returned func unsubscribes and closes the channel.
func (e *Engine) Subscribe() (<-chan struct{}, func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan struct{}, 1)
	e.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.subMu.Lock()
			defer e.subMu.Unlock()
			delete(e.subs, id)
			close(ch)
		})
	}
}

func (e *Engine) changed() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// AddHost validates req and dispatches it. Invalid input becomes a warning
// notification and nothing is sent.
func (e *Engine) AddHost(ctx context.Context, req api.AddHostRequest) error {
	if err := api.Validate(req); err != nil {
		e.notes.Push(KindWarning, err.Error())
		return err
	}
	return e.Dispatch(ctx, AddHost(req))
}

// AddApp validates req and dispatches it against hostID.
func (e *Engine) AddApp(ctx context.Context, hostID string, req api.AddAppRequest) error {
	if err := api.Validate(req); err != nil {
		e.notes.Push(KindWarning, err.Error())
		return err
	}
	return e.Dispatch(ctx, AddApp(hostID, req))
}

// DeleteApp removes an application immediately, without confirmation.
func (e *Engine) DeleteApp(ctx context.Context, hostID, appID string) error {
	_, app, err := e.resolveApp(hostID, appID)
	if err != nil {
		return err
	}
	return e.Dispatch(ctx, DeleteApp(hostID, app))
}

// AppAction starts or stops an application.
func (e *Engine) AppAction(ctx context.Context, hostID, appID string, action api.AppActionType) error {
	_, app, err := e.resolveApp(hostID, appID)
	if err != nil {
		return err
	}
	return e.Dispatch(ctx, AppAction(hostID, app, action))
}

// RequestDeleteHost asks for confirmation before deleting hostID.
func (e *Engine) RequestDeleteHost(hostID string) error {
	host, ok := e.state.Lookup(hostID)
	if !ok {
		return fmt.Errorf("delete %q: %w", hostID, ErrUnknownHost)
	}
	title, desc := DeleteHostPrompt(host)
	e.RequestConfirmation(title, desc, DeleteHost(host))
	return nil
}

// RequestHostAction asks for confirmation before shutting down or
// restarting hostID.
func (e *Engine) RequestHostAction(hostID string, action api.HostActionType) error {
	host, ok := e.state.Lookup(hostID)
	if !ok {
		return fmt.Errorf("%s %q: %w", action, hostID, ErrUnknownHost)
	}
	title, desc := HostActionPrompt(host, action)
	e.RequestConfirmation(title, desc, HostAction(host.ID, action))
	return nil
}

// DeleteHostPrompt returns the confirmation title and description for
// deleting host.
func DeleteHostPrompt(host api.Host) (title, description string) {
	return fmt.Sprintf("Delete %s?", host.Name),
		fmt.Sprintf("Are you sure you want to delete %s? This will remove it from the dashboard.", host.Name)
}

// HostActionPrompt returns the confirmation title and description for a
// power action on host.
func HostActionPrompt(host api.Host, action api.HostActionType) (title, description string) {
	return fmt.Sprintf("Confirm %s", action),
		fmt.Sprintf("Are you sure you want to %s %s?", action, host.Name)
}

func (e *Engine) resolveApp(hostID, appID string) (api.Host, api.Application, error) {
	host, ok := e.state.Lookup(hostID)
	if !ok {
		return api.Host{}, api.Application{}, fmt.Errorf("%q: %w", hostID, ErrUnknownHost)
	}
	app, ok := host.FindApp(appID)
	if !ok {
		return host, api.Application{}, fmt.Errorf("application %q not found on %s", appID, host.Name)
	}
	return host, app, nil
}
