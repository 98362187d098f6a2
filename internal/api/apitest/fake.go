// Package apitest provides an in-memory api.FleetAPI for tests.
package apitest

import (
	"context"
	"fmt"
	"sync"

	"fleetctl/internal/api"
)

// Call records one invocation on the fake.
type Call struct {
	Method string
	HostID string
	AppID  string
	Action string
}

// FakeFleet is a scriptable api.FleetAPI. Hosts is returned by ListHosts;
// the *Err fields, when set, make the corresponding operation fail.
type FakeFleet struct {
	mu sync.Mutex

	Hosts []api.Host

	ListErr    error
	CommandErr error

	// ListHook, when set, runs at the start of ListHosts (outside the lock),
	// letting tests block or reorder in-flight polls.
	ListHook func(ctx context.Context, call int)

	listCalls int
	calls     []Call
	nextID    int
}

var _ api.FleetAPI = (*FakeFleet)(nil)

// NewFakeFleet returns a fake serving the given snapshot.
func NewFakeFleet(hosts ...api.Host) *FakeFleet {
	return &FakeFleet{Hosts: hosts}
}

// SetHosts replaces the snapshot served by ListHosts.
func (f *FakeFleet) SetHosts(hosts ...api.Host) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Hosts = hosts
}

// SetListErr makes subsequent ListHosts calls fail (nil restores success).
func (f *FakeFleet) SetListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListErr = err
}

// SetCommandErr makes subsequent mutating calls fail (nil restores success).
func (f *FakeFleet) SetCommandErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CommandErr = err
}

// ListCalls returns how many times ListHosts was invoked.
func (f *FakeFleet) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// Calls returns the mutating calls received so far.
func (f *FakeFleet) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *FakeFleet) ListHosts(ctx context.Context) ([]api.Host, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	hook := f.ListHook
	f.mu.Unlock()

	if hook != nil {
		hook(ctx, call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]api.Host(nil), f.Hosts...), nil
}

func (f *FakeFleet) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.CommandErr
}

func (f *FakeFleet) AddHost(ctx context.Context, req api.AddHostRequest) (*api.Host, error) {
	if err := f.record(Call{Method: "AddHost"}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	host := api.Host{ID: fmt.Sprintf("host-%d", f.nextID), Name: req.Name, IPAddress: req.IPAddress, Apps: []api.Application{}}
	f.Hosts = append(f.Hosts, host)
	return &host, nil
}

func (f *FakeFleet) DeleteHost(ctx context.Context, hostID string) error {
	if err := f.record(Call{Method: "DeleteHost", HostID: hostID}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.Hosts[:0:0]
	for _, h := range f.Hosts {
		if h.ID != hostID {
			kept = append(kept, h)
		}
	}
	f.Hosts = kept
	return nil
}

func (f *FakeFleet) AddApp(ctx context.Context, hostID string, req api.AddAppRequest) (*api.Application, error) {
	if err := f.record(Call{Method: "AddApp", HostID: hostID}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	app := api.Application{ID: fmt.Sprintf("app-%d", f.nextID), Name: req.Name, Path: req.Path, ProcessName: req.ProcessName, Args: req.Args}
	return &app, nil
}

func (f *FakeFleet) DeleteApp(ctx context.Context, hostID, appID string) error {
	return f.record(Call{Method: "DeleteApp", HostID: hostID, AppID: appID})
}

func (f *FakeFleet) AppAction(ctx context.Context, hostID, appID string, action api.AppActionType) (*api.Ack, error) {
	if err := f.record(Call{Method: "AppAction", HostID: hostID, AppID: appID, Action: string(action)}); err != nil {
		return nil, err
	}
	return &api.Ack{Message: fmt.Sprintf("Command '%s' queued.", action)}, nil
}

func (f *FakeFleet) HostAction(ctx context.Context, hostID string, action api.HostActionType) (*api.Ack, error) {
	if err := f.record(Call{Method: "HostAction", HostID: hostID, Action: string(action)}); err != nil {
		return nil, err
	}
	return nil, nil
}

// OnlineHost builds an online host fixture.
func OnlineHost(id, name string, apps ...api.Application) api.Host {
	return api.Host{
		ID:        id,
		Name:      name,
		IPAddress: "10.0.0." + fmt.Sprint(len(id)),
		IsOnline:  true,
		Stats:     api.SystemStats{CPUUsage: 10, MemUsage: 20, TotalProcesses: 100},
		Apps:      apps,
	}
}

// OfflineHost builds an offline host fixture.
func OfflineHost(id, name string, apps ...api.Application) api.Host {
	h := OnlineHost(id, name, apps...)
	h.IsOnline = false
	h.Stats = api.SystemStats{}
	return h
}
