package dashboard

import (
	"sync"
	"time"

	"fleetctl/internal/api"
)

// Reconciler holds the authoritative local snapshot and the selected host id.
//
// Refreshes are numbered when they start. A result is applied only if no
// refresh that started later has already settled, so a slow response can
// never overwrite a newer snapshot.
type Reconciler struct {
	mu sync.RWMutex

	hosts      []api.Host
	selectedID string

	loading     bool
	lastErr     error
	lastUpdated time.Time

	started uint64
	settled uint64
}

// NewReconciler returns an empty reconciler in the loading state.
func NewReconciler() *Reconciler {
	return &Reconciler{
		hosts:   []api.Host{},
		loading: true,
	}
}

// Begin reserves a sequence number for a refresh about to start.
func (r *Reconciler) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
	return r.started
}

// Apply replaces the snapshot with hosts fetched by refresh seq. It reports
// false when the result is stale and was discarded.
func (r *Reconciler) Apply(seq uint64, hosts []api.Host, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq <= r.settled {
		return false
	}
	r.settled = seq
	r.replaceLocked(hosts)
	r.lastErr = nil
	r.loading = false
	r.lastUpdated = now
	return true
}

// Fail records a failed refresh. The last good snapshot is kept.
func (r *Reconciler) Fail(seq uint64, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq <= r.settled {
		return false
	}
	r.settled = seq
	r.lastErr = err
	r.loading = false
	return true
}

// Replace swaps in a snapshot outside the refresh sequence.
func (r *Reconciler) Replace(hosts []api.Host) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceLocked(hosts)
}

func (r *Reconciler) replaceLocked(hosts []api.Host) {
	r.hosts = cloneHosts(hosts)
	if r.selectedID != "" && indexOf(r.hosts, r.selectedID) < 0 {
		r.selectedID = ""
	}
}

// Select sets the viewed host; "" returns to the fleet view. Selecting an id
// that is not in the current snapshot leaves the selection unchanged and
// reports false.
func (r *Reconciler) Select(hostID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hostID == "" {
		r.selectedID = ""
		return true
	}
	if indexOf(r.hosts, hostID) < 0 {
		return false
	}
	r.selectedID = hostID
	return true
}

// Selected looks the selected id up in the current snapshot.
func (r *Reconciler) Selected() (api.Host, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(r.selectedID)
}

// Lookup returns the host with the given id from the current snapshot.
func (r *Reconciler) Lookup(hostID string) (api.Host, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(hostID)
}

func (r *Reconciler) lookupLocked(hostID string) (api.Host, bool) {
	if hostID == "" {
		return api.Host{}, false
	}
	i := indexOf(r.hosts, hostID)
	if i < 0 {
		return api.Host{}, false
	}
	return cloneHost(r.hosts[i]), true
}

// SelectedID returns the raw selection ("" for none).
func (r *Reconciler) SelectedID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selectedID
}

// Hosts returns a copy of the current snapshot.
func (r *Reconciler) Hosts() []api.Host {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneHosts(r.hosts)
}

// Read is a consistent copy of the reconciler state taken under one lock.
type Read struct {
	Hosts       []api.Host
	SelectedID  string
	Selected    *api.Host
	Loading     bool
	LastErr     error
	LastUpdated time.Time
}

// Read returns hosts, selection and status together, so the selected host
// is always one of the returned hosts.
func (r *Reconciler) Read() Read {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := Read{
		Hosts:       cloneHosts(r.hosts),
		SelectedID:  r.selectedID,
		Loading:     r.loading,
		LastErr:     r.lastErr,
		LastUpdated: r.lastUpdated,
	}
	if h, ok := r.lookupLocked(r.selectedID); ok {
		out.Selected = &h
	}
	return out
}

// Status returns the loading flag, the last refresh error and the time of
// the last successful refresh.
func (r *Reconciler) Status() (loading bool, lastErr error, lastUpdated time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading, r.lastErr, r.lastUpdated
}

func indexOf(hosts []api.Host, id string) int {
	for i := range hosts {
		if hosts[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneHost(h api.Host) api.Host {
	h.Apps = append([]api.Application(nil), h.Apps...)
	return h
}

func cloneHosts(hosts []api.Host) []api.Host {
	out := make([]api.Host, len(hosts))
	for i, h := range hosts {
		out[i] = cloneHost(h)
	}
	return out
}
