package dashboard

import (
	"sync"
	"time"
)

// NotificationKind is the severity of a notification.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindWarning NotificationKind = "warning"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        int64
	Message   string
	Kind      NotificationKind
	CreatedAt time.Time
}

// NotificationQueue is the append-only list of active notifications. Each
// entry is removed when its display timer fires or when it is dismissed.
// There is no cap; command volume is human-paced.
type NotificationQueue struct {
	mu       sync.Mutex
	nextID   int64
	items    []Notification
	timers   map[int64]*time.Timer
	ttl      time.Duration
	onChange func()
	now      func() time.Time
	closed   bool
}

// NewNotificationQueue creates a queue whose entries expire after ttl.
// A ttl of zero keeps entries until dismissed. onChange, if set, is called
// after every mutation, outside the queue lock.
func NewNotificationQueue(ttl time.Duration, onChange func()) *NotificationQueue {
	return &NotificationQueue{
		timers:   make(map[int64]*time.Timer),
		ttl:      ttl,
		onChange: onChange,
		now:      time.Now,
	}
}

// Push appends a notification and arms its expiry timer.
func (q *NotificationQueue) Push(kind NotificationKind, message string) Notification {
	q.mu.Lock()
	q.nextID++
	n := Notification{
		ID:        q.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: q.now(),
	}
	q.items = append(q.items, n)
	if q.ttl > 0 && !q.closed {
		id := n.ID
		q.timers[id] = time.AfterFunc(q.ttl, func() { q.expire(id) })
	}
	q.mu.Unlock()

	q.changed()
	return n
}

// Dismiss removes exactly the entry with the given id.
func (q *NotificationQueue) Dismiss(id int64) bool {
	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.changed()
	}
	return removed
}

func (q *NotificationQueue) expire(id int64) {
	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.changed()
	}
}

func (q *NotificationQueue) removeLocked(id int64) bool {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the active notifications, oldest first.
func (q *NotificationQueue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification(nil), q.items...)
}

// Close stops all pending expiry timers. Entries stay readable.
func (q *NotificationQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}

func (q *NotificationQueue) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}
