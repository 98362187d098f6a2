package dashboard

import "sync"

// Confirmation is the state of the confirmation slot: either NoConfirmation
// or PendingConfirmation. The unexported method seals the set of variants.
type Confirmation interface {
	isConfirmation()
}

// NoConfirmation means nothing is awaiting approval.
type NoConfirmation struct{}

// PendingConfirmation is a destructive command awaiting approval.
type PendingConfirmation struct {
	Title       string
	Description string
	Command     Command
}

func (NoConfirmation) isConfirmation()      {}
func (PendingConfirmation) isConfirmation() {}

// ConfirmationGate holds at most one pending confirmation. A new request
// replaces the current one; the replaced command never runs.
type ConfirmationGate struct {
	mu    sync.Mutex
	state Confirmation
}

// NewConfirmationGate returns an empty gate.
func NewConfirmationGate() *ConfirmationGate {
	return &ConfirmationGate{state: NoConfirmation{}}
}

// Request stores cmd as the pending confirmation and reports whether an
// earlier pending one was discarded.
func (g *ConfirmationGate) Request(title, description string, cmd Command) (replaced bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, replaced = g.state.(PendingConfirmation)
	g.state = PendingConfirmation{Title: title, Description: description, Command: cmd}
	return replaced
}

// Take clears the slot and returns what was pending.
func (g *ConfirmationGate) Take() (PendingConfirmation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.state.(PendingConfirmation)
	g.state = NoConfirmation{}
	return p, ok
}

// Cancel clears the slot without running anything.
func (g *ConfirmationGate) Cancel() bool {
	_, ok := g.Take()
	return ok
}

// Current returns the slot state.
func (g *ConfirmationGate) Current() Confirmation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
