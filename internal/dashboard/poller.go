package dashboard

import (
	"context"
	"sync"
	"time"

	"fleetctl/pkg/logging"
)

// DefaultPollInterval is the refresh period when none is configured.
const DefaultPollInterval = 5 * time.Second

// Poller runs a refresh immediately and then on every tick until stopped.
// Cycles run one at a time on a single goroutine; ticks that arrive while a
// cycle is in flight are dropped by the ticker.
type Poller struct {
	interval time.Duration
	refresh  func(ctx context.Context) error

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller.
func NewPoller(interval time.Duration, refresh func(ctx context.Context) error) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval, refresh: refresh}
}

// Start launches the poll loop. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Debug("Poller", "Polling every %s", p.interval)
	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			logging.Debug("Poller", "Poll loop stopped")
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	// Failures are recorded by refresh itself; the loop keeps going.
	if err := p.refresh(ctx); err != nil {
		logging.Debug("Poller", "Poll cycle failed: %v", err)
	}
}

// Stop cancels the loop and waits for it to exit. In-flight requests are
// cancelled through the context.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
