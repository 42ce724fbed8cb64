// Package poller pkg/poller/poller.go

package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pepwatch/pepwatch/pkg/models"
	"github.com/pepwatch/pepwatch/pkg/peplink"
)

// Poller is the update coordinator. It drives refresh cycles off a single
// timer, skips ticks while a cycle is in flight, holds the last-known
// snapshot for consumer reads, and tracks the consecutive-failure policy.
type Poller struct {
	cfg       Config
	refresher Refresher
	client    peplink.Client // nil when constructed for tests without a real client

	mu        sync.RWMutex
	snap      *models.Snapshot
	state     State
	failures  int
	available bool
	subs      map[chan *models.Snapshot]struct{}
}

// New creates a coordinator polling the given router client.
func New(cfg Config, client peplink.Client) *Poller {
	p := newPoller(cfg, NewAggregator(client))
	p.client = client

	return p
}

func newPoller(cfg Config, refresher Refresher) *Poller {
	return &Poller{
		cfg:       cfg.withDefaults(),
		refresher: refresher,
		state:     StateIdle,
		subs:      make(map[chan *models.Snapshot]struct{}),
	}
}

// Start runs the tick loop until ctx is canceled. The first cycle is a
// full refresh issued immediately; after that, fast sections refresh every
// tick and slow sections every slowEvery ticks. An in-flight cycle is
// never hard-canceled on shutdown; we just stop scheduling.
func (p *Poller) Start(ctx context.Context) error {
	if p.cfg.FastInterval <= 0 {
		return ErrInvalidInterval
	}

	slowEvery := int(p.cfg.SlowInterval / p.cfg.FastInterval)
	if slowEvery < 1 {
		slowEvery = 1
	}

	p.tryRefresh(true)

	ticker := time.NewTicker(p.cfg.FastInterval)
	defer ticker.Stop()

	tick := 0

	for {
		select {
		case <-ctx.Done():
			p.release()
			return ctx.Err()
		case <-ticker.C:
			tick++
			p.tryRefresh(tick%slowEvery == 0)
		}
	}
}

// Refresh triggers one synchronous cycle outside the timer, for callers
// that want fresh data now. Returns ErrRefreshInFlight if a cycle is
// already running.
func (p *Poller) Refresh(ctx context.Context) error {
	if !p.beginRefresh() {
		return ErrRefreshInFlight
	}

	return p.runCycle(ctx, true)
}

// tryRefresh starts an asynchronous cycle unless one is already in
// flight, in which case the tick is skipped.
func (p *Poller) tryRefresh(includeSlow bool) {
	if !p.beginRefresh() {
		log.Printf("Skipping tick: refresh already in progress")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.CycleTimeout)
		defer cancel()

		if err := p.runCycle(ctx, includeSlow); err != nil {
			log.Printf("Refresh cycle failed: %v", err)
		}
	}()
}

func (p *Poller) beginRefresh() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateRefreshing {
		return false
	}

	p.state = StateRefreshing

	return true
}

// runCycle executes one refresh. Callers must have won beginRefresh.
func (p *Poller) runCycle(ctx context.Context, includeSlow bool) error {
	snap, err := p.refresher.Refresh(ctx, p.Snapshot(), includeSlow)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.failures++
		p.state = StateBackoff

		if p.failures >= p.cfg.FailureThreshold && p.available {
			log.Printf("Marking data unavailable after %d consecutive failed cycles", p.failures)

			p.available = false
		}

		return err
	}

	if snap.Degraded() {
		log.Printf("Cycle degraded: %d of %d sections stale", staleCount(snap), len(snap.Status))
	}

	// Atomic swap: consumers never observe a partially merged snapshot.
	p.snap = snap
	p.failures = 0
	p.available = true
	p.state = StateIdle

	p.notifyLocked(snap)

	return nil
}

// Snapshot returns the most recent successfully produced snapshot, or nil
// before the first cycle completes. The returned value is never mutated
// after publication.
func (p *Poller) Snapshot() *models.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.snap
}

// Available reports whether consumers should treat the data as live.
// False before the first successful cycle and after the consecutive
// failure threshold has been crossed.
func (p *Poller) Available() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.available
}

// State returns the coordinator's current cycle state.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state
}

// FailureCount returns the consecutive failed-cycle count.
func (p *Poller) FailureCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.failures
}

// Subscribe registers for on-change snapshot notifications. Slow
// consumers miss updates rather than blocking the coordinator. The
// returned func unsubscribes; it is safe to call more than once.
func (p *Poller) Subscribe() (<-chan *models.Snapshot, func()) {
	ch := make(chan *models.Snapshot, 1)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		if _, ok := p.subs[ch]; ok {
			delete(p.subs, ch)
			close(ch)
		}
	}

	return ch, cancel
}

// notifyLocked pushes a fresh snapshot to subscribers. Callers hold p.mu,
// which also serializes against Subscribe's close.
func (p *Poller) notifyLocked(snap *models.Snapshot) {
	for ch := range p.subs {
		select {
		case ch <- snap:
		default:
			// Drain the stale value so the latest one lands.
			select {
			case <-ch:
			default:
			}

			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// release forgets the session on shutdown.
func (p *Poller) release() {
	if p.client != nil {
		p.client.Close()
	}
}

func staleCount(snap *models.Snapshot) int {
	n := 0

	for _, st := range snap.Status {
		if !st.OK {
			n++
		}
	}

	return n
}
