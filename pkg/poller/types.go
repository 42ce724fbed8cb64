// Package poller drives the periodic refresh of router status and holds
// the last-known snapshot for consumers.
package poller

import "time"

// State is the coordinator's position in its cycle state machine.
type State int32

const (
	StateIdle State = iota
	StateRefreshing
	StateBackoff
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRefreshing:
		return "refreshing"
	case StateBackoff:
		return "backoff"
	default:
		return "unknown"
	}
}

const (
	defaultFastInterval     = 5 * time.Second
	defaultSlowInterval     = 30 * time.Second
	defaultFailureThreshold = 3
	defaultCycleTimeout     = 30 * time.Second
)

// Config controls cycle cadence and failure policy.
type Config struct {
	// FastInterval drives every tick; fast-changing sections (traffic
	// rates, fan speed, thermals) refresh at this cadence.
	FastInterval time.Duration
	// SlowInterval is the cadence for WAN identity, the client table,
	// device info and GPS. Rounded to a whole number of fast ticks.
	SlowInterval time.Duration
	// FailureThreshold is how many consecutive failed cycles are
	// tolerated before consumers are told the data is unavailable.
	FailureThreshold int
	// CycleTimeout bounds a single refresh cycle.
	CycleTimeout time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c

	if out.FastInterval <= 0 {
		out.FastInterval = defaultFastInterval
	}

	if out.SlowInterval < out.FastInterval {
		out.SlowInterval = defaultSlowInterval
	}

	if out.FailureThreshold <= 0 {
		out.FailureThreshold = defaultFailureThreshold
	}

	if out.CycleTimeout <= 0 {
		out.CycleTimeout = defaultCycleTimeout
	}

	return out
}
