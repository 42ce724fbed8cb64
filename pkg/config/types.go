package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var errInvalidDuration = errors.New("invalid duration")

// Duration is a wrapper around time.Duration for JSON unmarshaling.
// It accepts either a duration string ("30s") or a numeric nanosecond value.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// RouterConfig holds the credentials and address of the router to poll.
type RouterConfig struct {
	Host      string `json:"host"`       // e.g., 192.168.1.1
	Username  string `json:"username"`
	Password  string `json:"password"`
	VerifySSL *bool  `json:"verify_ssl"` // nil means true
}

// PollerConfig controls the update cycle cadence and failure policy.
type PollerConfig struct {
	FastInterval     Duration `json:"fast_interval"`     // fan speed, thermals, rates
	SlowInterval     Duration `json:"slow_interval"`     // WAN identity, client list
	FailureThreshold int      `json:"failure_threshold"` // consecutive failed cycles before "unavailable"
}

// APIConfig configures the consumer-facing HTTP surface.
type APIConfig struct {
	ListenAddr string `json:"listen_addr"` // e.g., :8090
}

// Config is the top-level pepwatch configuration.
type Config struct {
	Router RouterConfig `json:"router"`
	Poller PollerConfig `json:"poller"`
	API    APIConfig    `json:"api"`
}

const (
	defaultFastInterval     = 5 * time.Second
	defaultSlowInterval     = 30 * time.Second
	defaultFailureThreshold = 3
	defaultListenAddr       = ":8090"
)

var (
	errHostRequired     = errors.New("router host is required")
	errUsernameRequired = errors.New("router username is required")
	errPasswordRequired = errors.New("router password is required")
)

// Validate implements the Validator interface and applies defaults.
func (c *Config) Validate() error {
	if c.Router.Host == "" {
		return errHostRequired
	}

	if c.Router.Username == "" {
		return errUsernameRequired
	}

	if c.Router.Password == "" {
		return errPasswordRequired
	}

	if time.Duration(c.Poller.FastInterval) <= 0 {
		c.Poller.FastInterval = Duration(defaultFastInterval)
	}

	if time.Duration(c.Poller.SlowInterval) < time.Duration(c.Poller.FastInterval) {
		c.Poller.SlowInterval = Duration(defaultSlowInterval)
	}

	if c.Poller.FailureThreshold <= 0 {
		c.Poller.FailureThreshold = defaultFailureThreshold
	}

	if c.API.ListenAddr == "" {
		c.API.ListenAddr = defaultListenAddr
	}

	return nil
}

// SSLVerification reports whether TLS certificates should be verified.
func (r *RouterConfig) SSLVerification() bool {
	return r.VerifySSL == nil || *r.VerifySSL
}
