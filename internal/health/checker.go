package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wws/adminconsole/internal/config"
)

// Status represents the reachability of the admin backend.
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON responses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BackendHealth holds the result of the most recent probes.
type BackendHealth struct {
	Status              Status    `json:"status"`
	LastCheck           time.Time `json:"last_check"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
}

// Prober reaches the backend with an authenticated request.
type Prober interface {
	Ping(ctx context.Context) error
}

// Reporter publishes the probe result.
type Reporter interface {
	SetBackendUp(up bool)
}

// Checker probes the admin backend on demand. Nothing runs in the
// background; each readiness request triggers one probe.
type Checker struct {
	prober   Prober
	reporter Reporter

	timeout          time.Duration
	failureThreshold int

	mu    sync.RWMutex
	state BackendHealth
}

// NewChecker creates a checker. A nil reporter is allowed.
func NewChecker(p Prober, r Reporter, hcCfg config.HealthCheckConfig) *Checker {
	threshold := hcCfg.FailureThreshold
	if threshold < 1 {
		threshold = 1
	}
	return &Checker{
		prober:           p,
		reporter:         r,
		timeout:          hcCfg.Timeout,
		failureThreshold: threshold,
	}
}

// Check probes the backend once and returns the updated state.
func (c *Checker) Check(ctx context.Context) BackendHealth {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	err := c.prober.Ping(ctx)
	return c.updateStatus(err)
}

func (c *Checker) updateStatus(err error) BackendHealth {
	c.mu.Lock()
	defer c.mu.Unlock()

	th := &c.state
	th.LastCheck = time.Now()

	if err == nil {
		if th.ConsecutiveFailures > 0 {
			slog.Info("backend recovered", "failures", th.ConsecutiveFailures)
		}
		th.Status = StatusHealthy
		th.ConsecutiveFailures = 0
		th.LastError = ""
	} else {
		th.ConsecutiveFailures++
		th.LastError = err.Error()
		if th.ConsecutiveFailures >= c.failureThreshold {
			if th.Status != StatusUnhealthy {
				slog.Warn("backend marked unhealthy", "failures", th.ConsecutiveFailures, "error", th.LastError)
			}
			th.Status = StatusUnhealthy
		}
	}

	if c.reporter != nil {
		c.reporter.SetBackendUp(th.Status == StatusHealthy)
	}
	return *th
}

// IsHealthy returns whether the backend is healthy (or unknown, which is
// treated as healthy).
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Status != StatusUnhealthy
}

// GetStatus returns the last recorded state without probing.
func (c *Checker) GetStatus() BackendHealth {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}
