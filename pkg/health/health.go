// Package health provides liveness and readiness probe endpoints.
//
// Registered checks run on one shared background loop. A check flips to
// unhealthy after failing consecutively failThreshold times and recovers on
// the first success, which keeps a briefly flaky dependency from bouncing
// the probe state.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc probes one component, returning nil when it is healthy.
type CheckFunc func(ctx context.Context) error

const failThreshold = 3

// probe is a registered check plus its runtime state. The fail counter is
// only touched by the runner goroutine; healthy and lastErr are shared with
// HTTP handlers through atomics.
type probe struct {
	name    string
	timeout time.Duration
	check   CheckFunc

	fails   int
	healthy atomic.Bool
	lastErr atomic.Pointer[error]
}

func newProbe(name string, timeout time.Duration, check CheckFunc) *probe {
	p := &probe{name: name, timeout: timeout, check: check}
	p.healthy.Store(true)
	return p
}

func (p *probe) run(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
	err := p.check(checkCtx)
	cancel()

	p.lastErr.Store(&err)
	if err != nil {
		p.fails++
		if p.fails >= failThreshold {
			p.healthy.Store(false)
		}
		return
	}
	p.fails = 0
	p.healthy.Store(true)
}

func (p *probe) failure() string {
	if p.healthy.Load() {
		return ""
	}
	if errp := p.lastErr.Load(); errp != nil && *errp != nil {
		return (*errp).Error()
	}
	return "unhealthy"
}

// Service runs health probes and serves their state over HTTP.
type Service struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*probe
	readiness []*probe
	cancel    context.CancelFunc
}

// New creates a Service in the not-ready state; call SetReady(true) once
// initialization finishes.
func New() *Service {
	return &Service{}
}

// AddLiveness registers a liveness check (is the process functional).
func (s *Service) AddLiveness(name string, timeout time.Duration, check CheckFunc) {
	s.mu.Lock()
	s.liveness = append(s.liveness, newProbe(name, timeout, check))
	s.mu.Unlock()
}

// AddReadiness registers a readiness check (can the service take traffic).
func (s *Service) AddReadiness(name string, timeout time.Duration, check CheckFunc) {
	s.mu.Lock()
	s.readiness = append(s.readiness, newProbe(name, timeout, check))
	s.mu.Unlock()
}

// Start launches the background loop running every registered probe at the
// given interval. Probes also run once immediately.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	probes := append(append([]*probe(nil), s.liveness...), s.readiness...)
	s.mu.Unlock()

	go func() {
		runAll := func() {
			for _, p := range probes {
				p.run(ctx)
			}
		}
		runAll()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runAll()
			}
		}
	}()
}

// Stop cancels the background loop. Safe to call repeatedly.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SetReady sets the manual readiness gate: true after initialization,
// false during graceful shutdown to drain traffic.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady reports whether the gate is open and every readiness probe passes.
func (s *Service) IsReady() bool {
	if !s.ready.Load() {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.readiness {
		if !p.healthy.Load() {
			return false
		}
	}
	return true
}

type statusBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves the liveness probe: 200 when every liveness check
// passes, 503 with per-check failures otherwise.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	probes := append([]*probe(nil), s.liveness...)
	s.mu.RUnlock()

	writeStatus(w, failures(probes))
}

// ReadyEndpoint serves the readiness probe: 200 when the manual gate is
// open and every readiness check passes, 503 otherwise.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	probes := append([]*probe(nil), s.readiness...)
	s.mu.RUnlock()

	fails := failures(probes)
	if !s.ready.Load() {
		if fails == nil {
			fails = map[string]string{}
		}
		fails["service"] = "not ready"
	}
	writeStatus(w, fails)
}

func failures(probes []*probe) map[string]string {
	var fails map[string]string
	for _, p := range probes {
		if msg := p.failure(); msg != "" {
			if fails == nil {
				fails = make(map[string]string)
			}
			fails[p.name] = msg
		}
	}
	return fails
}

func writeStatus(w http.ResponseWriter, fails map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	if len(fails) == 0 {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(statusBody{Status: "ok"})
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(statusBody{Status: "unhealthy", Checks: fails})
}
