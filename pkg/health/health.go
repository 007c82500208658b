// Package health provides liveness and readiness probes for a running play
// session, served next to its Prometheus metrics.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/opd-ai/go-planetwalk/pkg/render"
)

// HealthCheck defines the interface for individual health checks.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check performs the health check and returns an error if unhealthy
	Check(ctx context.Context) error
}

// HealthStatus represents the overall health status of the application.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth represents the health status of an individual component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker manages and executes health checks for the application.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a new health checker instance.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers a health check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// CheckHealth executes all registered health checks. The overall status is
// "healthy" only if every check passes.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: "healthy",
		Checks: make(map[string]ComponentHealth),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		} else {
			status.Checks[name] = ComponentHealth{
				Status: "healthy",
			}
		}
	}

	return status
}

// LivenessHandler answers 200 while the process is up.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client may disconnect
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs every check and answers 200 when all pass, 503
// otherwise.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := hc.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	//nolint:errcheck // client may disconnect
	json.NewEncoder(w).Encode(health)
}

// Heartbeat records the time and number of the latest rendered frame. It
// is a render.Renderer, so the frame loop feeds it while probes read it
// from other goroutines.
type Heartbeat struct {
	last   atomic.Int64 // unix nanoseconds
	frame  atomic.Uint64
	active atomic.Bool
	now    func() time.Time
}

// NewHeartbeat creates an idle heartbeat
func NewHeartbeat() *Heartbeat {
	return &Heartbeat{now: time.Now}
}

// Render implements render.Renderer.
func (h *Heartbeat) Render(s render.Snapshot) error {
	h.last.Store(h.now().UnixNano())
	h.frame.Store(s.Frame)
	h.active.Store(true)
	return nil
}

// Stop marks the session as ended
func (h *Heartbeat) Stop() { h.active.Store(false) }

// Frame returns the number of the latest frame
func (h *Heartbeat) Frame() uint64 { return h.frame.Load() }

// SessionCheck fails until the first frame and after Stop
type SessionCheck struct {
	hb *Heartbeat
}

// NewSessionCheck creates a session check reading hb
func NewSessionCheck(hb *Heartbeat) *SessionCheck {
	return &SessionCheck{hb: hb}
}

// Name returns the name of this health check.
func (c *SessionCheck) Name() string { return "session" }

// Check verifies that a session is running.
func (c *SessionCheck) Check(context.Context) error {
	if !c.hb.active.Load() {
		return oops.Code("SESSION_INACTIVE").Errorf("session is not running")
	}
	return nil
}

// FrameCheck fails when no frame was rendered within maxAge
type FrameCheck struct {
	hb     *Heartbeat
	maxAge time.Duration
}

// NewFrameCheck creates a check for a stalled frame loop
func NewFrameCheck(hb *Heartbeat, maxAge time.Duration) *FrameCheck {
	return &FrameCheck{hb: hb, maxAge: maxAge}
}

// Name returns the name of this health check.
func (c *FrameCheck) Name() string { return "frames" }

// Check verifies that frames are still being rendered.
func (c *FrameCheck) Check(context.Context) error {
	last := c.hb.last.Load()
	if last == 0 {
		return oops.Code("FRAME_STALLED").Errorf("no frame rendered yet")
	}
	if age := c.hb.now().Sub(time.Unix(0, last)); age > c.maxAge {
		return oops.Code("FRAME_STALLED").
			With("frame", c.hb.Frame()).
			Errorf("last frame %s ago exceeds %s", age.Round(time.Millisecond), c.maxAge)
	}
	return nil
}

// MemoryCheck fails when heap usage exceeds a limit
type MemoryCheck struct {
	maxMB int64
	usage func() int64
}

// NewMemoryCheck creates a memory check. usage returns the heap size in
// megabytes; nil reads the Go runtime.
func NewMemoryCheck(maxMB int64, usage func() int64) *MemoryCheck {
	if usage == nil {
		usage = heapMB
	}
	return &MemoryCheck{maxMB: maxMB, usage: usage}
}

func heapMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}

// Name returns the name of this health check.
func (c *MemoryCheck) Name() string { return "memory" }

// Check verifies that memory usage is within the limit.
func (c *MemoryCheck) Check(context.Context) error {
	if current := c.usage(); current > c.maxMB {
		return oops.Code("MEMORY_LIMIT").
			With("current_mb", current, "max_mb", c.maxMB).
			Errorf("memory usage %dMB exceeds limit %dMB", current, c.maxMB)
	}
	return nil
}
