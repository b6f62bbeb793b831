package handlers

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	readinessTimeout = 5 * time.Second
	healthTimeout    = 3 * time.Second
)

// Pinger is satisfied by *pgxpool.Pool and by the Redis client adapter.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name     string
	pinger   Pinger
	required bool
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	deps      []dependency
	startTime time.Time
	version   string
}

// NewHealthHandler probes db on every check and redis, when non-nil, as an
// optional dependency.
func NewHealthHandler(db Pinger, redis Pinger, version string) *HealthHandler {
	h := &HealthHandler{
		deps:      []dependency{{name: "database", pinger: db, required: true}},
		startTime: time.Now(),
		version:   version,
	}
	if redis != nil {
		h.deps = append(h.deps, dependency{name: "redis", pinger: redis})
	}
	return h
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness answers as long as the process serves HTTP.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness fails with 503 only when a required dependency is down; an
// optional one is reported as degraded.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string, len(h.deps)+1),
	}
	code := http.StatusOK

	for _, d := range h.deps {
		err := d.pinger.Ping(ctx)
		switch {
		case err == nil:
			resp.Checks[d.name] = "healthy"
		case d.required:
			resp.Checks[d.name] = "unhealthy: " + err.Error()
			resp.Status, code = "unhealthy", http.StatusServiceUnavailable
		default:
			resp.Checks[d.name] = "degraded: " + err.Error()
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	resp.Checks["memory_alloc_mb"] = strconv.FormatFloat(float64(m.Alloc)/(1<<20), 'f', 2, 64)

	c.JSON(code, resp)
}

// Health is the cheap combined check: the database only.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.deps[0].pinger.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}
