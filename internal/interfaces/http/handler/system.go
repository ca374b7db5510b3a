package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/interfaces/http/router"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping() error
}

// SystemHandler serves liveness and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	cache     CachePinger
	startTime time.Time
}

// CachePinger is the redis-style ping taking a context.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// NewSystemHandler creates a system handler. Either dependency may be nil,
// in which case its check is skipped.
func NewSystemHandler(db Pinger, cache CachePinger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(),
		db:          db,
		cache:       cache,
		startTime:   time.Now(),
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(r *router.Router) {
	public := r.Public()
	public.GET("/ping", h.Ping)
	public.GET("/healthz", h.Healthz)
}

// Ping answers a bare liveness probe.
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}

// Healthz reports readiness including backing-store connectivity.
func (h *SystemHandler) Healthz(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":         state,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"checks":         checks,
	})
}
