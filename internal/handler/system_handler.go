package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// SystemHandler reports liveness and the state of optional backends.
type SystemHandler struct {
	rdb       *redis.Client
	pool      *pgxpool.Pool
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler accepts nil for backends that are not configured.
func NewSystemHandler(rdb *redis.Client, pool *pgxpool.Pool, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:       rdb,
		pool:      pool,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthReport struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	Goroutines int               `json:"goroutines"`
	HeapBytes  uint64            `json:"heap_alloc_bytes"`
	Backends   map[string]string `json:"backends"`
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	report := healthReport{
		Status:     "ok",
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Backends:   map[string]string{},
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	report.HeapBytes = mem.HeapAlloc

	if h.rdb != nil {
		report.Backends["redis"] = h.check(ctx, "redis", func(ctx context.Context) error { return h.rdb.Ping(ctx).Err() }, &report)
	}
	if h.pool != nil {
		report.Backends["postgres"] = h.check(ctx, "postgres", h.pool.Ping, &report)
	}

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, report)
}

func (h *SystemHandler) check(ctx context.Context, name string, ping func(context.Context) error, report *healthReport) string {
	if err := ping(ctx); err != nil {
		h.log.Warn().Err(err).Str("backend", name).Msg("Health check failed")
		report.Status = "degraded"
		return "down"
	}
	return "up"
}
