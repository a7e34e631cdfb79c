package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/nirban/hms-api/pkg/metrics"
)

type Handler struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

func NewHandler(db *sqlx.DB, m *metrics.Metrics) *Handler {
	return &Handler{
		db:      db,
		metrics: m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	start := time.Now()
	err := h.db.PingContext(c.Request.Context())
	h.metrics.DatabaseLatency.WithLabelValues("ping").Observe(time.Since(start).Seconds())

	if err != nil {
		h.metrics.DatabaseOperations.WithLabelValues("ping", "error").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "Database connection failed",
		})
		return
	}

	h.metrics.DatabaseOperations.WithLabelValues("ping", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
