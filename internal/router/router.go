package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	adminHandler "github.com/nirban/hms-api/internal/handler/admin"
	ambulanceHandler "github.com/nirban/hms-api/internal/handler/ambulance"
	authHandler "github.com/nirban/hms-api/internal/handler/auth"
	bloodHandler "github.com/nirban/hms-api/internal/handler/blood"
	donorHandler "github.com/nirban/hms-api/internal/handler/donor"
	driverHandler "github.com/nirban/hms-api/internal/handler/driver"
	healthHandler "github.com/nirban/hms-api/internal/handler/health"
	receptionHandler "github.com/nirban/hms-api/internal/handler/reception"
	staffHandler "github.com/nirban/hms-api/internal/handler/staff"
	"github.com/nirban/hms-api/internal/middleware"
)

type Handlers struct {
	Auth      *authHandler.Handler
	Blood     *bloodHandler.Handler
	Donor     *donorHandler.Handler
	Ambulance *ambulanceHandler.Handler
	Driver    *driverHandler.Handler
	Reception *receptionHandler.Handler
	Admin     *adminHandler.Handler
	Staff     *staffHandler.Handler
	Health    *healthHandler.Handler
}

type Config struct {
	RateLimitEnabled  bool
	RequestsPerSecond float64
	RateBurst         int
	CORSConfig        middleware.CORSConfig
	MetricsEnabled    bool
	MetricsPath       string
	MetricsPrefix     string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	config   Config
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		config:   config,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(config.RequestsPerSecond),
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	if r.config.MetricsEnabled {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.handlers.Blood.RegisterRoutes(protected, r.auth)
	r.handlers.Donor.RegisterRoutes(protected, r.auth)
	r.handlers.Ambulance.RegisterRoutes(protected)
	r.handlers.Driver.RegisterRoutes(protected, r.auth)
	r.handlers.Reception.RegisterRoutes(protected, r.auth)
	r.handlers.Admin.RegisterRoutes(protected, r.auth)
	r.handlers.Staff.RegisterRoutes(protected, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "http"
	}
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
