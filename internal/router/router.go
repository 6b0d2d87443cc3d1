package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers bundles every route registrar the router mounts.
type Handlers struct {
	Auth       Handler
	User       Handler
	Kid        Handler
	Team       Handler
	Vehicle    Handler
	Instructor Handler
	Event      Handler
	Gallery    Handler
	Report     Handler
	Ops        *handler.Handler
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	RequestTimeout   time.Duration
	CORSConfig       middleware.CORSConfig
	MetricsPrefix    string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config RouterConfig) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   float64(config.RateLimit),
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.handlers.Auth.RegisterRoutes(api)

	// Everything else requires a valid token. Field-level visibility is
	// enforced inside the kid service, so kid reads stay open to every
	// authenticated role.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.handlers.Kid.RegisterRoutes(protected)

	// Staff routes cover the day-to-day management surface.
	staff := protected.Group("")
	staff.Use(r.auth.RequireRole("admin", "instructor"))
	r.handlers.Team.RegisterRoutes(staff)
	r.handlers.Vehicle.RegisterRoutes(staff)
	r.handlers.Instructor.RegisterRoutes(staff)
	r.handlers.Event.RegisterRoutes(staff)
	r.handlers.Gallery.RegisterRoutes(staff)

	// Account management and reporting stay admin only.
	admin := protected.Group("")
	admin.Use(r.auth.RequireRole("admin"))
	r.handlers.User.RegisterRoutes(admin)
	r.handlers.Report.RegisterRoutes(admin)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("", r.handlers.Ops.HealthCheck)
		health.GET("/live", r.handlers.Ops.LivenessCheck)
		health.GET("/ready", r.handlers.Ops.ReadinessCheck)
		health.GET("/metrics", r.handlers.Ops.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "youthorg_api"
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
