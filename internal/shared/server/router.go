package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/resumes"
	"resume-screener/internal/services/health"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const parseRateLimitGroup = "PARSE"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config        config.Config
	ResumeHandler *resumes.Handler
	Health        *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		ok, payload := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})

	if deps.ResumeHandler != nil {
		parseLimit := middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: parseRateLimitGroup,
			Limiter:      middleware.NewRateLimiter(nil),
			Rules: map[string]middleware.RateLimitRule{
				parseRateLimitGroup: {
					Rate:  deps.Config.ParseRateLimitRPS,
					Burst: deps.Config.ParseRateLimitBurst,
				},
			},
		})
		deps.ResumeHandler.RegisterRoutes(api, parseLimit)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
