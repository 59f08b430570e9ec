package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/use-agent/kanoon/api/handler"
	"github.com/use-agent/kanoon/api/middleware"
	"github.com/use-agent/kanoon/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	/scrape: Auth (if keys set) → RateLimit (if rps > 0)
//
// Health, preflight and metrics stay outside auth so probes always work.
// registry may be nil, in which case /metrics is not mounted. ctx bounds
// the rate limiter's background eviction.
func NewRouter(ctx context.Context, runner handler.Runner, cfg *config.Config, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/health", handler.Health())
	r.OPTIONS("/scrape", handler.Preflight())

	r.POST("/scrape",
		middleware.Auth(cfg.Auth.APIKeys),
		middleware.RateLimit(ctx, cfg.RateLimit),
		handler.Scrape(runner),
	)

	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	return r
}
