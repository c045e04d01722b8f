package server

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/safebite/safebite/config"
	"github.com/safebite/safebite/internal/api"
	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/realtime"
	"github.com/safebite/safebite/internal/router"
	"github.com/safebite/safebite/internal/service"
)

// Server wires the services, handlers, and HTTP listener together.
type Server struct {
	http *http.Server
}

// New assembles the full application from its external connections.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	bus := realtime.NewBus(redisClient)

	authSvc := service.NewAuthService(db, service.NewRedisRevocationStore(redisClient), cfg.JWTSecret)
	profileSvc := service.NewProfileService(db, bus)
	logSvc := service.NewLogService(db, bus)
	catalogSvc := service.NewCatalogService(db, bus)
	analyzerSvc := service.NewAnalyzerService(db)
	alertSvc := service.NewAlertService(db)
	insightsSvc := service.NewInsightsService(db)

	hub := realtime.NewHub(redisClient, realtime.NewServiceSource(profileSvc, logSvc, catalogSvc))

	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     30,
		KeyPrefix: "safebite:ratelimit:analyze",
	})

	engine := router.SetupRouter(cfg, router.Handlers{
		Auth:     api.NewAuthHandler(authSvc),
		Profile:  api.NewProfileHandler(profileSvc),
		Logs:     api.NewLogHandler(logSvc),
		Catalog:  api.NewCatalogHandler(catalogSvc),
		Analyze:  api.NewAnalyzeHandler(analyzerSvc),
		ChefCard: api.NewChefCardHandler(profileSvc, catalogSvc),
		Alerts:   api.NewAlertHandler(alertSvc),
		Insights: api.NewInsightsHandler(insightsSvc),
		Hub:      hub,
	}, authSvc, limiter)

	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
