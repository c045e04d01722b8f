package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/config"
	"github.com/safebite/safebite/internal/api"
	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/realtime"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Profile  *api.ProfileHandler
	Logs     *api.LogHandler
	Catalog  *api.CatalogHandler
	Analyze  *api.AnalyzeHandler
	ChefCard *api.ChefCardHandler
	Alerts   *api.AlertHandler
	Insights *api.InsightsHandler
	Hub      *realtime.Hub
}

// SetupRouter configures the application routes.
func SetupRouter(cfg *config.Config, h Handlers, validator middleware.TokenValidator, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Admin-Key"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Session bootstrap is the only unauthenticated mutation.
	v1.POST("/auth/anonymous", h.Auth.Anonymous)

	// Catalog data is public, like the original allergen endpoints.
	v1.GET("/allergens", h.Catalog.ListAllergens)
	v1.GET("/allergens/:id", h.Catalog.GetAllergen)
	v1.GET("/educational-resources", h.Catalog.ListResources)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		protected.POST("/auth/signout", h.Auth.SignOut)

		protected.GET("/profile", h.Profile.Get)
		protected.PUT("/profile", h.Profile.Update)

		protected.GET("/logs", h.Logs.List)
		protected.POST("/logs", h.Logs.Append)

		analyze := protected.Group("")
		if limiter != nil {
			analyze.Use(limiter.Middleware())
		}
		analyze.POST("/analyze-text", h.Analyze.Analyze)

		protected.GET("/chef-card", h.ChefCard.Get)
		protected.GET("/alerts", h.Alerts.List)
		protected.GET("/insights", h.Insights.Get)

		protected.GET("/subscribe", h.Hub.Subscribe)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminKeyMiddleware(cfg.AdminKeyHash))
	{
		admin.POST("/allergens", h.Catalog.UpsertAllergen)
		admin.POST("/educational-resources", h.Catalog.UpsertResource)
		admin.POST("/alerts", h.Alerts.Upsert)
	}

	return router
}
