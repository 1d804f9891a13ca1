package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sk192011s/2d-backup/internal/config"
	"github.com/Sk192011s/2d-backup/internal/handlers"
	"github.com/Sk192011s/2d-backup/internal/middleware"
)

// Handlers bundles the constructed handlers for router wiring.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Wager   *handlers.WagerHandler
	Admin   *handlers.AdminHandler
	User    *handlers.UserHandler
	History *handlers.HistoryHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		public.GET("/market", h.Wager.MarketState)
		public.GET("/history", h.History.Recent)
		public.GET("/config", h.History.Settings)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		wagers := protected.Group("/wagers")
		{
			wagers.POST("", h.Wager.PlaceWager)
			wagers.GET("", h.Wager.MyWagers)
			wagers.DELETE("/settled", h.Wager.ClearSettled)
		}

		user := protected.Group("/user")
		{
			user.GET("/me", h.User.Me)
			user.PUT("/avatar", h.User.UpdateAvatar)
			user.POST("/password", h.Auth.ChangePassword)
			user.GET("/transactions", h.User.Transactions)
		}
	}

	// Operator routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	admin.Use(middleware.AdminOnlyMiddleware())
	{
		admin.POST("/topup", h.Admin.TopUp)
		admin.POST("/settle", h.Admin.Settle)
		admin.GET("/wagers", h.Admin.RecentWagers)
		admin.GET("/stats", h.Admin.Stats)
		admin.POST("/reset-password", h.Admin.ResetPassword)

		blocks := admin.Group("/blocks")
		{
			blocks.GET("", h.Admin.ListBlocks)
			blocks.POST("", h.Admin.AddBlock)
			blocks.DELETE("", h.Admin.ClearBlocks)
			blocks.DELETE("/:number", h.Admin.RemoveBlock)
		}

		admin.PUT("/settings", h.Admin.UpdateSettings)
		admin.POST("/history", h.Admin.AddHistory)
	}

	return router
}
