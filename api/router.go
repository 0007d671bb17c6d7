// api/router.go
package api

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/asklytics/asklytics-backend/api/handlers"
	"github.com/asklytics/asklytics-backend/api/middleware"
	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/llm"
)

// SetupRouter initializes the Gin router and sets up all routes.
// Backend selection happened at startup; every variant of the service is
// the same router with a different Backend wired in.
func SetupRouter(authDB *sql.DB, backend llm.Backend, cfg *config.Config) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.ErrorHandler())

	// Initialize Handlers
	healthHandler := handlers.NewHealthHandler(cfg, backend)
	connHandler := handlers.NewConnectionHandler(cfg)
	queryHandler := handlers.NewQueryHandler(authDB, backend, cfg)
	authHandler := handlers.NewAuthHandler(authDB, cfg)
	historyHandler := handlers.NewHistoryHandler(authDB, cfg)

	// --- Query pipeline (public; errors travel in the payload) ---
	router.GET("/", healthHandler.Health)
	router.POST("/test-connection", connHandler.TestConnection)
	router.POST("/schema", connHandler.GetSchema)
	router.POST("/execute-sql", connHandler.ExecuteSQL)
	// A valid token is optional here: it only enables history recording.
	router.POST("/query", middleware.OptionalAuthMiddleware(cfg), queryHandler.Query)

	// --- Auth routes (proper HTTP statuses) ---
	ratelimiter := middleware.NewRateLimiter(20, time.Minute)
	authRoutes := router.Group("/auth")
	authRoutes.Use(middleware.RateLimitMiddleware(ratelimiter))
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/forgot-password", authHandler.ForgotPassword)

		protected := authRoutes.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.Me)
			protected.PUT("/update-profile", authHandler.UpdateProfile)
			protected.PUT("/change-password", authHandler.ChangePassword)
		}
	}

	// --- Query history (requires a session token) ---
	historyRoutes := router.Group("/history")
	historyRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		historyRoutes.GET("", historyHandler.List)
		historyRoutes.DELETE("", historyHandler.Clear)
	}

	return router
}
