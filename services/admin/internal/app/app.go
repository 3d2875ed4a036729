package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmlot/pkg/config"
	"farmlot/pkg/jwt"
	"farmlot/pkg/logger"
	"farmlot/pkg/middleware"
	"farmlot/pkg/queue"
	"farmlot/pkg/s3"
	adminHTTP "farmlot/services/admin/internal/controller/http"
	"farmlot/services/admin/internal/repo/persistent"
	"farmlot/services/admin/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "farmlot/services/admin/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	listingRepo := persistent.NewListingRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Initialize use cases
	sessions := usecase.NewSessionManager()
	listingUseCase := usecase.NewListingUseCase(listingRepo, sessions, s3Client, queueClient, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, redisClient, log)

	// Initialize HTTP handlers
	listingHandler := adminHTTP.NewListingHandler(listingUseCase, log)
	sessionHandler := adminHTTP.NewSessionHandler(listingUseCase, log)
	authHandler := adminHTTP.NewAuthHandler(authUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Dashboard shell and login are the only unauthenticated surfaces
	r.GET("/", listingHandler.Dashboard)
	r.Static("/static", "./services/admin/static")
	r.POST("/api/v1/auth/login", authHandler.Login)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.TokenRevocationMiddleware(redisClient))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		api.GET("/listings", listingHandler.ListListings)
		api.GET("/listings/table", listingHandler.ListingsTable)
		api.PATCH("/listings/:id/active", listingHandler.SetActive)
		api.DELETE("/listings/:id", listingHandler.Delete)

		api.POST("/sessions", sessionHandler.CreateSession)
		api.POST("/sessions/:id/photos", sessionHandler.AddPhotos)
		api.PUT("/sessions/:id/photos/:index/main", sessionHandler.SetMainPhoto)
		api.DELETE("/sessions/:id/photos/:index", sessionHandler.RemovePhoto)
		api.POST("/sessions/:id/save", sessionHandler.Save)
		api.DELETE("/sessions/:id", sessionHandler.CancelSession)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Admin service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down admin service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Admin service exited")
}
