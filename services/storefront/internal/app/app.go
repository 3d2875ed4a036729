package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmlot/pkg/config"
	"farmlot/pkg/logger"
	"farmlot/pkg/middleware"
	"farmlot/pkg/queue"
	storefrontHTTP "farmlot/services/storefront/internal/controller/http"
	"farmlot/services/storefront/internal/repo/persistent"
	"farmlot/services/storefront/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "farmlot/services/storefront/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, queueClient *queue.Client, redisClient *redis.Client) {
	// Initialize repositories
	listingRepo := persistent.NewListingRepository(db)

	// Initialize use cases
	catalogUseCase := usecase.NewCatalogUseCase(listingRepo, redisClient, log)

	// Admin writes invalidate the cached catalog
	if queueClient != nil {
		err := queueClient.ConsumeListingEvents(func(event queue.ListingEvent) {
			log.Info("Listing %s changed (%s), dropping catalog cache", event.ListingID, event.Type)
			catalogUseCase.Invalidate(context.Background())
		})
		if err != nil {
			log.Warn("Failed to start listing event consumer: %v", err)
		}
	}

	// Initialize HTTP handlers
	catalogHandler := storefrontHTTP.NewCatalogHandler(catalogUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
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

	r.GET("/", catalogHandler.Page)
	r.Static("/static", "./services/storefront/static")

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 300, time.Minute))

	{
		api.GET("/listings", catalogHandler.ListListings)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Storefront service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down storefront service...")

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

	log.Info("Storefront service exited")
}
