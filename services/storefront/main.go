package main

import (
	"farmlot/pkg/cache"
	"farmlot/pkg/config"
	"farmlot/pkg/database"
	"farmlot/pkg/logger"
	"farmlot/pkg/queue"
	app "farmlot/services/storefront/internal/app"
)

// @title           Farmlot Storefront API
// @version         1.0
// @description     Public catalog of active equipment listings

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8081
// @BasePath  /api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		// Without the broker the catalog still serves, it just relies on
		// the cache TTL instead of invalidation events.
		log.Warn("Failed to connect to RabbitMQ, cache invalidation disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, queueClient, redisClient)
}
