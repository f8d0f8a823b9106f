package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"laptopstore/internal/cache"
	"laptopstore/internal/config"
	"laptopstore/internal/database"
	"laptopstore/internal/repositories"
	"laptopstore/internal/server"
	"laptopstore/internal/services"
	"laptopstore/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	store := repositories.NewGORMStore(db)

	// --- Cart cache (optional) ---
	var cartCache cache.CartCache = cache.NoopCache{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Printf("Redis unavailable, cart cache disabled: %v", err)
		} else {
			defer client.Close()
			cartCache = cache.NewRedisCache(client, cfg.CartCacheTTL)
			log.Println("Cart cache backed by Redis")
		}
	}

	// --- Order events (optional) ---
	var publisher services.OrderEventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.OrderEventsQueue})
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mqClient.Close() // Ensure the connection is closed on exit
			publisher = mqClient

			log.Println("Starting RabbitMQ consumer for orders...")
			if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	// --- Services ---
	svc := server.Services{
		Auth:       services.NewAuthService(store.Users(), cfg.JWTSecret, cfg.AccessTokenTTL, cfg.AdminEmails),
		Categories: services.NewCategoryService(store.Categories(), store.Items()),
		Items:      services.NewItemService(store.Items(), store.Categories(), cfg.PageDefaultLimit, cfg.PageMaxLimit),
		Carts:      services.NewCartService(store, cartCache),
		Orders:     services.NewOrderService(store, cartCache, publisher),
	}

	app := server.NewApp(&cfg, svc)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}
