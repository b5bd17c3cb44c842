package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/storewise/storefront-api/internal/cache"
	"github.com/storewise/storefront-api/internal/catalog"
	"github.com/storewise/storefront-api/internal/config"
	"github.com/storewise/storefront-api/internal/events"
	"github.com/storewise/storefront-api/internal/handlers"
	"github.com/storewise/storefront-api/internal/payment"
	"github.com/storewise/storefront-api/internal/postgres"
	"github.com/storewise/storefront-api/internal/repository"
	"github.com/storewise/storefront-api/internal/service"
	"github.com/storewise/storefront-api/pkg/logger"
)

func main() {
	// .env is a local convenience; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	productRepo := repository.NewPostgresProductRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)

	var feedbackRepo repository.FeedbackRepository = repository.NewPostgresFeedbackRepository(db)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		feedbackRepo = cache.NewCachedFeedbackRepository(feedbackRepo, rdb, log)
		log.Info("feedback list cache enabled", "addr", cfg.Redis.Addr)
	}

	// Known product ids, used to reject feedback and carts for products that
	// cannot exist without touching the database.
	filter, err := catalog.Load(ctx, productRepo)
	if err != nil {
		log.Error("failed to load product id filter", "error", err)
		os.Exit(1)
	}
	log.Info("product id filter loaded")

	// Order events are optional: without brokers the publisher stays nil and
	// checkout skips publishing.
	var publisher events.Publisher
	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, events.TopicOrderCreated, 256, log)
		producer.Start(ctx)
		publisher = producer
		log.Info("order event publishing enabled", "brokers", cfg.Kafka.Brokers)
	}

	var gateway payment.Gateway
	if cfg.Payment.BaseURL != "" {
		gateway = payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.SecretKey)
		log.Info("payment gateway configured", "base_url", cfg.Payment.BaseURL)
	} else {
		gateway = payment.NewMockGateway(log)
		log.Warn("no payment gateway configured, using mock sessions")
	}

	// Services
	feedbackService := service.NewFeedbackService(feedbackRepo, productRepo, filter)
	checkoutService := service.NewCheckoutService(productRepo, orderRepo, gateway, publisher, filter,
		cfg.Payment.Currency, cfg.Payment.StoreURL, cfg.Kafka.ServiceName, log)
	productService := service.NewProductService(productRepo)

	// Handlers and router
	router := handlers.NewRouter(log, cfg.Auth,
		handlers.NewFeedbackHandler(feedbackService, log),
		handlers.NewCheckoutHandler(checkoutService, log),
		handlers.NewProductHandler(productService, log),
		handlers.NewHealthHandler(log),
	)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Drain queued order events before exiting.
	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}

	log.Info("server stopped gracefully")
}
