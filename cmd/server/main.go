package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"order_admin/internal/auth"
	"order_admin/internal/config"
	"order_admin/internal/database"
	"order_admin/internal/handlers"
	"order_admin/internal/logger"
	"order_admin/internal/middleware"
	"order_admin/internal/migrations"
	"order_admin/internal/realtime"
	"order_admin/internal/repository"
	"order_admin/internal/services"
	"order_admin/internal/session"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, cleanup := logger.New(cfg.LogLevel, cfg.LogJSON)
	defer cleanup()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Initialize session store
	sessions, err := session.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessions, tokens)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, userRepo)

	// Realtime broadcast layer
	hub := realtime.NewHub(log)
	processor := realtime.NewProcessor(orderService, productService, hub, log)
	wsHandler := realtime.NewHandler(hub, processor, log, cfg.CORSOrigin)

	// Initialize handlers
	secureCookies := cfg.Environment == "production"
	authHandler := handlers.NewAuthHandler(authService, tokens, secureCookies)
	adminHandler := handlers.NewAdminHandler(userService, productService)
	orderHandler := handlers.NewOrderHandler(orderService, userService)

	router := handlers.NewRouter(handlers.RouterOptions{
		Log:          log,
		CORSOrigin:   cfg.CORSOrigin,
		Authenticate: middleware.Authenticate(tokens, sessions, userRepo),
		Auth:         authHandler,
		Admin:        adminHandler,
		Order:        orderHandler,
		ServeWS:      wsHandler.ServeWS,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
