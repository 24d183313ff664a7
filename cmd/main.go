package main

import (
	"os"

	"coffeeshop/config"
	"coffeeshop/internal/clients"
	"coffeeshop/internal/delivery"
	"coffeeshop/internal/middleware"
	"coffeeshop/internal/repository"
	"coffeeshop/internal/usecase"
	"coffeeshop/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Coffeeshop Storefront Service...")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	productRepo := repository.NewPostgresProductRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	cartStore := repository.NewMemoryCartStore(cfg.CartIdleTTL, logger)
	logger.Info("Repositories initialized.")

	done := make(chan struct{})
	defer close(done)
	cartStore.StartJanitor(done)

	notifier := clients.NewWhatsAppNotifier(cfg.WhatsAppPhone, logger)
	logger.Infof("WhatsApp handoff initialized for destination: %s", cfg.WhatsAppPhone)

	productUseCase := usecase.NewProductUseCase(productRepo, logger)
	cartUseCase := usecase.NewCartUseCase(cartStore, productRepo, logger)
	checkoutUseCase := usecase.NewCheckoutUseCase(orderRepo, notifier, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, cfg.SessionTTL, logger)
	logger.Info("Use cases initialized.")

	catalogHandler := delivery.NewCatalogHandler(productUseCase, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	checkoutHandler := delivery.NewCheckoutHandler(checkoutUseCase, cartStore, logger)
	authHandler := delivery.NewAuthHandler(userUseCase, logger)
	adminHandler := delivery.NewAdminHandler(orderUseCase, productUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	authMW := middleware.Authenticate(userUseCase, logger)
	adminMW := middleware.RequireAdmin(logger)

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router, authMW)
	adminHandler.RegisterRoutes(router, authMW, adminMW)
	logger.Info("Routes registered.")

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
