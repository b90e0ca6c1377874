package main

import (
	"log"
	"net/http"

	_ "bankcards/docs" // swagger docs

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bankcards/internal/auth"
	"bankcards/internal/cache"
	"bankcards/internal/cardcrypto"
	"bankcards/internal/config"
	"bankcards/internal/db"
	"bankcards/internal/handler"
	"bankcards/internal/model"
	"bankcards/internal/repository"
	"bankcards/internal/router"
	"bankcards/internal/service"
)

// @title Bank Cards API
// @version 1.0
// @description Bank card management with encrypted card numbers, transfers, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Card{},
		&model.CardBalance{},
		&model.BlockRequest{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	numberCipher, err := cardcrypto.NewCipher(cfg.CardCipherKey)
	if err != nil {
		log.Fatalf("card cipher init: %v", err)
	}
	numberIndex := cardcrypto.NewIndex(cfg.CardIndexKey)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	blockRequestRepo := repository.NewBlockRequestRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTKey)
	authService := service.NewAuthService(userRepo, jwtService)
	cardService := service.NewCardService(cardRepo, numberCipher, numberIndex, nil)
	userService := service.NewUserService(userRepo, cardService, cacheClient)
	transferService := service.NewTransferService(cardRepo, numberIndex)
	blockRequestService := service.NewBlockRequestService(blockRequestRepo, cardRepo, numberCipher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	cardHandler := handler.NewCardHandler(cardService)
	transferHandler := handler.NewTransferHandler(transferService)
	blockRequestHandler := handler.NewBlockRequestHandler(blockRequestService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		userHandler,
		cardHandler,
		transferHandler,
		blockRequestHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
