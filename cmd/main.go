package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/db"
	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/middleware"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/server"
	"github.com/yungbote/storefront-backend/internal/services"
	"github.com/yungbote/storefront-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	serviceName := utils.GetEnv("SERVICE_NAME", "storefront-backend", log)

	// Tracing
	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	cartItemRepo := repos.NewCartItemRepo(thePG, log)
	wishlistItemRepo := repos.NewWishlistItemRepo(thePG, log)
	activityEventRepo := repos.NewActivityEventRepo(thePG, log)

	// Catalog cache (optional)
	catalogCache, err := redis.NewCatalogCache(log)
	if err != nil {
		log.Warn("Catalog cache unavailable, continuing without it", "error", err)
		catalogCache = nil
	}
	if catalogCache != nil {
		defer catalogCache.Close()
	}

	// Services
	log.Info("Setting up services...")
	activityService := services.NewActivityService(thePG, log, activityEventRepo)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	catalogService := services.NewCatalogService(thePG, log, productRepo, catalogCache, activityService)
	cartService := services.NewCartService(thePG, log, cartItemRepo, productRepo, activityService)
	wishlistService := services.NewWishlistService(thePG, log, wishlistItemRepo, productRepo, activityService)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		WishlistHandler: wishlistHandler,
		ActivityHandler: activityHandler,
		ServiceName:     serviceName,
		TracingEnabled:  observability.Enabled(),
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
