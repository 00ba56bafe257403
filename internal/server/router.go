package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/middleware"
	"github.com/yungbote/storefront-backend/internal/types"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	WishlistHandler *handlers.WishlistHandler
	ActivityHandler *handlers.ActivityHandler
	ServiceName     string
	TracingEnabled  bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Public
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		api.GET("/products", cfg.ProductHandler.List)
		api.GET("/products/:id", cfg.ProductHandler.GetByID)

		// Authenticated
		authed := api.Group("/")
		authed.Use(cfg.AuthMiddleware.RequireAuth())
		{
			authed.POST("/auth/logout", cfg.AuthHandler.Logout)
			authed.GET("/auth/me", cfg.AuthHandler.GetMe)

			authed.GET("/cart", cfg.CartHandler.GetCart)
			authed.POST("/cart", cfg.CartHandler.AddItem)
			authed.PATCH("/cart/:id", cfg.CartHandler.UpdateItem)
			authed.DELETE("/cart/:id", cfg.CartHandler.RemoveItem)
			authed.DELETE("/cart", cfg.CartHandler.Clear)

			authed.GET("/wishlist", cfg.WishlistHandler.GetWishlist)
			authed.POST("/wishlist", cfg.WishlistHandler.AddItem)
			authed.DELETE("/wishlist/:productId", cfg.WishlistHandler.RemoveItem)
			authed.DELETE("/wishlist", cfg.WishlistHandler.Clear)

			authed.GET("/activity", cfg.ActivityHandler.List)

			// Admin-gated catalog mutations
			admin := authed.Group("/")
			admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
			{
				admin.POST("/products", cfg.ProductHandler.Create)
				admin.PUT("/products/:id", cfg.ProductHandler.Update)
				admin.PATCH("/products/:id/toggle", cfg.ProductHandler.ToggleActive)
				admin.DELETE("/products/:id", cfg.ProductHandler.Delete)
			}
		}
	}

	return router
}
