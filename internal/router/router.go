package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tokogitar/tokogitar/internal/cache"
	"github.com/tokogitar/tokogitar/internal/http/handlers/admin"
	"github.com/tokogitar/tokogitar/internal/http/handlers/public"
	"github.com/tokogitar/tokogitar/internal/provider"
)

// SetupRouter wires middleware and all API routes.
func SetupRouter(c *provider.Container) *gin.Engine {
	cfg := c.Config
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(zap.L()))
	r.Use(CORSMiddleware(cfg.CORS))

	uploadDir := cfg.Upload.Dir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	publicHandler := public.New(c)
	adminHandler := admin.New(c)

	loginRule := RateLimitRule{
		Prefix:        "login",
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "terlalu banyak percobaan login, coba lagi nanti",
	}
	resetRule := RateLimitRule{
		Prefix:        "reset",
		WindowSeconds: 600,
		MaxRequests:   5,
		Message:       "terlalu banyak permintaan reset, coba lagi nanti",
	}

	api := r.Group("/api/v1")
	{
		// Storefront, no auth.
		api.GET("/categories", publicHandler.GetCategories)
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:slug", publicHandler.GetProduct)

		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login",
				RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")),
				publicHandler.Login,
			)
			auth.POST("/forgot-password",
				RateLimitMiddleware(cache.Client(), resetRule, KeyByIPAndJSONField("email")),
				publicHandler.RequestResetCode,
			)
			auth.POST("/verify-reset-code", publicHandler.VerifyResetCode)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// Midtrans calls this server to server; it is authenticated by
		// the payload signature, not a bearer token.
		api.POST("/payments/midtrans/notification", publicHandler.PaymentNotification)

		user := api.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)

			user.GET("/cart", publicHandler.GetCart)
			user.PUT("/cart/items", publicHandler.UpsertCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)

			user.GET("/shipping/rates", publicHandler.GetShippingRates)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.GetOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/confirm", publicHandler.ConfirmOrderDelivery)
			user.POST("/orders/:id/payment-token", publicHandler.CreatePaymentToken)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(
			JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RBACMiddleware(c.AuthzService),
		)
		{
			adminGroup.GET("/products", adminHandler.AdminListProducts)
			adminGroup.GET("/products/:id", adminHandler.AdminGetProduct)
			adminGroup.POST("/products", adminHandler.AdminCreateProduct)
			adminGroup.PUT("/products/:id", adminHandler.AdminUpdateProduct)
			adminGroup.DELETE("/products/:id", adminHandler.AdminDeleteProduct)

			adminGroup.GET("/categories", adminHandler.AdminListCategories)
			adminGroup.POST("/categories", adminHandler.AdminCreateCategory)
			adminGroup.PUT("/categories/:id", adminHandler.AdminUpdateCategory)
			adminGroup.DELETE("/categories/:id", adminHandler.AdminDeleteCategory)

			adminGroup.GET("/users", adminHandler.AdminListUsers)
			adminGroup.GET("/users/:id", adminHandler.AdminGetUser)
			adminGroup.POST("/users", adminHandler.AdminCreateUser)
			adminGroup.PUT("/users/:id", adminHandler.AdminUpdateUser)
			adminGroup.DELETE("/users/:id", adminHandler.AdminDeleteUser)

			adminGroup.GET("/orders", adminHandler.AdminListOrders)
			adminGroup.GET("/orders/:id", adminHandler.AdminGetOrder)
			adminGroup.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
			adminGroup.POST("/orders/:id/label", adminHandler.AdminIssueLabel)
			adminGroup.GET("/orders/:id/label", adminHandler.AdminGetLabel)

			adminGroup.GET("/reports/sales", adminHandler.AdminGetSalesReport)
			adminGroup.GET("/reports/sales/export", adminHandler.AdminExportSalesReport)

			adminGroup.POST("/upload", adminHandler.AdminUpload)
		}
	}

	return r
}
