package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/wambui/florax/internal/config"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/pkg/upload"
	"github.com/wambui/florax/internal/server/http/handlers"
	"github.com/wambui/florax/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, uploads *upload.Store, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(cors.New(corsConfig(cfg)))

	engine.Static(upload.PublicPrefix, uploads.Root())

	authHandler := handlers.NewAuthHandler(facade)
	flowerHandler := handlers.NewFlowerHandler(facade, uploads)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	messageHandler := handlers.NewMessageHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	flowers := api.Group("/flowers")
	flowers.GET("", flowerHandler.List)
	flowers.GET("/:id", flowerHandler.Get)
	flowers.GET("/florist/:id", flowerHandler.ListByFlorist)

	floristFlowers := flowers.Group("")
	floristFlowers.Use(middleware.AuthRequired(facade), middleware.RequireRole(model.RoleFlorist))
	floristFlowers.POST("", flowerHandler.Create)
	floristFlowers.PUT("/:id", flowerHandler.Update)
	floristFlowers.DELETE("/:id", flowerHandler.Delete)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("/create", middleware.RequireRole(model.RoleBuyer), orderHandler.Create)
	orders.GET("/buyer", middleware.RequireRole(model.RoleBuyer), orderHandler.ListBuyer)
	orders.GET("/florist", middleware.RequireRole(model.RoleFlorist), orderHandler.ListFlorist)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", middleware.RequireRole(model.RoleFlorist), orderHandler.UpdateStatus)
	orders.POST("/:id/pay", middleware.RequireRole(model.RoleBuyer), orderHandler.Pay)
	orders.PUT("/:id/tracking", middleware.RequireRole(model.RoleFlorist), orderHandler.SetTracking)

	payment := api.Group("/payment/pesapal")
	// The gateway calls back without a bearer token.
	payment.POST("/callback", paymentHandler.Callback)

	paymentAuth := payment.Group("")
	paymentAuth.Use(middleware.AuthRequired(facade), middleware.RequireRole(model.RoleBuyer))
	paymentAuth.POST("/initialize", paymentHandler.Initialize)
	paymentAuth.POST("/verify", paymentHandler.Verify)
	paymentAuth.GET("/check-status/:id", paymentHandler.CheckStatus)

	messages := api.Group("/messages")
	messages.Use(middleware.AuthRequired(facade))
	messages.POST("", messageHandler.Send)
	messages.GET("/:orderID", messageHandler.ListByOrder)

	return engine
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}
