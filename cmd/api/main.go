package main

import (
	"context"
	"log"
	"time"

	"github.com/miteshhgoyal/gearmates/internal/core/auth"
	"github.com/miteshhgoyal/gearmates/internal/core/cache"
	"github.com/miteshhgoyal/gearmates/internal/core/config"
	"github.com/miteshhgoyal/gearmates/internal/core/database"
	"github.com/miteshhgoyal/gearmates/internal/core/logger"
	"github.com/miteshhgoyal/gearmates/internal/core/server"
	orderadapter "github.com/miteshhgoyal/gearmates/internal/features/orders/adapters"
	orderhandler "github.com/miteshhgoyal/gearmates/internal/features/orders/handler"
	orderservice "github.com/miteshhgoyal/gearmates/internal/features/orders/service"
	shipadapter "github.com/miteshhgoyal/gearmates/internal/features/shipping/adapters"

	"go.uber.org/zap"
)

// @title GearMates Storefront API
// @version 1.0
// @description Order lifecycle backend: cart, checkout, payment confirmation and Shiprocket shipment booking with tracking.
// @contact.name API Support
// @contact.email support@gearmates.in
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()
	httpTimeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	// Order store.
	mongoClient, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		l.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	orderRepo, err := orderadapter.NewMongoOrderRepository(ctx, mongoClient.Database(cfg.MongoDB))
	if err != nil {
		l.Fatal("Order repository init failed", zap.Error(err))
	}
	l.Info("MongoDB connection verified")

	// Cart store.
	redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Redis init failed", zap.Error(err))
	}
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	cartStore := orderadapter.NewRedisCartStore(redisCache)
	l.Info("Redis connection verified")

	// External gateways.
	carrier := shipadapter.NewShiprocketAdapter(cfg.Shiprocket, httpTimeout)
	payments := orderadapter.NewRazorpayAdapter(cfg.Payment, httpTimeout)

	// Services and handlers.
	orchestrator := orderservice.NewShipmentOrchestrator(carrier, orderRepo, cfg.Shiprocket)
	orderSvc := orderservice.NewOrderService(orderRepo, cartStore, payments, orchestrator, cfg)
	trackingSvc := orderservice.NewTrackingService(orderRepo, carrier)

	orderHdl := orderhandler.NewOrderHandler(orderSvc, trackingSvc)
	cartHdl := orderhandler.NewCartHandler(cartStore)

	srv := server.New(cfg)

	// Register Routes
	authed := srv.App.Group("/api", auth.Required(cfg.JWTSecret))

	cart := authed.Group("/cart")
	cart.Get("/", cartHdl.Get)
	cart.Post("/add", cartHdl.Add)
	cart.Post("/remove", cartHdl.Remove)

	orders := authed.Group("/orders")
	orders.Post("/place", orderHdl.PlaceOrder)
	orders.Post("/payment-order", orderHdl.CreatePaymentOrder)
	orders.Post("/verify-payment", orderHdl.VerifyPayment)
	orders.Get("/mine", orderHdl.ListMine)
	orders.Get("/:id/tracking", orderHdl.GetTracking)

	admin := orders.Group("", auth.AdminOnly())
	admin.Get("/", orderHdl.ListAll)
	admin.Post("/status", orderHdl.UpdateStatus)
	admin.Post("/payment-status", orderHdl.UpdatePayment)
	admin.Post("/tracking-info", orderHdl.UpdateTracking)
	admin.Post("/:id/retry-shipment", orderHdl.RetryShipment)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
