package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbilling "github.com/ordercash/backend/internal/application/billing"
	appfinance "github.com/ordercash/backend/internal/application/finance"
	appfulfillment "github.com/ordercash/backend/internal/application/fulfillment"
	appidentity "github.com/ordercash/backend/internal/application/identity"
	apptrade "github.com/ordercash/backend/internal/application/trade"
	"github.com/ordercash/backend/internal/infrastructure/auth"
	"github.com/ordercash/backend/internal/infrastructure/config"
	"github.com/ordercash/backend/internal/infrastructure/event"
	"github.com/ordercash/backend/internal/infrastructure/logger"
	"github.com/ordercash/backend/internal/infrastructure/persistence"
	"github.com/ordercash/backend/internal/interfaces/http/handler"
	"github.com/ordercash/backend/internal/interfaces/http/middleware"
	"github.com/ordercash/backend/internal/interfaces/http/router"
)

func main() {
	// ==================== Configuration ====================
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// ==================== Logger ====================
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// ==================== Database ====================
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// ==================== Repositories ====================
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// ==================== Services ====================
	jwtService := auth.NewJWTService(cfg.JWT)

	salesOrderService := apptrade.NewSalesOrderService(salesOrderRepo, txScope, log)
	deliveryService := appfulfillment.NewDeliveryService(deliveryRepo, log)
	invoiceService := appbilling.NewInvoiceService(invoiceRepo, log)
	receivableService := appfinance.NewReceivableService(receivableRepo, log)
	authService := appidentity.NewAuthService(userRepo, jwtService, log)

	// ==================== Event Bus ====================
	eventBus := event.NewInMemoryEventBus(log)

	deliveryCompletedHandler := appbilling.NewDeliveryCompletedHandler(invoiceRepo, salesOrderRepo, log)
	invoiceCreatedHandler := appfinance.NewInvoiceCreatedHandler(receivableRepo, log)

	eventBus.Subscribe(deliveryCompletedHandler, deliveryCompletedHandler.EventTypes()...)
	eventBus.Subscribe(invoiceCreatedHandler, invoiceCreatedHandler.EventTypes()...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	salesOrderService.SetEventPublisher(eventBus)
	deliveryService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)
	deliveryCompletedHandler.SetEventPublisher(eventBus)

	// ==================== HTTP Engine ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// ==================== Handlers ====================
	authHandler := handler.NewAuthHandler(authService, log)
	salesOrderHandler := handler.NewSalesOrderHandler(salesOrderService, log)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	receivableHandler := handler.NewReceivableHandler(receivableService, log)
	systemHandler := handler.NewSystemHandler(db, log)

	engine.GET("/health", systemHandler.Health)

	// ==================== Routes ====================
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	authGroup := router.NewDomainGroup("auth", "/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)

	tradeGroup := router.NewDomainGroup("trade", "/trade")
	tradeGroup.POST("/sales-orders", salesOrderHandler.Create)
	tradeGroup.GET("/sales-orders", salesOrderHandler.List)
	tradeGroup.GET("/sales-orders/status-summary", salesOrderHandler.GetStatusSummary)
	tradeGroup.GET("/sales-orders/by-number/:number", salesOrderHandler.GetByOrderNumber)
	tradeGroup.GET("/sales-orders/:id", salesOrderHandler.GetByID)
	tradeGroup.PUT("/sales-orders/:id/status", salesOrderHandler.UpdateStatus)
	tradeGroup.PATCH("/sales-orders/:id/status", salesOrderHandler.UpdateStatus)
	tradeGroup.DELETE("/sales-orders/:id", salesOrderHandler.Delete)

	fulfillmentGroup := router.NewDomainGroup("fulfillment", "/fulfillment")
	fulfillmentGroup.GET("/deliveries", deliveryHandler.List)
	fulfillmentGroup.GET("/deliveries/by-order/:orderId", deliveryHandler.GetBySalesOrderID)
	fulfillmentGroup.GET("/deliveries/:id", deliveryHandler.GetByID)
	fulfillmentGroup.PUT("/deliveries/:id/status", deliveryHandler.Advance)

	billingGroup := router.NewDomainGroup("billing", "/billing")
	billingGroup.GET("/invoices", invoiceHandler.List)
	billingGroup.GET("/invoices/by-order/:number", invoiceHandler.GetBySalesOrderNumber)
	billingGroup.GET("/invoices/:id", invoiceHandler.GetByID)
	billingGroup.PUT("/invoices/:id/status", invoiceHandler.UpdateStatus)
	billingGroup.PATCH("/invoices/:id/status", invoiceHandler.UpdateStatus)
	billingGroup.POST("/invoices/:id/pay", invoiceHandler.MarkPaid)
	billingGroup.DELETE("/invoices/:id", invoiceHandler.Delete)

	financeGroup := router.NewDomainGroup("finance", "/finance")
	financeGroup.POST("/receivables", receivableHandler.Create)
	financeGroup.GET("/receivables", receivableHandler.List)
	financeGroup.GET("/receivables/:id", receivableHandler.GetByID)
	financeGroup.POST("/receivables/:id/payments", receivableHandler.RecordPayment)
	financeGroup.PUT("/receivables/:id/status", receivableHandler.UpdateStatus)
	financeGroup.PATCH("/receivables/:id/status", receivableHandler.UpdateStatus)
	financeGroup.DELETE("/receivables/:id", receivableHandler.Delete)

	systemGroup := router.NewDomainGroup("system", "/system")
	systemGroup.GET("/ping", systemHandler.Ping)

	r.Register(authGroup).
		Register(tradeGroup).
		Register(fulfillmentGroup).
		Register(billingGroup).
		Register(financeGroup).
		Register(systemGroup).
		Setup()

	// ==================== Server ====================
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// ==================== Graceful Shutdown ====================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop event bus", zap.Error(err))
	}

	log.Info("server stopped")
}
