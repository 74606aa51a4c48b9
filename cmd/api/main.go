// Emberwick Storefront Service
//
// This is the main entry point for the storefront catalog and checkout
// service. It wires up all dependencies, kicks off the catalog bootstrap
// and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emberwick/emberwick-storefront/config"
	"github.com/emberwick/emberwick-storefront/internal/api"
	"github.com/emberwick/emberwick-storefront/internal/catalog"
	"github.com/emberwick/emberwick-storefront/internal/checkout"
	"github.com/emberwick/emberwick-storefront/internal/domain"
	"github.com/emberwick/emberwick-storefront/internal/platform/shopify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := newLogger(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting emberwick storefront service",
		zap.String("port", cfg.Server.Port),
		zap.Bool("store_configured", cfg.StoreConfig().Complete()))

	// Wire up dependencies (manual dependency injection)
	//
	// The gateway connector is only invoked by the bootstrapper, and only
	// after it has validated the credentials.
	connect := domain.GatewayConnector(func(sc domain.StoreConfig) domain.StorefrontGateway {
		return shopify.NewClient(sc.Domain, sc.StorefrontAccessToken, cfg.Store.APIVersion)
	})

	bootstrapper := catalog.NewBootstrapper(cfg, connect, logger)
	checkoutService := checkout.NewService(bootstrapper, logger)

	handler := api.NewHandler(cfg, bootstrapper, checkoutService, logger)
	router := api.SetupRouter(handler, cfg.Server.GinMode, logger)

	// The bootstrap runs once per process and is terminal either way; the
	// server comes up immediately and reports the loading state until the
	// catalog fetch settles.
	go bootstrapper.Run(context.Background())

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	go func() {
		logger.Info("server listening", zap.String("addr", serverAddr))
		if err := router.Run(serverAddr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
}

// newLogger builds a production zap logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}
