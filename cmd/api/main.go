// Package main provides the entry point for the LaTateni server application.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/di"
	"github.com/latateni/latateni-server/internal/di/providers"
	"github.com/latateni/latateni-server/internal/logger"
	"github.com/latateni/latateni-server/internal/service"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	storeHandle := do.MustInvoke[*providers.StoreHandle](injector)
	serverHandle := do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Seed the first admin account when the store is empty and bootstrap
	// credentials are configured.
	if err := service.Bootstrap(context.Background(), storeHandle.Store, cfg, log.Logger); err != nil {
		log.Error("Account bootstrap failed", "error", err)
		os.Exit(1)
	}

	go func() {
		log.Info("HTTP server listening", "addr", serverHandle.Addr)
		if err := serverHandle.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order. The DI container handles
	// shutdown order automatically for do.Shutdownable providers.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Server stopped")
}
