// Package main is the entry point for the AI operation gateway server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/cache"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/config"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/gateway"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/handler"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/provider"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/security"
	"github.com/Yasela-dissanayake/student-moves-replit-sub016/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	flag.Parse()

	// =========================================================================
	// 1. Load configuration
	// =========================================================================
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// 2. Setup structured logger with credential redaction
	// =========================================================================
	logger := setupLogger(cfg.Logging)

	ui.PrintBanner()
	logger.Info("starting AI gateway",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.Bool("zero_cost_mode", cfg.Gateway.ZeroCostMode),
	)

	// =========================================================================
	// 3. Build the provider registry from configuration
	// =========================================================================
	registry := gateway.NewRegistry()
	registry.SetZeroCostMode(cfg.Gateway.ZeroCostMode)

	if cfg.Providers.Custom.Enabled {
		registry.Register(provider.NewCustomAdapter(), cfg.Providers.Custom.Priority, false)
	}

	if cfg.Providers.Gemini.Enabled {
		var opts []provider.GeminiOption
		if cfg.Providers.Gemini.Model != "" {
			opts = append(opts, provider.WithGeminiModel(cfg.Providers.Gemini.Model))
		}
		if cfg.Providers.Gemini.BaseURL != "" {
			opts = append(opts, provider.WithGeminiBaseURL(cfg.Providers.Gemini.BaseURL))
		}
		registry.Register(provider.NewGeminiAdapter(cfg.Providers.Gemini.APIKey, opts...), cfg.Providers.Gemini.Priority, true)
	}

	if cfg.Providers.OpenAI.Enabled {
		var opts []provider.OpenAIOption
		if cfg.Providers.OpenAI.Model != "" {
			opts = append(opts, provider.WithOpenAIModel(cfg.Providers.OpenAI.Model))
		}
		if cfg.Providers.OpenAI.BaseURL != "" {
			opts = append(opts, provider.WithOpenAIBaseURL(cfg.Providers.OpenAI.BaseURL))
		}
		registry.Register(provider.NewOpenAIAdapter(cfg.Providers.OpenAI.APIKey, opts...), cfg.Providers.OpenAI.Priority, true)
	}

	for _, info := range registry.Snapshot() {
		ui.PrintProviderLine(info.Name, info.Priority, info.Enabled, info.Paid)
	}

	// =========================================================================
	// 4. Create the gateway with cache and savings tracking
	// =========================================================================
	gatewayOpts := []gateway.Option{
		gateway.WithLogger(logger),
		gateway.WithAdapterTimeout(time.Duration(cfg.Gateway.AdapterTimeoutSeconds) * time.Second),
		gateway.WithSavingsTracker(gateway.NewSavingsTracker()),
		gateway.WithCacheableKinds(cfg.CacheableKinds()),
	}

	if cfg.Cache.Enabled {
		resultCache := cache.New(
			cache.WithTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second),
			cache.WithLogger(logger),
		)
		gatewayOpts = append(gatewayOpts, gateway.WithCache(resultCache))
	}

	gw := gateway.New(registry, gatewayOpts...)

	// =========================================================================
	// 5. Setup Gin router with middleware
	// =========================================================================
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	aiHandler := handler.NewAIHandler(gw, handler.WithLogger(logger))

	router := gin.New()
	router.Use(handler.RecoveryMiddleware(logger))
	router.Use(handler.CORSMiddleware())
	router.Use(handler.LoggingMiddleware(logger))

	router.POST("/api/ai/execute", aiHandler.HandleExecute)
	router.GET("/api/ai/status/:operation", aiHandler.HandleStatus)
	router.POST("/api/ai/providers/:name/enabled", aiHandler.HandleSetProviderEnabled)
	router.POST("/api/ai/zero-cost", aiHandler.HandleSetZeroCostMode)
	router.POST("/api/ai/cache/flush", aiHandler.HandleFlushCache)
	router.GET("/health", aiHandler.HandleHealth)

	// =========================================================================
	// 6. Start HTTP server with graceful shutdown
	// =========================================================================
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("address", addr))
		ui.PrintGatewayInfo("listening on http://" + addr)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// =========================================================================
	// 7. Graceful shutdown on SIGTERM/SIGINT
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if savings := gw.Savings(); savings != nil {
		ui.PrintSavings(savings.TotalSaved())
	}

	logger.Info("server stopped gracefully")
}

// setupLogger creates the structured logger. All output passes through
// the redacting handler so provider keys never reach the log stream.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if cfg.Format == "text" {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(security.NewRedactedHandler(base))
	slog.SetDefault(logger)

	return logger
}
