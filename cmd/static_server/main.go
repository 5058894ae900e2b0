package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Motmedel/static_server_go/pkg/config"
	motmedelHttpLog "github.com/Motmedel/static_server_go/pkg/http/log"
	muxTypesRateLimiting "github.com/Motmedel/static_server_go/pkg/http/mux/types/rate_limiting"
	"github.com/Motmedel/static_server_go/pkg/http/static/content_cache"
	"github.com/Motmedel/static_server_go/pkg/http/static/file_server"
	"github.com/Motmedel/static_server_go/pkg/http/static/health"
	"github.com/Motmedel/static_server_go/pkg/http/static/path_resolver"
	"github.com/Motmedel/static_server_go/pkg/http/static/router"
	motmedelLog "github.com/Motmedel/static_server_go/pkg/log"
	motmedelLogError "github.com/Motmedel/static_server_go/pkg/log/error"
	"github.com/Motmedel/static_server_go/pkg/memory"
	motmedelOs "github.com/Motmedel/static_server_go/pkg/os"
	"github.com/jessevdk/go-flags"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const readHeaderTimeout = 10 * time.Second

func makeLogger(cfg *config.Config) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: cfg.LogLevel.Level}

	var handler slog.Handler
	if cfg.Production() {
		handler = slog.NewJSONHandler(os.Stdout, handlerOptions)
	} else {
		handler = slog.NewTextHandler(os.Stdout, handlerOptions)
	}

	return motmedelLog.New(
		handler,
		&motmedelLog.ErrorContextExtractor{},
		&motmedelHttpLog.HttpContextExtractor{},
	)
}

func makeRouter(cfg *config.Config, logger *slog.Logger, startTime time.Time) (*router.Router, error) {
	resolver, err := path_resolver.New(cfg.RootDirectory, cfg.DefaultResource)
	if err != nil {
		return nil, fmt.Errorf("path resolver new: %w", err)
	}

	var rateLimitingConfiguration *muxTypesRateLimiting.RateLimitingConfiguration
	if cfg.RateLimit > 0 {
		rateLimitingConfiguration = &muxTypesRateLimiting.RateLimitingConfiguration{
			RequestsPerSecond: cfg.RateLimit,
			Burst:             cfg.RateLimitBurst,
		}
	}

	return &router.Router{
		Resolver:                  resolver,
		FileServer:                file_server.New(content_cache.New(bool(cfg.CacheEnabled)), nil),
		Health:                    health.New(startTime),
		RateLimitingConfiguration: rateLimitingConfiguration,
		Logger:                    logger,
	}, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	startTime := time.Now()

	staticRouter, err := makeRouter(cfg, logger, startTime)
	if err != nil {
		return fmt.Errorf("make router: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return fmt.Errorf("net listen: %w", err)
	}

	httpServer := &http.Server{
		Handler:           staticRouter,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info(fmt.Sprintf("Server running at http://%s/", cfg.Address()))
	logger.Info(fmt.Sprintf("Cache enabled: %t", bool(cfg.CacheEnabled)))
	logger.Info(fmt.Sprintf("Serving files from %s", staticRouter.Resolver.Root()))
	if !motmedelOs.IsDirectory(staticRouter.Resolver.Root()) {
		logger.Warn(fmt.Sprintf("The root directory %s does not exist; every file request will yield 404.", staticRouter.Resolver.Root()))
	}
	logger.Info(fmt.Sprintf("Memory usage: %dMB", memory.Read().HeapUsed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	var serveErr, shutdownErr error

	group.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("http server serve: %w", err)
			return serveErr
		}
		return nil
	})

	group.Go(func() error {
		signalChannel := make(chan os.Signal, 1)
		signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(signalChannel)

		select {
		case receivedSignal := <-signalChannel:
			logger.Info(fmt.Sprintf("%s received, shutting down gracefully...", receivedSignal))
		case <-groupCtx.Done():
		}
		defer cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			shutdownErr = fmt.Errorf("http server shutdown: %w", err)
			return shutdownErr
		}
		return nil
	})

	if cfg.Production() {
		group.Go(func() error {
			return memory.RunLogger(groupCtx, cfg.MemoryLogInterval, logger)
		})
	}

	_ = group.Wait()
	logger.Info("Server closed")

	return multierr.Combine(serveErr, shutdownErr)
}

func main() {
	slog.SetDefault(motmedelLog.New(slog.NewTextHandler(os.Stderr, nil), &motmedelLog.ErrorContextExtractor{}))

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			os.Exit(0)
		}
		motmedelLogError.LogError(context.Background(), "The configuration could not be loaded.", err, nil)
		os.Exit(1)
	}

	logger := makeLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		motmedelLogError.LogError(context.Background(), "The server exited with an error.", err, logger)
		os.Exit(1)
	}
}
