package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/taskpoll/cliparse"
	"github.com/danielhkuo/taskpoll/live"
	"github.com/danielhkuo/taskpoll/metrics"
	"github.com/danielhkuo/taskpoll/middleware"
	"github.com/danielhkuo/taskpoll/router"
	"github.com/danielhkuo/taskpoll/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var err error

	// Parse configuration
	loader, err := cliparse.NewLoader(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	cfg, err := loader.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	// Logging
	var level slog.LevelVar
	lvl, _ := cliparse.ParseLevel(cfg.LogLevel) // validated by ParseFlags
	level.Set(lvl)
	slog.SetDefault(cliparse.NewLogger(cfg, &level, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores
	tasks := store.NewTaskStore()
	if cfg.SeedTasks {
		tasks = store.NewTaskStore(store.DefaultTasks()...)
	}
	polls := store.NewPollStore()

	hub := live.New()
	go hub.Run(ctx)

	if cfg.ConfigFile != "" {
		go func() {
			// Reloads keep env and flag values ahead of the file.
			err := cliparse.Watch(ctx, loader, func(next cliparse.Config) {
				l, err := cliparse.ParseLevel(next.LogLevel)
				if err != nil {
					slog.Warn("config: ignoring log level", "error", err)
					return
				}
				level.Set(l)
			})
			if err != nil {
				slog.Error("config watch failed", "path", cfg.ConfigFile, "error", err)
			}
		}()
	}

	// Create router
	mux := router.NewRouter(router.Deps{
		Tasks:   tasks,
		Polls:   polls,
		Hub:     hub,
		Metrics: metrics.New(),
	}, cfg)

	// Create server
	server := http.Server{
		Handler:      middleware.WithRequestID(middleware.CORS(cfg.CORSOrigin)(mux)),
		Addr:         ":" + strconv.Itoa(cfg.Port),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "seed_tasks", cfg.SeedTasks, "strict_options", cfg.StrictOptions)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
