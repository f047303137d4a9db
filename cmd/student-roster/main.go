// main is the entry point of the student roster server.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the roster store (memory or SQLite) and load the sample roster
//  4. Fix the year window and build the validator
//  5. Register all HTTP routes and start the server in a goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-roster --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-roster
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/http/handlers/student"
	"github.com/aanand-mishra/student-roster/internal/idgen"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/storage/seed"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
	"github.com/aanand-mishra/student-roster/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-roster",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, closer, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closer.Close()

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver))

	if !cfg.DisableSeed {
		if err := seed.Load(store); err != nil {
			log.Error("failed to load sample roster",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("sample roster loaded", slog.Int("students", len(seed.Students())))
	}

	// ── 4. Validator ──────────────────────────────────────────────────────
	// The year window is computed once here and stays fixed for the life
	// of the process.
	now := time.Now()
	years := cfg.YearRange(now)
	validator := validation.New(years)

	log.Info("year window",
		slog.Int("min", years.Min),
		slog.Int("max", years.Max))

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	router := http.NewServeMux()
	student.Register(router, store, validator, now.Year())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage builds the roster backend named by cfg.Storage.Driver.
// The returned Closer releases it on shutdown.
func openStorage(cfg *config.Config) (storage.Storage, io.Closer, error) {
	ids := idgen.UUID{}

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.Storage.Path, ids, time.Now)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.DriverMemory:
		return memory.New(ids, time.Now), io.NopCloser(nil), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
