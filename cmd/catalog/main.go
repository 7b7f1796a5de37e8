// Package main is the entry point for the catalog filter server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No filtering or rendering logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/catalog-filter/internal/catalog"
	"github.com/pkordes/catalog-filter/internal/config"
	"github.com/pkordes/catalog-filter/internal/handler"
	"github.com/pkordes/catalog-filter/internal/middleware"
	"github.com/pkordes/catalog-filter/internal/render"
	"github.com/pkordes/catalog-filter/internal/repo"
	"github.com/pkordes/catalog-filter/internal/service"
	"github.com/pkordes/catalog-filter/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// run builds the catalog and serves it until SIGINT or SIGTERM.
func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// --- Catalog ----------------------------------------------------------
	// The catalog is read exactly once here and never reloaded.
	var src catalog.Source
	if cfg.UseDatabase() {
		pool, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		src = repo.NewProductRepo(pool)
	} else {
		slog.Info("DATABASE_URL not set; using built-in catalog")
		src = repo.NewMemoryProductRepo(catalog.Seed())
	}

	products, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}
	slog.Info("catalog loaded", "products", products.Len())

	// --- Page -------------------------------------------------------------
	// A page missing its container, input or button is a startup failure.
	page, err := render.NewPage()
	if err != nil {
		return err
	}

	svc := service.NewCatalogService(products, page, logger)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	if cfg.AssetsDir != "" {
		fs := http.FileServer(http.Dir(cfg.AssetsDir))
		r.Handle("/assets/*", http.StripPrefix("/assets/", fs))
		slog.Info("serving assets", "dir", cfg.AssetsDir)
	}
	r.Mount("/", handler.Handler(handler.NewServer(svc)))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// openDatabase connects to Postgres and applies pending migrations, which
// create and seed the products table on first start.
func openDatabase(ctx context.Context, url string) (*pgxpool.Pool, error) {
	// New() does not open connections immediately — the Ping does.
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("database connection established")

	// goose needs database/sql; borrow connections from the same pool.
	db := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, db)
	db.Close()
	if err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("migrations applied", "count", applied)

	return pool, nil
}
