package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/platform/config"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/router"
)

// @title Pet Care Log API
// @version 1.0
// @description Registro de comidas, pesos y mantenimiento con calendario por día local.
// @BasePath /
func main() {
	boot := logger.NewFromEnv()

	cfg, err := config.Load(boot)
	if err != nil {
		boot.Error("config: load failed", map[string]any{"err": err})
		os.Exit(1)
	}
	log := cfg.Logger()

	loc, err := cfg.Location()
	if err != nil {
		log.Error("config: invalid timezone", map[string]any{"err": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg)
	if err != nil {
		log.Error("db: open failed", map[string]any{"storage": string(cfg.Storage), "err": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: router.NewRouter(router.Options{
			DB:       db,
			Location: loc,
			Logger:   log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("http: listening", map[string]any{
		"addr":     srv.Addr,
		"storage":  string(cfg.Storage),
		"timezone": loc.String(),
	})

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received", nil)
	case err := <-serverErrCh:
		if err != nil {
			log.Error("http: server failed", map[string]any{"addr": srv.Addr, "err": err})
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", map[string]any{"err": err})
		exitCode = 1
	}
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("db: close failed", map[string]any{"err": err})
			exitCode = 1
		}
	}

	if exitCode == 0 {
		log.Info("app: stopped", nil)
		return
	}
	os.Exit(exitCode)
}

// openDB devuelve nil para STORAGE=memory.
func openDB(ctx context.Context, cfg config.Config) (*sqlstore.DB, error) {
	var (
		db  *sqlstore.DB
		err error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		return nil, nil
	case config.StoragePostgres:
		db, err = sqlstore.OpenPostgres(cfg.DB.DSN, sqlstore.PoolConfig{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
	default:
		db, err = sqlstore.OpenSQLite(cfg.DB.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	if err := sqlstore.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
