package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"libraryapi/internal/app"
	"libraryapi/internal/config"
	"libraryapi/internal/server"
	"libraryapi/internal/util"
	"libraryapi/pkg/store"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	var dataStore store.Store
	dataStore, err = store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init postgres store: %v", err)
	}
	if cfg.RedisAddr != "" {
		dataStore = store.NewCachedStore(dataStore, cfg.RedisAddr, cfg.BookCacheTTL())
		slog.Info("book cache enabled", "addr", cfg.RedisAddr)
	}

	httpServer := server.New(server.Config{
		Books: app.NewBooks(dataStore),
		Loans: app.NewLoans(dataStore),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("library server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
