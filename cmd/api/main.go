package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"petcare-api/internal/adapters/storage/postgres"
	"petcare-api/internal/auth"
	"petcare-api/internal/config"
	"petcare-api/internal/platform/logger"
	"petcare-api/internal/router"
	"petcare-api/internal/uploads"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "petcare-api",
	})

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = postgres.Open(cfg.Database.DSN)
		if err != nil {
			log.Error("database connect failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	} else {
		log.Warn("no DB_DSN set, using in-memory storage", nil)
	}

	photos, err := uploads.New(cfg.Uploads.Dir)
	if err != nil {
		log.Error("uploads dir init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	h := router.NewRouter(router.Options{
		DB:     db,
		Tokens: tokens,
		Photos: photos,
		Log:    log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
