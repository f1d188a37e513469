package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"pets-api/internal/adapters/storage/postgres"
	"pets-api/internal/platform/logger"
	"pets-api/internal/router"

	"github.com/joho/godotenv"
)

// @title Pets API
// @version 1.0
// @description Registro de mascotas: historial, vacunas y posts.
// @BasePath /api
func main() {
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	opts := router.Options{Logger: log}

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := postgres.Open(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open database")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := postgres.Migrate(ctx, db); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("cannot apply migrations")
		}
		cancel()
		opts.DB = db
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	storage := "memory"
	if opts.DB != nil {
		storage = "postgres"
	}
	log.Info().Str("addr", addr).Str("storage", storage).Msg("starting server")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
