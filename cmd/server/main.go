package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"storefront/m/internal/api"
	"storefront/m/internal/config"
	"storefront/m/internal/database"
	"storefront/m/internal/logging"
	"storefront/m/internal/media"
	"storefront/m/internal/migrations"
	"storefront/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	seed.LoadProducts(db, log, "assets/products.csv")

	handler := api.New(db, cfg, log, media.New(cfg.Cloudinary))

	log.Info().Str("port", cfg.HTTPPort).Msg("storefront server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
