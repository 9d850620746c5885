package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mathsprint/internal/httpserver"
	"mathsprint/internal/kv"
	"mathsprint/internal/scores"
	"os"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	store, err := kv.OpenSQLite(getEnv("MATHSPRINT_DB", "./data/mathsprint.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open score database")
	}
	defer store.Close()

	srv := httpserver.New(scores.NewStore(store))
	port := getEnv("PORT", "5180")
	log.Info().Str("port", port).Msg("starting mathsprint server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" { return v }
	return def
}
