package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tree-d/kiosk_api/middleware"
	"github.com/tree-d/kiosk_api/services"
)

// @title TreeD Kiosk API
// @version 1.0
// @description Scan-event ingestion and listening analytics for the museum kiosks.
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	var store context.Service
	if os.Getenv("DB_DRIVER") == "sqlite" {
		store = &services.SqliteService{}
	} else {
		store = &services.PostgresService{}
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&middleware.AuthMiddleware{},

		store,
		&services.RedisService{},

		&services.ScanService{},
		&services.AnalyticsService{},
		&services.AuthService{},
		&services.ExportService{},
		&services.EmailService{},
		&services.RateLimitService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
