package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/info-mnml/Otokogi/internal/api"
	"github.com/info-mnml/Otokogi/internal/auth"
	"github.com/info-mnml/Otokogi/internal/service"
	"github.com/info-mnml/Otokogi/internal/storage/sqlite"
	"github.com/info-mnml/Otokogi/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real environments set the variables directly.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading environment variables")
	}
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/otokogi.db")
	addr := ":" + getEnv("PORT", "8080")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	gin.SetMode(getEnv("GIN_MODE", gin.ReleaseMode))

	router := api.NewRouter(api.Services{
		Auth:         service.NewAuthService(authenticator, jwtManager),
		Events:       service.NewEventService(store),
		Participants: service.NewParticipantService(store),
		Rounds:       service.NewRoundService(store),
		Stats:        service.NewStatsService(store),
		Migration:    service.NewMigrationService(store),
		JWT:          jwtManager,
	})

	slog.Info("server starting", "address", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
