package main

import (
	"os"
	"strings"
	"time"

	"github.com/kritika0598/AiFace/cmd/api/config"
	"github.com/kritika0598/AiFace/internal/api"
	"github.com/kritika0598/AiFace/internal/auth"
	"github.com/kritika0598/AiFace/internal/database"
	"github.com/kritika0598/AiFace/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY is not set in the environment")
	}

	cfg := config.NewConfig()

	database.InitDB()

	// Initialize external services clients
	openaiClient := openai.NewClient(openaiKey)

	// Initialize internal services
	userService := services.NewUserService(database.DB)
	imageService := services.NewImageService(database.DB, cfg.UploadDir, cfg.MaxUploadSize)
	usageService := services.NewUsageService(services.NewUsageStoreDB(database.DB), cfg.DailyAnalysisLimit)
	analysisService := services.NewAnalysisService(services.NewAnalysisStoreDB(database.DB))
	visionService := services.NewVisionService(openaiClient, cfg.VisionModel)

	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "https://kritika0598.github.io"
	}

	// CORS middleware configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded files are served directly; the records behind them are
	// reachable only through the authenticated API.
	r.Static("/uploads", cfg.UploadDir)

	analysisHandler := api.NewAnalysisHandler(usageService, analysisService, visionService, imageService)
	imageHandler := api.NewImageHandler(imageService)

	api.SetupRoutes(r, analysisHandler, imageHandler, auth.AuthMiddleware(userService))
	auth.SetupRoutes(r, userService, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Info().Str("port", port).Msg("Server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
