package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"viralcopy/backend/internal/config"
	"viralcopy/backend/internal/db"
	feedback_app "viralcopy/backend/internal/features/feedback/application"
	feedback_infra "viralcopy/backend/internal/features/feedback/infrastructure"
	feedback_http "viralcopy/backend/internal/features/feedback/presentation/http"
	generation_app "viralcopy/backend/internal/features/generation/application"
	generation_infra "viralcopy/backend/internal/features/generation/infrastructure"
	generation_http "viralcopy/backend/internal/features/generation/presentation/http"
	users_app "viralcopy/backend/internal/features/users/application"
	users_infra "viralcopy/backend/internal/features/users/infrastructure"
	users_http "viralcopy/backend/internal/features/users/presentation/http"
	"viralcopy/backend/internal/platform/logger"
	"viralcopy/backend/internal/prompts"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(settings.AppEnv)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	gormDB, err := db.Open(settings.DatabasePath, appLog)
	if err != nil {
		appLog.Fatal("failed to open database", "error", err)
	}

	registry, err := prompts.LoadDir(settings.PromptDir, appLog)
	if err != nil {
		appLog.Fatal("failed to load prompt templates", "error", err)
	}

	geminiClient, err := generation_infra.NewGeminiClient(
		settings.GeminiAPIKey,
		settings.GeminiModel,
		generation_infra.SamplingConfig{
			Temperature:     settings.Temperature,
			TopP:            settings.TopP,
			TopK:            settings.TopK,
			MaxOutputTokens: settings.MaxOutputTokens,
		},
		settings.MaxRetries,
		settings.RetryDelay,
		appLog,
	)
	if err != nil {
		appLog.Fatal("failed to create gemini client", "error", err)
	}

	// Initialize services
	contentService := generation_app.NewContentService(
		registry,
		geminiClient,
		generation_app.NewNormalizer(nil),
		generation_infra.NewGenerationRepo(gormDB, appLog),
		appLog,
	)
	userService := users_app.NewUserService(users_infra.NewUserRepo(gormDB, appLog), appLog)
	feedbackService := feedback_app.NewFeedbackService(feedback_infra.NewFeedbackRepo(gormDB, appLog), appLog)

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	contentHandler := generation_http.NewContentHandler(contentService, appLog)
	r.GET("/api/communities", contentHandler.CommunitiesHandler)

	// Copy generation API routes
	copyGroup := r.Group("/api/copy")
	{
		copyGroup.POST("/generate", contentHandler.GenerateHandler)
		copyGroup.POST("/regenerate", contentHandler.RegenerateHandler)
		copyGroup.GET("/history", contentHandler.HistoryHandler)
		copyGroup.POST("/actions", contentHandler.CopyActionHandler)
	}

	// User API routes
	userGroup := r.Group("/api/users")
	{
		handler := users_http.NewUserHandler(userService, appLog)
		userGroup.POST("/login", handler.LoginHandler)
	}

	// Feedback API routes
	feedbackGroup := r.Group("/api/feedback")
	{
		handler := feedback_http.NewFeedbackHandler(feedbackService, appLog)
		feedbackGroup.POST("", handler.SubmitHandler)
		feedbackGroup.GET("/:generateId", handler.ListHandler)
	}

	appLog.Info("server starting", "port", settings.Port, "model", settings.GeminiModel)
	if err := r.Run(":" + settings.Port); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}
