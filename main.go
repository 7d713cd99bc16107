package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quiz-backend/internal/adaptive"
	"quiz-backend/internal/ai"
	"quiz-backend/internal/auth"
	"quiz-backend/internal/config"
	"quiz-backend/internal/db"
	"quiz-backend/internal/event"
	"quiz-backend/internal/grading"
	"quiz-backend/internal/handlers"
	"quiz-backend/internal/middleware"
	"quiz-backend/internal/repository"
	"quiz-backend/internal/scoring"
	"quiz-backend/internal/service"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	database := db.Client.Database(cfg.MongoDatabase)
	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	var publisher *event.Publisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	var generator ai.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Println("Using OpenAI-backed question generation")
	} else {
		generator = ai.NewStub()
		log.Println("OPENAI_API_KEY not set, using offline sample questions")
	}

	// Repositories
	userRepo := repository.NewUserRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	submissionRepo := repository.NewSubmissionRepository(database)
	answerRepo := repository.NewAnswerRepository(database)

	// Services
	authService := auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	userService := service.NewUserService(userRepo, authService)
	quizService := service.NewQuizService(
		quizRepo, questionRepo, submissionRepo,
		generator, adaptive.NewEstimator(), publisher,
	)
	attemptService := service.NewAttemptService(
		submissionRepo, answerRepo, quizRepo, questionRepo, userRepo,
		grading.NewGrader(generator), scoring.NewAggregator(generator), publisher,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	quizHandler := handlers.NewQuizHandler(quizService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	generateLimiter := middleware.NewRateLimiter(cfg.GenerateLimitPerMinute, time.Minute)
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitLimitPerMinute, time.Minute)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(authService))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			protected.POST("/quizzes/generate", generateLimiter.Middleware(), quizHandler.GenerateQuiz)
			protected.GET("/quizzes", quizHandler.ListQuizzes)
			protected.GET("/quizzes/:id", quizHandler.GetQuiz)
			protected.DELETE("/quizzes/:id", quizHandler.DeleteQuiz)
			protected.GET("/quizzes/:id/retry-status", attemptHandler.GetRetryStatus)
			protected.POST("/quizzes/:id/attempts", attemptHandler.StartAttempt)

			protected.GET("/questions/:questionId/hint", quizHandler.GetHint)

			protected.POST("/submissions/:id/submit", submitLimiter.Middleware(), attemptHandler.SubmitAttempt)
			protected.GET("/submissions", attemptHandler.GetHistory)
			protected.GET("/performance", attemptHandler.GetPerformanceSummary)
		}
	}

	log.Printf("Quiz backend listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
