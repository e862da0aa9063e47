// @title QuizWhiz API
// @version 1.0
// @description Quiz authoring and quiz-taking service: category tree, question bank with batch import/export, timed quiz sessions, AI-assisted distractor generation.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Malay-Max/QuizWhiz-sub001/internal/adapter"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/adapter/aigen"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/cache"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/config"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/database"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/domain"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/handler"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/logger"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/middleware"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/repository"
	"github.com/Malay-Max/QuizWhiz-sub001/internal/service"

	_ "github.com/Malay-Max/QuizWhiz-sub001/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database and apply migrations
	db, err := database.NewSQLXSQLiteDB(cfg.Database.Path)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.MigrateUp(db.DB); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	categoryRepository := repository.NewCategoryDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	sessionStore := repository.NewRedisSessionStore(redisClient)

	// Initialize the AI generator. The service runs without it; AI
	// endpoints then report GENERATION_FAILED.
	var generator domain.Generator
	if cfg.LLM.ServerURL != "" {
		generator, err = aigen.NewOllamaGenerator(cfg.LLM)
		if err != nil {
			appLogger.Fatal("Failed to create LLM client", zap.Error(err))
		}
		appLogger.Info("LLM generator initialized",
			zap.String("server_url", cfg.LLM.ServerURL),
			zap.String("model", cfg.LLM.Model),
		)
	} else {
		appLogger.Warn("LLM server not configured; AI generation disabled")
	}

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepository, questionRepository, txManager, cacheAdapter)
	questionService := service.NewQuestionService(questionRepository, categoryRepository)
	importService := service.NewImportService(questionRepository, categoryRepository, generator, cfg)
	quizService := service.NewQuizService(questionRepository, categoryRepository, sessionStore)
	aiService := service.NewAIService(generator, cfg)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	questionHandler := handler.NewQuestionHandler(questionService, importService)
	quizHandler := handler.NewQuizHandler(quizService)
	aiHandler := handler.NewAIHandler(aiService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group; every route sits behind the bearer-token gate
	apiGroup := app.Group("/api", middleware.Protected(authService))

	// Category routes
	apiGroup.Post("/categories", categoryHandler.CreateCategory)
	apiGroup.Get("/categories", categoryHandler.ListCategories)
	apiGroup.Get("/categories/:id", categoryHandler.GetCategory)
	apiGroup.Put("/categories/:id", categoryHandler.RenameCategory)
	apiGroup.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Question routes
	apiGroup.Post("/categories/:id/questions", questionHandler.AddQuestion)
	apiGroup.Get("/categories/:id/questions", questionHandler.ListQuestions)
	apiGroup.Post("/categories/:id/questions/import", questionHandler.ImportQuestions)
	apiGroup.Get("/categories/:id/questions/export", questionHandler.ExportQuestions)
	apiGroup.Get("/questions/:id", questionHandler.GetQuestion)
	apiGroup.Put("/questions/:id", questionHandler.UpdateQuestion)
	apiGroup.Delete("/questions/:id", questionHandler.DeleteQuestion)

	// Quiz session routes
	apiGroup.Post("/quizzes", quizHandler.StartQuiz)
	apiGroup.Get("/quizzes/:id", quizHandler.GetStatus)
	apiGroup.Post("/quizzes/:id/answer", quizHandler.SubmitAnswer)
	apiGroup.Post("/quizzes/:id/pause", quizHandler.PauseQuiz)
	apiGroup.Post("/quizzes/:id/resume", quizHandler.ResumeQuiz)
	apiGroup.Get("/quizzes/:id/results", quizHandler.GetResults)

	// AI authoring routes
	apiGroup.Post("/ai/suggest-distractors", aiHandler.SuggestDistractors)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
