package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bizprep/internal/adapter"
	"bizprep/internal/cache"
	"bizprep/internal/config"
	"bizprep/internal/database"
	"bizprep/internal/handler"
	"bizprep/internal/logger"
	"bizprep/internal/middleware"
	"bizprep/internal/pdftext"
	"bizprep/internal/quizgen"
	"bizprep/internal/repository"
	"bizprep/internal/service"
	"bizprep/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
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
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	eventRepository := repository.NewEventDatabaseAdapter(db)
	knowledgeBaseRepository := repository.NewKnowledgeBaseDatabaseAdapter(db)
	generationJobRepository := repository.NewGenerationJobDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize object storage
	fileStorage, err := storage.NewOSSStorage(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	appLogger.Info("Object storage initialized", zap.String("bucket", cfg.Storage.Bucket))

	// Initialize question generator
	generator, err := quizgen.NewOpenAIQuestionGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize question generator", zap.Error(err))
	}
	appLogger.Info("Question generator initialized", zap.String("model", cfg.OpenAI.Model))

	// Initialize services
	extractor := pdftext.NewExtractor()
	eventService := service.NewEventService(eventRepository, cacheAdapter)
	uploadService := service.NewUploadService(eventRepository, knowledgeBaseRepository, fileStorage, extractor, cfg.Upload)
	generationService := service.NewGenerationService(
		eventRepository, knowledgeBaseRepository, generationJobRepository,
		questionRepository, txManager, generator, cacheAdapter, cfg.Generation)
	questionService := service.NewQuestionService(eventRepository, questionRepository, cacheAdapter)

	// Start the background generation worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		generationService.Run(workerCtx)
	}()

	// Initialize handlers
	eventHandler := handler.NewEventHandler(eventService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	generationHandler := handler.NewGenerationHandler(generationService)
	questionHandler := handler.NewQuestionHandler(questionService)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1024*1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	apiGroup.Get("/events", eventHandler.ListEvents)
	apiGroup.Post("/events", eventHandler.CreateEvent)
	apiGroup.Post("/events/image", eventHandler.UpdateEventImage)
	apiGroup.Post("/upload", uploadHandler.Upload)
	apiGroup.Post("/generate", generationHandler.Generate)
	apiGroup.Get("/generations/:id", generationHandler.GetGeneration)
	apiGroup.Get("/questions", validationMiddleware.ValidateQuestionsParams(), questionHandler.GetQuestions)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

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

	// Stop the worker after the HTTP surface is drained
	stopWorker()
	select {
	case <-workerDone:
	case <-time.After(10 * time.Second):
		appLogger.Warn("Generation worker did not stop in time")
	}

	appLogger.Info("Server exited gracefully")
}
