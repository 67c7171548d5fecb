package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/aida-nabila/code-map/internal/config"
	"github.com/aida-nabila/code-map/internal/handlers"
	"github.com/aida-nabila/code-map/internal/repositories"
	"github.com/aida-nabila/code-map/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserTestRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	followUpRepo := repositories.NewFollowUpRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI; the service cannot run without its encoder
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Job index and runtime; the index build happens in the background
	// so the health endpoint can report "starting" while embeddings are
	// computed. Handlers gate on runtime readiness.
	jobIndex := services.NewJobIndex(cfg.Jobs.DataDir, cfg.Jobs.CacheFilename, geminiService)
	runtime := services.NewRuntime(geminiService, jobIndex)

	go func() {
		if err := runtime.Initialize(context.Background()); err != nil {
			log.Fatalf("❌ Failed to build job index: %v", err)
		}
	}()

	// Initialize services
	profileService := services.NewProfileService(userRepo, questionRepo, followUpRepo, geminiService, cfg.Gemini)
	questionService := services.NewQuestionGeneratorService(userRepo, questionRepo, geminiService, cfg.Gemini)
	matcherService := services.NewMatcherService(
		jobIndex,
		geminiService,
		cfg.Jobs.TopK,
		cfg.Gemini.Temperature,
		cfg.Jobs.RewriteDescriptions,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	assessmentHandler := handlers.NewAssessmentHandler(userRepo, followUpRepo, questionService)
	matchHandler := handlers.NewMatchHandler(runtime, profileService, matcherService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CodeMap API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Get("/health", matchHandler.HandleHealth)
	app.Post("/submit-test", assessmentHandler.HandleSubmitTest)
	app.Post("/generate-questions", assessmentHandler.HandleGenerateQuestions)
	app.Post("/submit-follow-up", assessmentHandler.HandleSubmitFollowUp)
	app.Post("/user-profile-match", matchHandler.HandleProfileMatch)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CodeMap API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /submit-test",
				"POST /generate-questions",
				"POST /submit-follow-up",
				"POST /user-profile-match",
				"GET /health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
