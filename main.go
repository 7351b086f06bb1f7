// main.go
package main

import (
	"os"
	"time"

	"sportmate/database"
	"sportmate/handlers"
	"sportmate/logging"
	"sportmate/middleware"
	"sportmate/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logging.SLog.Info("Warning: .env file not found, using system environment variables")
	}
	defer logging.Sync()

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer func() {
		if err := database.CloseDB(); err != nil {
			logging.SLog.Errorf("Failed to close database: %v", err)
		}
	}()

	// Wire handlers to the shared connection
	handlers.InitHandlers()

	// Background retention sweeper for long-finished events
	services.InitCleanupService(database.GetDB(), 30*24*time.Hour, time.Hour)
	services.GetCleanupService().Start()
	defer services.GetCleanupService().Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Reference data (read open, writes rate limited)
	api.Get("/categories", handlers.GetCategories)
	api.Post("/categories", middleware.WriteRateLimitMiddleware(), handlers.CreateCategory)
	api.Put("/categories/:id", middleware.WriteRateLimitMiddleware(), handlers.UpdateCategory)
	api.Get("/locations", handlers.GetLocations)
	api.Post("/locations", middleware.WriteRateLimitMiddleware(), handlers.CreateLocation)
	api.Patch("/locations/:id", middleware.WriteRateLimitMiddleware(), handlers.UpdateLocation)
	api.Get("/catalog/pairs", handlers.GetPairs)
	api.Post("/catalog/pairs", middleware.WriteRateLimitMiddleware(), handlers.RegisterPair)

	// Event routes (search and detail open, writes authenticated)
	api.Get("/events", handlers.SearchEvents)
	api.Get("/events/:id", handlers.GetEvent)
	api.Get("/events/:id/full", handlers.EventFull)
	api.Get("/events/:id/poll", handlers.GetEventPoll)
	api.Get("/events/:id/teams", handlers.GetEventTeams)
	api.Get("/events/:id/members", handlers.GetEventRoster)

	eventWrites := api.Group("/events")
	eventWrites.Use(middleware.IdentityMiddleware)
	eventWrites.Use(middleware.WriteRateLimitMiddleware())
	eventWrites.Post("/", handlers.CreateEvent)
	eventWrites.Post("/:id/join", handlers.JoinEvent)
	eventWrites.Post("/:id/leave", handlers.LeaveEvent)
	eventWrites.Patch("/:id", handlers.UpdateEvent)
	eventWrites.Delete("/:id", handlers.DeleteEvent)
	eventWrites.Post("/:id/teams", handlers.GenerateTeams)
	eventWrites.Get("/:id/membership", handlers.GetMembership)

	// Poll routes
	pollGroup := api.Group("/polls")
	pollGroup.Use(middleware.IdentityMiddleware)
	pollGroup.Post("/:id/close", handlers.ClosePoll)
	pollGroup.Post("/:id/suggestions", handlers.AddSuggestion)

	suggestionGroup := api.Group("/suggestions")
	suggestionGroup.Use(middleware.IdentityMiddleware)
	suggestionGroup.Post("/:id/vote", handlers.VoteSuggestion)

	// Participant routes
	participantGroup := api.Group("/participants")
	participantGroup.Use(middleware.IdentityMiddleware)
	participantGroup.Post("/sync", handlers.SyncParticipant)
	participantGroup.Get("/me/events", handlers.GetMyEvents)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Start Fiber HTTP/REST server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	logging.SLog.Infof("🚀 HTTP server starting on port %s", port)
	logging.SLog.Infof("📊 Environment: %s", getEnv("APP_ENV", "development"))
	logging.SLog.Infof("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		logging.SLog.Fatalf("Failed to start HTTP server: %v", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.SLog.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		logging.SLog.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		// Additional production checks
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			logging.SLog.Warn("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
