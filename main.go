package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lanshare/internal/config"
	"lanshare/internal/constants"
	"lanshare/internal/database"
	"lanshare/internal/routes"
	"lanshare/internal/services"
	"lanshare/internal/storage"
	"lanshare/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	pkgValidator "github.com/kerimovok/go-pkg-utils/validator"
)

func init() {
	// Load all configs
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	// Validate environment variables
	if err := pkgValidator.ValidateConfig(constants.EnvValidationRules); err != nil {
		log.Fatalf("configuration validation failed: %v", err)
	}

	// Connect to database
	if err := database.ConnectDB(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
}

func setupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:         4 * 1024 * 1024 * 1024, // uploads can be multi-GB
		StreamRequestBody: true,
	})

	// Middleware
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	app.Use(logger.New())

	return app
}

func main() {
	// Setup Fiber app
	app := setupApp()

	// Fan-out hub
	hub := ws.NewHub()
	go hub.Run()

	// Services
	cfg := config.GetConfig().Share
	store := storage.NewBlobStore(cfg.Storage)
	files := services.NewFileService(database.DB, store, hub, cfg)
	messages := services.NewMessageService(database.DB, store, hub, cfg)

	// Setup routes
	routes.SetupRoutes(app, files, messages, hub)

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")

		// Shutdown the server
		if err := app.Shutdown(); err != nil {
			log.Printf("error during server shutdown: %v", err)
		}

		log.Println("Server gracefully stopped")
		os.Exit(0)
	}()

	// Start server
	if err := app.Listen(":" + pkgConfig.GetEnv("PORT")); err != nil && err != http.ErrServerClosed {
		log.Fatalf("failed to start server: %v", err)
	}
}
