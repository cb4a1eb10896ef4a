package routes

import (
	"time"

	"lanshare/internal/handlers"
	"lanshare/internal/services"
	"lanshare/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires the HTTP surface and the websocket upgrade point.
func SetupRoutes(app *fiber.App, files *services.FileService, messages *services.MessageService, hub *ws.Hub) {
	// API routes group
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"service":   "lanshare",
			"timestamp": time.Now().UTC(),
		})
	})

	// Fan-out endpoint; clients join/leave channels over the socket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.Serve))

	// File routes
	fileHandler := handlers.NewFileHandler(files)

	fileGroup := v1.Group("/files")
	fileGroup.Get("/", fileHandler.ListFiles)
	fileGroup.Post("/upload", fileHandler.UploadFile)
	fileGroup.Get("/:id/download", fileHandler.DownloadFile)
	fileGroup.Get("/:id/preview", fileHandler.PreviewFile)
	fileGroup.Post("/:id/extend", fileHandler.ExtendFile)
	fileGroup.Delete("/:id", fileHandler.DeleteFile)

	// Message routes
	messageHandler := handlers.NewMessageHandler(messages)

	messageGroup := v1.Group("/messages")
	messageGroup.Get("/", messageHandler.ListMessages)
	messageGroup.Post("/", messageHandler.SendMessage)
	messageGroup.Post("/file", messageHandler.SendFileMessage)
	messageGroup.Get("/:id/file/download", messageHandler.DownloadMessageFile)
	messageGroup.Get("/:id/file/preview", messageHandler.PreviewMessageFile)
	messageGroup.Delete("/:id", messageHandler.DeleteMessage)
}
