package main

import (
	"log"
	"os"

	"coursebay/backend/catalog"
	"coursebay/backend/config"
	"coursebay/backend/media"
	"coursebay/backend/middleware"
	"coursebay/backend/progress"
	"coursebay/backend/routes"
	"coursebay/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := os.MkdirAll(cfg.PublicDir, 0o755); err != nil {
		log.Fatalf("Error creating public dir: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Catalog service owns the store and the result cache; controllers only
	// ever see these two objects.
	cache := catalog.NewResultCache(cfg.CacheTTL)
	svc := catalog.NewService(db, cache, cfg, media.NewFFProbe(), logger)
	tracker := progress.NewTracker(db, cfg.VideosDir)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, svc, tracker, db, cfg)

	// Initial reconciliation so the catalog matches the disk at startup.
	if added, removed, err := svc.Sync(); err != nil {
		logger.Printf("initial sync failed: %v", err)
	} else {
		logger.Printf("initial sync: %d added, %d removed", len(added), len(removed))
	}

	// Start server
	log.Fatal(app.Listen(cfg.ServerHost + ":" + cfg.ServerPort))
}
