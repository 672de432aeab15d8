// cmd/server/main.go
// This is the entry point for the Courtside API server.
// The cmd/ folder holds executable binaries, and internal/ holds packages that are
// not meant to be imported by other projects.
package main

import (
	"log"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors allows the web frontend to talk to the API from a different origin
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/itbasis/go-clock"

	"github.com/tgalloway/courtside/internal/config"
	"github.com/tgalloway/courtside/internal/database"
	"github.com/tgalloway/courtside/internal/handlers"
	"github.com/tgalloway/courtside/internal/middleware"
	"github.com/tgalloway/courtside/internal/schedule"
	"github.com/tgalloway/courtside/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file),
	// plus the season policy YAML if one is configured.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run any pending SQL migration files (in the migrations/ directory) so the
	// schema is in sync every time the server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The scheduling engine: week planning, conflict detection, mutation validation,
	// and the dashboard read models, all over the GORM-backed store.
	svc := schedule.NewService(database.NewStore(db), cfg.Season, clock.New())

	// The websocket Hub manages live-score watchers. "go hub.Run()" starts its
	// event loop as a background goroutine.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Courtside API",
	})

	// --- Global middleware ---
	app.Use(logger.New())
	// Allow any origin in development; lock down to the real domain in production.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	app.Get("/health", handlers.HealthCheck)

	// --- Authenticated API routes ---
	// Everything under /api/v1 requires a valid token; Auth also lazily syncs the
	// user record and stores the user's id and role in the request context.
	api := app.Group("/api/v1", middleware.Auth(db))
	canEdit := middleware.RequireRole("admin", "scheduler")

	// Division routes. Create and update run the advisory booking conflict check;
	// a conflict is a warning on the response, never a rejected save.
	api.Get("/divisions", handlers.GetDivisions(db))
	api.Post("/divisions", canEdit, handlers.CreateDivision(db, svc))
	api.Put("/divisions/:id", canEdit, handlers.UpdateDivision(db, svc))

	// Schedule read models.
	api.Get("/divisions/:id/schedule", handlers.GetDivisionSchedule(svc))
	api.Get("/divisions/:id/weeks/:week/team-counts", handlers.GetTeamCounts(svc))
	api.Get("/schedule/overview", handlers.GetScheduleOverview(svc))
	api.Get("/schedule/conflicts", handlers.CheckConflict(svc))

	// Game mutations. Batches are non-atomic: partial success reports created or
	// updated counts plus the names of the games that failed.
	api.Post("/divisions/:id/games", canEdit, handlers.CreateGames(svc))
	api.Patch("/games", canEdit, handlers.UpdateGames(svc))
	api.Patch("/games/:id", canEdit, handlers.UpdateGame(svc))
	api.Delete("/games/:id", canEdit, handlers.DeleteGame(svc))
	api.Post("/games/:id/score", canEdit, handlers.UpdateScore(svc, hub))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
