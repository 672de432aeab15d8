// Package handlers contains the HTTP route handler functions for the Courtside API.
// Each handler corresponds to one API endpoint and is responsible for reading the
// request, calling the scheduling engine, and writing a response.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// This endpoint is intentionally lightweight — no database queries, no authentication —
// so load balancers and container probes can poll it cheaply.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
