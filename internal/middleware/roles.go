package middleware

// roles.go — Role-based access control middleware.
// The app has three roles: admin, scheduler, viewer.
// Schedule mutations require admin or scheduler; reads only require authentication.

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only users whose role
// matches one of the provided roles. Returns HTTP 403 Forbidden otherwise.
//
// It accepts a variadic list of roles so a route can allow several with one call:
//
//	api.Post("/divisions", middleware.RequireRole("admin", "scheduler"), handlers.CreateDivision(...))
//
// RequireRole must be used AFTER the Auth middleware, because Auth populates the
// "userRole" value in the request context via c.Locals.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role means Auth wasn't applied or failed silently — deny with 403
			// (not 401: the user may be authenticated but have no role set).
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
