// This file handles the /api/v1/divisions routes — listing, creating, and editing
// divisions. Each exported function follows the "handler factory" pattern: it takes
// its collaborators and returns a fiber.Handler. This lets us inject the database
// and the scheduling engine without global variables.
//
// Creating or updating a division runs the facility double-booking check, but the
// check is advisory: a conflict comes back as a "warning" field on the successful
// response, never as a rejected save. When updating, the division's own record is
// excluded from the scan so it can't conflict with itself.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
	"github.com/tgalloway/courtside/internal/schedule"
	"gorm.io/gorm"
)

// DivisionRequest is the JSON body for POST and PUT on /divisions.
type DivisionRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"` // 24h "HH:MM"
	EndTime   string `json:"end_time"`   // 24h "HH:MM"
	StartDate string `json:"start_date"` // "YYYY-MM-DD", date of week 1
	Active    bool   `json:"active"`
	Register  bool   `json:"register"`
	TeamCount int    `json:"team_count"`
}

func (r *DivisionRequest) validate() string {
	switch {
	case r.Name == "":
		return "name is required"
	case r.Location == "":
		return "location is required"
	case r.Day == "":
		return "day is required"
	case r.StartTime == "":
		return "start_time is required"
	case r.EndTime == "":
		return "end_time is required"
	case r.StartDate == "":
		return "start_date is required"
	case r.TeamCount < 0:
		return "team_count must not be negative"
	}
	return ""
}

// GetDivisions returns a handler for GET /api/v1/divisions.
// Optional query param: ?location=<facility> to filter to one facility.
func GetDivisions(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Order("location, name")
		if loc := c.Query("location"); loc != "" {
			query = query.Where("location = ?", loc)
		}

		var divisions []models.Division
		if err := query.Find(&divisions).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch divisions",
			})
		}

		response := make([]DivisionResponse, 0, len(divisions))
		for _, d := range divisions {
			response = append(response, divisionResponse(d))
		}
		return c.JSON(response)
	}
}

// CreateDivision returns a handler for POST /api/v1/divisions.
// Requires "admin" or "scheduler" role (enforced by RequireRole on the route).
// The booking conflict check runs alongside the save; its result is a warning on
// the 201 response, and the save proceeds either way.
func CreateDivision(db *gorm.DB, svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req DivisionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if msg := req.validate(); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}

		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}

		conflict, err := svc.CheckLocationConflict(c.Context(), req.Location, req.Day, req.StartTime, req.EndTime, uuid.Nil)
		if err != nil {
			return domainError(c, err)
		}

		division := models.Division{
			Name:      req.Name,
			Location:  req.Location,
			Day:       req.Day,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			StartDate: startDate,
			Active:    req.Active,
			Register:  req.Register,
			TeamCount: req.TeamCount,
		}
		if err := db.Create(&division).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create division",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"division": divisionResponse(division),
			"warning":  conflict.Warning(),
		})
	}
}

// UpdateDivision returns a handler for PUT /api/v1/divisions/:id.
// Same advisory conflict semantics as create, excluding the division itself.
func UpdateDivision(db *gorm.DB, svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid division id",
			})
		}

		var division models.Division
		if err := db.First(&division, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "division not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch division",
			})
		}

		var req DivisionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if msg := req.validate(); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}

		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}

		// Exclude this division's own booking so it never reports a self-conflict.
		conflict, err := svc.CheckLocationConflict(c.Context(), req.Location, req.Day, req.StartTime, req.EndTime, division.ID)
		if err != nil {
			return domainError(c, err)
		}

		division.Name = req.Name
		division.Location = req.Location
		division.Day = req.Day
		division.StartTime = req.StartTime
		division.EndTime = req.EndTime
		division.StartDate = startDate
		division.Active = req.Active
		division.Register = req.Register
		division.TeamCount = req.TeamCount

		if err := db.Save(&division).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update division",
			})
		}

		return c.JSON(fiber.Map{
			"division": divisionResponse(division),
			"warning":  conflict.Warning(),
		})
	}
}
