// handlers/teams.go - Team partitioner HTTP handlers
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GenerateTeams splits an event's roster into two teams
// POST /api/events/:id/teams
func GenerateTeams(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	teams, err := teamService.GenerateTeams(eventID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"teams":   teams,
	})
}

// GetEventTeams returns the event's current teams with rosters
// GET /api/events/:id/teams
func GetEventTeams(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	teams, err := teamService.TeamsFor(eventID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}

// GetEventRoster returns the event's membership rows in join order
// GET /api/events/:id/members
func GetEventRoster(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	members, err := membershipService.Roster(eventID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}
