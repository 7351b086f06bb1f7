// handlers/participants.go - Identity mirror handlers
package handlers

import (
	"sportmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// SyncParticipant upserts the local row for the identity provider's subject
// POST /api/participants/sync
func SyncParticipant(c *fiber.Ctx) error {
	externalID, _ := c.Locals("externalId").(string)
	if externalID == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing subject claim"})
	}

	var req struct {
		DisplayName string `json:"display_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	participant, err := participantService.Ensure(externalID, req.DisplayName, req.PhoneNumber)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"participant": participant,
	})
}

// GetMyEvents lists the caller's events
// GET /api/participants/me/events
func GetMyEvents(c *fiber.Ctx) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid participant ID"})
	}

	events, err := membershipService.EventsFor(participantID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
}

// GetMembership reports whether the caller belongs to an event
// GET /api/events/:id/membership
func GetMembership(c *fiber.Ctx) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid participant ID"})
	}
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"member":  membershipService.IsMember(participantID, eventID),
	})
}
