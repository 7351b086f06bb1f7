// handlers/events.go - Event lifecycle HTTP handlers
package handlers

import (
	"time"

	"sportmate/middleware"
	"sportmate/models"
	"sportmate/services"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent creates an event with its poll, creator as admin member.
// POST /api/events
func CreateEvent(c *fiber.Ctx) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid participant ID"})
	}

	var req services.CreateEventInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Event name is required"})
	}
	req.CreatorID = participantID

	eventID, err := eventService.CreateEvent(req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"event_id": eventID,
	})
}

// GetEvent returns a single event
// GET /api/events/:id
func GetEvent(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	event, err := eventService.GetEvent(eventID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"event":   event,
	})
}

// JoinEvent adds the caller to an event. The response mirrors the engine's
// boolean contract: joined true or false, nothing more specific.
// POST /api/events/:id/join
func JoinEvent(c *fiber.Ctx) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid participant ID"})
	}
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	joined := eventService.JoinEvent(participantID, eventID)
	if !joined {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"joined":  false,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"joined":  true,
	})
}

// LeaveEvent removes the caller from an event
// POST /api/events/:id/leave
func LeaveEvent(c *fiber.Ctx) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid participant ID"})
	}
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	if err := eventService.LeaveEvent(participantID, eventID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Left event",
	})
}

// UpdateEvent applies a partial update
// PATCH /api/events/:id
func UpdateEvent(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	var patch models.EventPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	event, err := eventService.UpdateEvent(eventID, patch)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"event":   event,
	})
}

// SearchEvents filters events; all query groups are optional
// GET /api/events
func SearchEvents(c *fiber.Ctx) error {
	filters := services.SearchFilters{}

	if categories := c.Query("categories"); categories != "" {
		filters.Categories = splitCSV(categories)
	}
	if names := c.Query("location_names"); names != "" {
		filters.LocationNames = splitCSV(names)
	}
	if cities := c.Query("location_cities"); cities != "" {
		filters.LocationCities = splitCSV(cities)
	}

	if size := c.Query("size"); size != "" {
		threshold, err := parseUintQuery(size)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid size threshold"})
		}
		filters.EventSize = &services.SizeFilter{
			Threshold:   threshold,
			GreaterThan: c.Query("size_greater", "true") == "true",
		}
	}

	if start := c.Query("start_time"); start != "" {
		threshold, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid start_time, expected RFC 3339"})
		}
		filters.StartTime = &services.TimeFilter{
			Threshold:   threshold,
			GreaterThan: c.Query("start_greater", "true") == "true",
		}
	}

	events, err := eventService.Search(filters)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
}

// EventFull reports whether an event reached capacity
// GET /api/events/:id/full
func EventFull(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	full, err := eventService.IsFull(eventID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"full":    full,
	})
}

// DeleteEvent removes an event and everything hanging off it
// DELETE /api/events/:id
func DeleteEvent(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	if err := eventService.DeleteEvent(eventID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event deleted",
	})
}
