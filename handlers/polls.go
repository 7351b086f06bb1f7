// handlers/polls.go - Suggestion poll HTTP handlers
package handlers

import (
	"time"

	"sportmate/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetEventPoll returns an event's poll with its suggestions
// GET /api/events/:id/poll
func GetEventPoll(c *fiber.Ctx) error {
	eventID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid event ID"})
	}

	poll, err := pollService.GetPoll(eventID)
	if err != nil {
		return fail(c, err)
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"success":        true,
		"poll":           poll,
		"active":         poll.IsActive(now),
		"time_remaining": poll.TimeRemaining(now).Seconds(),
	})
}

// ClosePoll ends a poll's suggestion window
// POST /api/polls/:id/close
func ClosePoll(c *fiber.Ctx) error {
	pollID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid poll ID"})
	}

	if err := pollService.ClosePoll(pollID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Poll closed",
	})
}

// AddSuggestion proposes a time for the event
// POST /api/polls/:id/suggestions
func AddSuggestion(c *fiber.Ctx) error {
	pollID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid poll ID"})
	}

	var req struct {
		SuggestedTime time.Time `json:"suggested_time"`
	}
	if err := c.BodyParser(&req); err != nil || req.SuggestedTime.IsZero() {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "suggested_time is required"})
	}

	suggestion, err := pollService.AddSuggestion(pollID, req.SuggestedTime)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"suggestion": suggestion,
	})
}

// VoteSuggestion backs a suggested time
// POST /api/suggestions/:id/vote
func VoteSuggestion(c *fiber.Ctx) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid participant ID"})
	}
	suggestionID, err := idParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid suggestion ID"})
	}

	if err := pollService.VoteSuggestion(suggestionID, participantID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Vote recorded",
	})
}
