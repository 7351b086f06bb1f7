// handlers/common.go - Shared handler wiring and helpers
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"sportmate/database"
	"sportmate/models"
	"sportmate/services"

	"github.com/gofiber/fiber/v2"
)

var (
	catalogService     *services.CatalogService
	eventService       *services.EventService
	pollService        *services.PollService
	membershipService  *services.MembershipService
	teamService        *services.TeamService
	participantService *services.ParticipantService
)

// InitHandlers wires every handler to the shared database connection.
func InitHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitHandlers")
	}
	catalogService = services.NewCatalogService(db)
	eventService = services.NewEventService(db)
	pollService = services.NewPollService(db)
	membershipService = services.NewMembershipService(db)
	teamService = services.NewTeamService(db)
	participantService = services.NewParticipantService(db)
}

// idParam parses a numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// splitCSV splits a comma-separated query value, trimming blanks.
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseUintQuery(value string) (uint, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	return uint(n), err
}

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNameConflict),
		errors.Is(err, services.ErrDuplicateMembership),
		errors.Is(err, services.ErrCapacityExceeded):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidName),
		errors.Is(err, services.ErrIncompatibleCategoryLocation),
		errors.Is(err, services.ErrInvalidTimeWindow),
		errors.Is(err, services.ErrInvalidPollWindow),
		errors.Is(err, services.ErrCapacityTooSmall),
		errors.Is(err, services.ErrPollClosed),
		errors.Is(err, services.ErrSuggestionLimit),
		errors.Is(err, services.ErrNotEnoughParticipants):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// fail renders the teacher-standard error envelope.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
