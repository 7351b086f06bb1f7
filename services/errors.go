// services/errors.go - Domain error kinds shared by all services
package services

import "errors"

// One sentinel per failure kind. Handlers match these with errors.Is and map
// them to HTTP status codes; messages are the user-facing text.
var (
	ErrIncompatibleCategoryLocation = errors.New("the pair of category and location is not in the category location table")
	ErrInvalidTimeWindow            = errors.New("event end time cannot be equal or less than start time")
	ErrInvalidPollWindow            = errors.New("poll end time must be before the event start time")
	ErrCapacityTooSmall             = errors.New("max participants must exceed the current number of participants")
	ErrCapacityExceeded             = errors.New("event reached max capacity")
	ErrDuplicateMembership          = errors.New("participant already joined this event")
	ErrNotFound                     = errors.New("not found")
	ErrNameConflict                 = errors.New("name already in use")
	ErrPollClosed                   = errors.New("poll is no longer active")
	ErrSuggestionLimit              = errors.New("poll reached its maximum number of suggestions")
	ErrNotEnoughParticipants        = errors.New("not enough participants to generate teams")
)
