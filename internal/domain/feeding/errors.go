package feeding

import (
	"errors"

	"pet-care-log/internal/platform/validate"
)

var (
	ErrInvalidInput      = validate.ErrInvalid
	ErrNotFound          = errors.New("feeding record not found")
	ErrFeedTypeNotFound  = errors.New("feed type not found")
	ErrScheduleNotFound  = errors.New("feeding schedule not found")
	ErrNoActiveSchedules = errors.New("no active schedules")
)
