package pets

import (
	"errors"

	"pet-care-log/internal/platform/validate"
)

var (
	ErrInvalidInput = validate.ErrInvalid
	ErrNotFound     = errors.New("pet not found")
	ErrNoWeight     = errors.New("no weight records")
)
