package maintenance

import (
	"errors"

	"pet-care-log/internal/platform/validate"
)

var (
	ErrInvalidInput = validate.ErrInvalid
	ErrNotFound     = errors.New("maintenance record not found")
)
