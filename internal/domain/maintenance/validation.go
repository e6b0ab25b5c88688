package maintenance

import (
	"time"

	"pet-care-log/internal/platform/validate"
)

// ValidateInput: tipo conocido y PerformedAt no posterior a now.
func ValidateInput(typ Type, performedAt, now time.Time) error {
	if !typ.Valid() {
		return validate.Newf("type", "must be one of water_filter, litter_box, nail_clipping (got %q)", typ)
	}
	if performedAt.IsZero() {
		return validate.New("performed_at", "is required")
	}
	if performedAt.After(now) {
		return validate.New("performed_at", "cannot be in the future")
	}
	return nil
}
