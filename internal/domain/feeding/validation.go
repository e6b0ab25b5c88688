package feeding

import (
	"regexp"
	"strings"
	"time"

	"pet-care-log/internal/platform/validate"
)

// HH:mm de 24 horas con cero a la izquierda obligatorio ("8:00" no vale).
var scheduleTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateScheduleTime valida el formato HH:mm de un horario.
func ValidateScheduleTime(hhmm string) error {
	if !scheduleTimeRe.MatchString(hhmm) {
		return validate.New("time", "must be HH:mm (00:00-23:59)")
	}
	return nil
}

// ValidateRecordInput se comparte entre service y session (cliente).
func ValidateRecordInput(feedTypeID string, feedingTime time.Time) error {
	if err := validate.Required("feed_type_id", feedTypeID); err != nil {
		return err
	}
	if feedingTime.IsZero() {
		return validate.New("feeding_time", "is required")
	}
	return nil
}

func ValidateFeedTypeInput(manufacturer, productName string) error {
	if strings.TrimSpace(manufacturer) == "" || strings.TrimSpace(productName) == "" {
		return validate.New("feed_type", "manufacturer and product name are required")
	}
	return nil
}
