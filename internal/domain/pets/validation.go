package pets

import (
	"math"
	"strings"
	"time"

	"pet-care-log/internal/platform/validate"
)

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validate.New("name", "is required")
	}
	return nil
}

// ValidateWeight valida peso y fecha de medición.
// today es la fecha civil local de hoy; measured no puede ser posterior.
// Se usa igual en el server y en la session del cliente.
func ValidateWeight(weight float64, measured, today time.Time) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return validate.New("weight", "must be greater than 0")
	}
	if math.Round(weight*100)/100 != weight {
		return validate.New("weight", "must have at most 2 decimal places")
	}
	if measured.IsZero() {
		return validate.New("measured_date", "is required")
	}
	if DateOf(measured).After(DateOf(today)) {
		return validate.New("measured_date", "cannot be in the future")
	}
	return nil
}

// DateOf trunca a la fecha civil de t (en la zona de t), como medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta "YYYY-MM-DD" como fecha civil.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, validate.New("measured_date", "must be YYYY-MM-DD")
	}
	return t, nil
}

// FilterByPeriod deja los registros con MeasuredDate dentro del período, contado hacia atrás desde today.
func FilterByPeriod(items []WeightRecord, p Period, today time.Time) []WeightRecord {
	if p == PeriodAll || !p.Valid() {
		return items
	}

	end := DateOf(today)
	var start time.Time
	switch p {
	case Period1Month:
		start = end.AddDate(0, -1, 0)
	case Period3Months:
		start = end.AddDate(0, -3, 0)
	case Period6Months:
		start = end.AddDate(0, -6, 0)
	case Period1Year:
		start = end.AddDate(-1, 0, 0)
	}

	out := make([]WeightRecord, 0, len(items))
	for _, w := range items {
		d := DateOf(w.MeasuredDate)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, w)
	}
	return out
}
