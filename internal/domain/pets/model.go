package pets

import "time"

// Pet representa una mascota registrada. Es dueña de sus WeightRecord.
type Pet struct {
	ID   string
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeightRecord es una medición de peso.
// MeasuredDate es una fecha civil (sin hora ni zona): se guarda como medianoche UTC.
type WeightRecord struct {
	ID           string
	PetID        string
	Weight       float64 // kg, > 0, a lo sumo 2 decimales
	MeasuredDate time.Time
	CreatedAt    time.Time
}

// WeightFilter filtra por mascota y rango de MeasuredDate (inclusivo).
type WeightFilter struct {
	PetID string
	From  *time.Time
	To    *time.Time
	Limit int
}

// Period es el selector de período del historial de peso.
// @Enum 1month, 3months, 6months, 1year, all
type Period string

const (
	Period1Month  Period = "1month"
	Period3Months Period = "3months"
	Period6Months Period = "6months"
	Period1Year   Period = "1year"
	PeriodAll     Period = "all"
)

func (p Period) Valid() bool {
	switch p {
	case Period1Month, Period3Months, Period6Months, Period1Year, PeriodAll:
		return true
	}
	return false
}
