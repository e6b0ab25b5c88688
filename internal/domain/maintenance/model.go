package maintenance

import "time"

// Type de tarea de mantenimiento.
// @Enum water_filter, litter_box, nail_clipping
type Type string

const (
	TypeWaterFilter  Type = "water_filter"
	TypeLitterBox    Type = "litter_box"
	TypeNailClipping Type = "nail_clipping"
)

var AllTypes = []Type{TypeWaterFilter, TypeLitterBox, TypeNailClipping}

func (t Type) Valid() bool {
	switch t {
	case TypeWaterFilter, TypeLitterBox, TypeNailClipping:
		return true
	}
	return false
}

// Label para mostrar en listados y calendario.
func (t Type) Label() string {
	switch t {
	case TypeWaterFilter:
		return "Water filter change"
	case TypeLitterBox:
		return "Litter box change"
	case TypeNailClipping:
		return "Nail clipping"
	default:
		return string(t)
	}
}

// Record es una tarea realizada. PerformedAt en UTC.
type Record struct {
	ID          string
	Type        Type
	PerformedAt time.Time
	Notes       string
	CreatedAt   time.Time
}
