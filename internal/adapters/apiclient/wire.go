package apiclient

import (
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

// Formas JSON de la API. Deben coincidir con los handlers de cada módulo.

type feedTypeDTO struct {
	ID           string    `json:"id"`
	Manufacturer string    `json:"manufacturer"`
	ProductName  string    `json:"product_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (d feedTypeDTO) model() feeding.FeedType {
	return feeding.FeedType{ID: d.ID, Manufacturer: d.Manufacturer, ProductName: d.ProductName, CreatedAt: d.CreatedAt}
}

type feedTypeRequest struct {
	Manufacturer string `json:"manufacturer"`
	ProductName  string `json:"product_name"`
}

type scheduleDTO struct {
	ID        string    `json:"id"`
	Time      string    `json:"time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (d scheduleDTO) model() feeding.Schedule {
	return feeding.Schedule{ID: d.ID, Time: d.Time, IsActive: d.IsActive, CreatedAt: d.CreatedAt}
}

type scheduleRequest struct {
	Time string `json:"time"`
}

type nextTimeDTO struct {
	NextTime *string `json:"next_time"`
}

type recordDTO struct {
	ID          string       `json:"id"`
	FeedTypeID  string       `json:"feed_type_id"`
	FeedingTime time.Time    `json:"feeding_time"`
	Consumed    *bool        `json:"consumed"`
	CreatedAt   time.Time    `json:"created_at"`
	FeedType    *feedTypeDTO `json:"feed_type,omitempty"`
}

func (d recordDTO) model() feeding.Record {
	r := feeding.Record{
		ID:          d.ID,
		FeedTypeID:  d.FeedTypeID,
		FeedingTime: d.FeedingTime.UTC(),
		Consumed:    d.Consumed,
		CreatedAt:   d.CreatedAt,
	}
	if d.FeedType != nil {
		ft := d.FeedType.model()
		r.FeedType = &ft
	}
	return r
}

type recordRequest struct {
	FeedTypeID  string `json:"feed_type_id"`
	FeedingTime string `json:"feeding_time"`
}

// consumptionRequest serializa nil como "consumed": null (el campo es obligatorio).
type consumptionRequest struct {
	Consumed *bool `json:"consumed"`
}

type maintenanceDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	PerformedAt time.Time `json:"performed_at"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d maintenanceDTO) model() maintenance.Record {
	return maintenance.Record{
		ID:          d.ID,
		Type:        maintenance.Type(d.Type),
		PerformedAt: d.PerformedAt.UTC(),
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
	}
}

type maintenanceRequest struct {
	Type        string `json:"type"`
	PerformedAt string `json:"performed_at"`
	Notes       string `json:"notes"`
}

type petDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d petDTO) model() pets.Pet {
	return pets.Pet{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type petRequest struct {
	Name string `json:"name"`
}

type weightDTO struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Weight       float64   `json:"weight"`
	MeasuredDate string    `json:"measured_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (d weightDTO) model() (pets.WeightRecord, error) {
	date, err := pets.ParseDate(d.MeasuredDate)
	if err != nil {
		return pets.WeightRecord{}, err
	}
	return pets.WeightRecord{
		ID:           d.ID,
		PetID:        d.PetID,
		Weight:       d.Weight,
		MeasuredDate: date,
		CreatedAt:    d.CreatedAt,
	}, nil
}

type weightRequest struct {
	Weight       float64 `json:"weight"`
	MeasuredDate string  `json:"measured_date"`
}

func mapAll[D any, M any](items []D, f func(D) M) []M {
	out := make([]M, 0, len(items))
	for _, d := range items {
		out = append(out, f(d))
	}
	return out
}
