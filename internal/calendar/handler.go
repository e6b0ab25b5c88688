package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone la grilla mensual ya agrupada por día local.
// Cada request arma su propia Session sobre store.
func RegisterRoutes(r chi.Router, store Store, loc *time.Location, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"module": "calendar"})

	r.Get("/calendar", monthHandler(store, loc, log))
	r.Get("/calendar/{date}", dayHandler(store, loc, log))
}

type monthResponse struct {
	Month    string           `json:"month"`
	TimeZone string           `json:"timezone"`
	Today    string           `json:"today"`
	Weeks    [][]cellResponse `json:"weeks"`
}

type cellResponse struct {
	dayResponse
	InMonth bool `json:"in_month"`
	IsToday bool `json:"is_today"`
}

type dayResponse struct {
	Date        string            `json:"date"`
	Feeding     []feedingItem     `json:"feeding"`
	Weights     []weightItem      `json:"weights"`
	Maintenance []maintenanceItem `json:"maintenance"`
}

type feedingItem struct {
	ID          string    `json:"id"`
	FeedTypeID  string    `json:"feed_type_id"`
	FeedType    string    `json:"feed_type,omitempty"`
	FeedingTime time.Time `json:"feeding_time"`
	LocalTime   string    `json:"local_time"` // HH:mm
	Consumed    *bool     `json:"consumed"`
}

type weightItem struct {
	ID           string  `json:"id"`
	PetID        string  `json:"pet_id"`
	Weight       float64 `json:"weight"`
	MeasuredDate string  `json:"measured_date"`
}

type maintenanceItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Label       string    `json:"label"`
	PerformedAt time.Time `json:"performed_at"`
	LocalTime   string    `json:"local_time"`
	Notes       string    `json:"notes,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// monthHandler godoc
// @Summary Calendario mensual agrupado por día local
// @Tags calendar
// @Produce json
// @Param month query string false "Mes YYYY-MM (default: mes actual)"
// @Success 200 {object} monthResponse
// @Failure 400 {object} errorResponse
// @Router /calendar [get]
func monthHandler(store Store, loc *time.Location, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := Options{Location: loc, Logger: log}
		if raw := r.URL.Query().Get("month"); raw != "" {
			m, err := ParseMonth(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "validation_error", err.Error())
				return
			}
			opts.Month = &m
		}

		s := NewSession(store, opts)
		if err := s.Reload(r.Context()); err != nil {
			writeLoadError(w, log, err)
			return
		}

		labels := feedTypeLabels(s.FeedTypes())
		cells := s.Cells()
		weeks := make([][]cellResponse, 0, len(cells))
		for _, week := range cells {
			row := make([]cellResponse, 0, len(week))
			for _, c := range week {
				row = append(row, cellResponse{
					dayResponse: toDayResponse(c.DayData, s.Location(), labels),
					InMonth:     c.InMonth,
					IsToday:     c.IsToday,
				})
			}
			weeks = append(weeks, row)
		}

		writeJSON(w, http.StatusOK, monthResponse{
			Month:    s.Month().String(),
			TimeZone: s.Location().String(),
			Today:    s.Today().String(),
			Weeks:    weeks,
		})
	}
}

// dayHandler godoc
// @Summary Detalle de un día local
// @Tags calendar
// @Produce json
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {object} dayResponse
// @Failure 400 {object} errorResponse
// @Router /calendar/{date} [get]
func dayHandler(store Store, loc *time.Location, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := ParseDay(chi.URLParam(r, "date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		m := d.MonthOf()
		s := NewSession(store, Options{Location: loc, Logger: log, Month: &m})
		if err := s.Reload(r.Context()); err != nil {
			writeLoadError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toDayResponse(s.DayData(d), s.Location(), feedTypeLabels(s.FeedTypes())))
	}
}

func feedTypeLabels(types []feeding.FeedType) map[string]string {
	out := make(map[string]string, len(types))
	for _, ft := range types {
		out[ft.ID] = ft.Label()
	}
	return out
}

func toDayResponse(d DayData, loc *time.Location, labels map[string]string) dayResponse {
	out := dayResponse{
		Date:        d.Day.String(),
		Feeding:     make([]feedingItem, 0, len(d.Feeding)),
		Weights:     make([]weightItem, 0, len(d.Weights)),
		Maintenance: make([]maintenanceItem, 0, len(d.Maintenance)),
	}
	for _, f := range d.Feeding {
		out.Feeding = append(out.Feeding, toFeedingItem(f, loc, labels))
	}
	for _, wr := range d.Weights {
		out.Weights = append(out.Weights, toWeightItem(wr))
	}
	for _, m := range d.Maintenance {
		out.Maintenance = append(out.Maintenance, toMaintenanceItem(m, loc))
	}
	return out
}

func toFeedingItem(f feeding.Record, loc *time.Location, labels map[string]string) feedingItem {
	label := labels[f.FeedTypeID]
	if f.FeedType != nil {
		label = f.FeedType.Label()
	}
	return feedingItem{
		ID:          f.ID,
		FeedTypeID:  f.FeedTypeID,
		FeedType:    label,
		FeedingTime: f.FeedingTime.UTC(),
		LocalTime:   f.FeedingTime.In(loc).Format("15:04"),
		Consumed:    f.Consumed,
	}
}

func toWeightItem(wr pets.WeightRecord) weightItem {
	return weightItem{
		ID:           wr.ID,
		PetID:        wr.PetID,
		Weight:       wr.Weight,
		MeasuredDate: wr.MeasuredDate.Format("2006-01-02"),
	}
}

func toMaintenanceItem(m maintenance.Record, loc *time.Location) maintenanceItem {
	return maintenanceItem{
		ID:          m.ID,
		Type:        string(m.Type),
		Label:       m.Type.Label(),
		PerformedAt: m.PerformedAt.UTC(),
		LocalTime:   m.PerformedAt.In(loc).Format("15:04"),
		Notes:       m.Notes,
	}
}

func writeLoadError(w http.ResponseWriter, log logger.Logger, err error) {
	var re *RemoteError
	if errors.As(err, &re) {
		err = re.Err
	}
	log.Error("request failed", map[string]any{"op": "load calendar", "err": err})
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
