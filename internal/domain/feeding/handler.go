package feeding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"module": "feeding"})

	r.Route("/feed-types", func(fr chi.Router) {
		fr.Get("/", listFeedTypesHandler(svc, log))
		fr.Post("/", createFeedTypeHandler(svc, log))
	})

	r.Route("/feeding-schedules", func(sr chi.Router) {
		sr.Get("/", listSchedulesHandler(svc, log))
		sr.Post("/", createScheduleHandler(svc, log))
		sr.Get("/next", nextScheduleHandler(svc, log, false))
		sr.Get("/next-unrecorded", nextScheduleHandler(svc, log, true))
		sr.Put("/{scheduleID}", updateScheduleHandler(svc, log))
		sr.Delete("/{scheduleID}", deleteScheduleHandler(svc, log))
		sr.Patch("/{scheduleID}/toggle", toggleScheduleHandler(svc, log))
	})

	r.Route("/feeding-records", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(svc, log))
		rr.Post("/", createRecordHandler(svc, log))
		rr.Get("/latest-unconsumed", latestUnconsumedHandler(svc, log))
		rr.Get("/{recordID}", getRecordHandler(svc, log))
		rr.Put("/{recordID}", updateRecordHandler(svc, log))
		rr.Put("/{recordID}/consumption", updateConsumptionHandler(svc, log))
		rr.Delete("/{recordID}", deleteRecordHandler(svc, log))
	})
}

type createFeedTypeRequest struct {
	Manufacturer string `json:"manufacturer"`
	ProductName  string `json:"product_name"`
}

type feedTypeResponse struct {
	ID           string    `json:"id"`
	Manufacturer string    `json:"manufacturer"`
	ProductName  string    `json:"product_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type scheduleRequest struct {
	Time string `json:"time"` // HH:mm
}

type scheduleResponse struct {
	ID        string    `json:"id"`
	Time      string    `json:"time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type nextTimeResponse struct {
	NextTime *string `json:"next_time"`
}

type recordRequest struct {
	FeedTypeID  string `json:"feed_type_id"`
	FeedingTime string `json:"feeding_time"` // RFC3339
}

type recordResponse struct {
	ID          string            `json:"id"`
	FeedTypeID  string            `json:"feed_type_id"`
	FeedingTime time.Time         `json:"feeding_time"`
	Consumed    *bool             `json:"consumed"`
	CreatedAt   time.Time         `json:"created_at"`
	FeedType    *feedTypeResponse `json:"feed_type,omitempty"`
}

// listFeedTypesHandler godoc
// @Summary Listar tipos de alimento
// @Tags feeding
// @Produce json
// @Success 200 {array} feedTypeResponse
// @Router /feed-types [get]
func listFeedTypesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListFeedTypes(r.Context())
		if err != nil {
			writeServiceError(w, log, "list feed types", err)
			return
		}

		out := make([]feedTypeResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFeedTypeResponse(f))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createFeedTypeHandler godoc
// @Summary Crear tipo de alimento
// @Description Fabricante y nombre de producto son obligatorios.
// @Tags feeding
// @Accept json
// @Produce json
// @Param payload body createFeedTypeRequest true "Tipo de alimento"
// @Success 201 {object} feedTypeResponse
// @Failure 400 {object} errorResponse
// @Router /feed-types [post]
func createFeedTypeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFeedTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		f, err := svc.CreateFeedType(r.Context(), CreateFeedTypeInput{
			Manufacturer: req.Manufacturer,
			ProductName:  req.ProductName,
		})
		if err != nil {
			writeServiceError(w, log, "create feed type", err)
			return
		}
		writeJSON(w, http.StatusCreated, toFeedTypeResponse(f))
	}
}

// listSchedulesHandler godoc
// @Summary Listar horarios de comida
// @Tags feeding
// @Produce json
// @Param active query bool false "Solo activos"
// @Success 200 {array} scheduleResponse
// @Router /feeding-schedules [get]
func listSchedulesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"

		items, err := svc.ListSchedules(r.Context(), activeOnly)
		if err != nil {
			writeServiceError(w, log, "list schedules", err)
			return
		}

		out := make([]scheduleResponse, 0, len(items))
		for _, sc := range items {
			out = append(out, toScheduleResponse(sc))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createScheduleHandler godoc
// @Summary Crear horario de comida
// @Description time en formato HH:mm de 24 horas con cero a la izquierda.
// @Tags feeding
// @Accept json
// @Produce json
// @Param payload body scheduleRequest true "Horario"
// @Success 201 {object} scheduleResponse
// @Failure 400 {object} errorResponse
// @Router /feeding-schedules [post]
func createScheduleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		sc, err := svc.CreateSchedule(r.Context(), req.Time)
		if err != nil {
			writeServiceError(w, log, "create schedule", err)
			return
		}
		writeJSON(w, http.StatusCreated, toScheduleResponse(sc))
	}
}

// updateScheduleHandler godoc
// @Summary Cambiar la hora de un horario
// @Tags feeding
// @Accept json
// @Produce json
// @Param scheduleID path string true "ID del horario"
// @Param payload body scheduleRequest true "Horario"
// @Success 200 {object} scheduleResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /feeding-schedules/{scheduleID} [put]
func updateScheduleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		sc, err := svc.UpdateSchedule(r.Context(), chi.URLParam(r, "scheduleID"), req.Time)
		if err != nil {
			writeServiceError(w, log, "update schedule", err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(sc))
	}
}

// toggleScheduleHandler godoc
// @Summary Activar/desactivar horario
// @Tags feeding
// @Produce json
// @Param scheduleID path string true "ID del horario"
// @Success 200 {object} scheduleResponse
// @Failure 404 {object} errorResponse
// @Router /feeding-schedules/{scheduleID}/toggle [patch]
func toggleScheduleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := svc.ToggleSchedule(r.Context(), chi.URLParam(r, "scheduleID"))
		if err != nil {
			writeServiceError(w, log, "toggle schedule", err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(sc))
	}
}

// deleteScheduleHandler godoc
// @Summary Eliminar horario
// @Tags feeding
// @Param scheduleID path string true "ID del horario"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /feeding-schedules/{scheduleID} [delete]
func deleteScheduleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSchedule(r.Context(), chi.URLParam(r, "scheduleID")); err != nil {
			writeServiceError(w, log, "delete schedule", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// nextScheduleHandler godoc
// @Summary Próximo horario (o próximo sin registrar hoy)
// @Description next: primer horario activo posterior a la hora actual, si no el primero de mañana. next-unrecorded: primer horario activo de hoy sin registro. next_time es null si no hay.
// @Tags feeding
// @Produce json
// @Success 200 {object} nextTimeResponse
// @Router /feeding-schedules/next [get]
// @Router /feeding-schedules/next-unrecorded [get]
func nextScheduleHandler(svc *Service, log logger.Logger, unrecorded bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			next string
			err  error
		)
		if unrecorded {
			next, err = svc.NextUnrecordedTime(r.Context())
		} else {
			next, err = svc.NextScheduledTime(r.Context())
		}

		switch {
		case errors.Is(err, ErrNoActiveSchedules):
			writeJSON(w, http.StatusOK, nextTimeResponse{})
		case err != nil:
			writeServiceError(w, log, "next schedule", err)
		default:
			writeJSON(w, http.StatusOK, nextTimeResponse{NextTime: &next})
		}
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de comida
// @Description start/end aceptan RFC3339 o YYYY-MM-DD (fecha se expande a 00:00 / 23:59:59.999 UTC). Rango inclusivo. Orden: más reciente primero.
// @Tags feeding
// @Produce json
// @Param start query string false "Inicio del rango"
// @Param end query string false "Fin del rango"
// @Success 200 {array} recordResponse
// @Failure 400 {object} errorResponse
// @Router /feeding-records [get]
func listRecordsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := ParseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
			return
		}

		items, err := svc.ListRecords(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, log, "list records", err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createRecordHandler godoc
// @Summary Registrar comida
// @Description feeding_time en RFC3339; se guarda en UTC. consumed arranca en null.
// @Tags feeding
// @Accept json
// @Produce json
// @Param payload body recordRequest true "Registro"
// @Success 201 {object} recordResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "feed type not found"
// @Router /feeding-records [post]
func createRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecordRequest(w, r)
		if !ok {
			return
		}

		rec, err := svc.CreateRecord(r.Context(), in)
		if err != nil {
			writeServiceError(w, log, "create record", err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// latestUnconsumedHandler godoc
// @Summary Último registro sin consumo registrado
// @Description Devuelve null si no hay ninguno.
// @Tags feeding
// @Produce json
// @Success 200 {object} recordResponse
// @Router /feeding-records/latest-unconsumed [get]
func latestUnconsumedHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok, err := svc.LatestUnrecorded(r.Context())
		if err != nil {
			writeServiceError(w, log, "latest unconsumed", err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// getRecordHandler godoc
// @Summary Obtener registro de comida
// @Tags feeding
// @Produce json
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 404 {object} errorResponse
// @Router /feeding-records/{recordID} [get]
func getRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeServiceError(w, log, "get record", err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary Editar registro de comida (tipo y hora)
// @Tags feeding
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Param payload body recordRequest true "Registro"
// @Success 200 {object} recordResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /feeding-records/{recordID} [put]
func updateRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRecordRequest(w, r)
		if !ok {
			return
		}

		rec, err := svc.UpdateRecord(r.Context(), chi.URLParam(r, "recordID"), in)
		if err != nil {
			writeServiceError(w, log, "update record", err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateConsumptionHandler godoc
// @Summary Registrar consumo
// @Description Body {"consumed": true|false|null}. null vuelve el registro a "sin registrar". El campo es obligatorio.
// @Tags feeding
// @Accept json
// @Produce json
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /feeding-records/{recordID}/consumption [put]
func updateConsumptionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Necesitamos distinguir "consumed": null de campo ausente.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}
		v, present := raw["consumed"]
		if !present {
			writeError(w, http.StatusBadRequest, "validation_error", "consumed is required")
			return
		}

		var consumed *bool
		if err := json.Unmarshal(v, &consumed); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "consumed must be true, false or null")
			return
		}

		rec, err := svc.SetConsumption(r.Context(), chi.URLParam(r, "recordID"), consumed)
		if err != nil {
			writeServiceError(w, log, "update consumption", err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// deleteRecordHandler godoc
// @Summary Eliminar registro de comida
// @Tags feeding
// @Param recordID path string true "ID del registro"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /feeding-records/{recordID} [delete]
func deleteRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteRecord(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			writeServiceError(w, log, "delete record", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeRecordRequest(w http.ResponseWriter, r *http.Request) (RecordInput, bool) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return RecordInput{}, false
	}

	var t time.Time
	if s := strings.TrimSpace(req.FeedingTime); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "feeding_time must be RFC3339")
			return RecordInput{}, false
		}
		t = parsed
	}
	return RecordInput{FeedTypeID: req.FeedTypeID, FeedingTime: t}, true
}

// ParseRange interpreta start/end de query. Acepta RFC3339 o YYYY-MM-DD;
// una fecha sola se expande al día UTC completo (00:00 / 23:59:59.999).
func ParseRange(start, end string) (*time.Time, *time.Time, error) {
	from, err := parseBound(start, false)
	if err != nil {
		return nil, nil, errors.New("start must be RFC3339 or YYYY-MM-DD")
	}
	to, err := parseBound(end, true)
	if err != nil {
		return nil, nil, errors.New("end must be RFC3339 or YYYY-MM-DD")
	}
	return from, to, nil
}

func parseBound(s string, end bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if end {
		d = d.Add(24*time.Hour - time.Millisecond)
	}
	return &d, nil
}

func toFeedTypeResponse(f FeedType) feedTypeResponse {
	return feedTypeResponse{
		ID:           f.ID,
		Manufacturer: f.Manufacturer,
		ProductName:  f.ProductName,
		CreatedAt:    f.CreatedAt,
	}
}

func toScheduleResponse(sc Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        sc.ID,
		Time:      sc.Time,
		IsActive:  sc.IsActive,
		CreatedAt: sc.CreatedAt,
	}
}

func toRecordResponse(r Record) recordResponse {
	out := recordResponse{
		ID:          r.ID,
		FeedTypeID:  r.FeedTypeID,
		FeedingTime: r.FeedingTime.UTC(),
		Consumed:    r.Consumed,
		CreatedAt:   r.CreatedAt,
	}
	if r.FeedType != nil {
		ft := toFeedTypeResponse(*r.FeedType)
		out.FeedType = &ft
	}
	return out
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		log.Debug("rejected", map[string]any{"op": op, "err": err})
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Error("request failed", map[string]any{"op": op, "err": err})
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// writeJSON/writeError se duplican por módulo para no crear un paquete compartido tan temprano.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
