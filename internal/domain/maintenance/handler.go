package maintenance

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
	log = log.With(map[string]any{"module": "maintenance"})

	r.Route("/maintenance-records", func(mr chi.Router) {
		mr.Get("/", listHandler(svc, log))
		mr.Post("/", createHandler(svc, log))
		mr.Get("/{recordID}", getHandler(svc, log))
		mr.Put("/{recordID}", updateHandler(svc, log))
		mr.Delete("/{recordID}", deleteHandler(svc, log))
	})
}

type recordRequest struct {
	Type        Type   `json:"type" enums:"water_filter,litter_box,nail_clipping"`
	PerformedAt string `json:"performed_at"` // RFC3339
	Notes       string `json:"notes"`
}

type recordResponse struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	PerformedAt time.Time `json:"performed_at"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// listHandler godoc
// @Summary Listar mantenimiento
// @Description Devuelve el historial completo, más reciente primero. El cliente filtra por rango.
// @Tags maintenance
// @Produce json
// @Param type query string false "water_filter|litter_box|nail_clipping"
// @Success 200 {array} recordResponse
// @Failure 400 {object} errorResponse
// @Router /maintenance-records [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := Type(strings.TrimSpace(r.URL.Query().Get("type")))

		items, err := svc.List(r.Context(), typ)
		if err != nil {
			writeServiceError(w, log, "list maintenance", err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createHandler godoc
// @Summary Registrar mantenimiento
// @Description performed_at RFC3339, no posterior al momento actual.
// @Tags maintenance
// @Accept json
// @Produce json
// @Param payload body recordRequest true "Registro"
// @Success 201 {object} recordResponse
// @Failure 400 {object} errorResponse
// @Router /maintenance-records [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		rec, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, log, "create maintenance", err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(rec))
	}
}

// getHandler godoc
// @Summary Obtener registro de mantenimiento
// @Tags maintenance
// @Produce json
// @Param recordID path string true "ID"
// @Success 200 {object} recordResponse
// @Failure 404 {object} errorResponse
// @Router /maintenance-records/{recordID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			writeServiceError(w, log, "get maintenance", err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

// updateHandler godoc
// @Summary Editar registro de mantenimiento
// @Tags maintenance
// @Accept json
// @Produce json
// @Param recordID path string true "ID"
// @Param payload body recordRequest true "Registro"
// @Success 200 {object} recordResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /maintenance-records/{recordID} [put]
func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRequest(w, r)
		if !ok {
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), in)
		if err != nil {
			writeServiceError(w, log, "update maintenance", err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

// deleteHandler godoc
// @Summary Eliminar registro de mantenimiento
// @Tags maintenance
// @Param recordID path string true "ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /maintenance-records/{recordID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
			writeServiceError(w, log, "delete maintenance", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return Input{}, false
	}

	var at time.Time
	if s := strings.TrimSpace(req.PerformedAt); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "performed_at must be RFC3339")
			return Input{}, false
		}
		at = t
	}
	return Input{Type: req.Type, PerformedAt: at, Notes: req.Notes}, true
}

func toResponse(r Record) recordResponse {
	return recordResponse{
		ID:          r.ID,
		Type:        r.Type,
		PerformedAt: r.PerformedAt.UTC(),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
	}
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
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Error("request failed", map[string]any{"op": op, "err": err})
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
