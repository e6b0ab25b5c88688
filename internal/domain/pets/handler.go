package pets

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
	log = log.With(map[string]any{"module": "pets"})

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))

		pr.Get("/{petID}/weight-records", listWeightsHandler(svc, log))
		pr.Post("/{petID}/weight-records", createWeightHandler(svc, log))
		pr.Get("/{petID}/weight-records/latest", latestWeightHandler(svc, log))
	})

	// Pesos de todas las mascotas por rango (vista calendario)
	r.Get("/weight-records", weightsInRangeHandler(svc, log))
}

type petRequest struct {
	Name string `json:"name"`
}

type petResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type weightRequest struct {
	Weight       float64 `json:"weight"`
	MeasuredDate string  `json:"measured_date"` // YYYY-MM-DD
}

type weightResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Weight       float64   `json:"weight"`
	MeasuredDate string    `json:"measured_date"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body petRequest true "Nombre"
// @Success 201 {object} petResponse
// @Failure 400 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		p, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			writeServiceError(w, log, "create pet", err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, log, "list pets", err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, log, "get pet", err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Renombrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body petRequest true "Nombre"
// @Success 200 {object} petResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		p, err := svc.Rename(r.Context(), chi.URLParam(r, "petID"), req.Name)
		if err != nil {
			writeServiceError(w, log, "update pet", err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Elimina también todos sus registros de peso.
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, log, "delete pet", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listWeightsHandler godoc
// @Summary Historial de peso
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param period query string false "1month|3months|6months|1year|all"
// @Success 200 {array} weightResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/weight-records [get]
func listWeightsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := Period(strings.TrimSpace(r.URL.Query().Get("period")))

		items, err := svc.ListWeights(r.Context(), chi.URLParam(r, "petID"), period)
		if err != nil {
			writeServiceError(w, log, "list weights", err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightResponses(items))
	}
}

// createWeightHandler godoc
// @Summary Registrar peso
// @Description weight > 0 con a lo sumo 2 decimales; measured_date YYYY-MM-DD no posterior a hoy (zona local del server).
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body weightRequest true "Medición"
// @Success 201 {object} weightResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/weight-records [post]
func createWeightHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req weightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		measured, err := ParseDate(req.MeasuredDate)
		if err != nil {
			writeServiceError(w, log, "create weight", err)
			return
		}

		rec, err := svc.RecordWeight(r.Context(), WeightInput{
			PetID:        chi.URLParam(r, "petID"),
			Weight:       req.Weight,
			MeasuredDate: measured,
		})
		if err != nil {
			writeServiceError(w, log, "create weight", err)
			return
		}
		writeJSON(w, http.StatusCreated, toWeightResponse(rec))
	}
}

// latestWeightHandler godoc
// @Summary Último peso registrado
// @Description Devuelve null si la mascota no tiene registros.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} weightResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/weight-records/latest [get]
func latestWeightHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.LatestWeight(r.Context(), chi.URLParam(r, "petID"))
		if errors.Is(err, ErrNoWeight) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		if err != nil {
			writeServiceError(w, log, "latest weight", err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightResponse(rec))
	}
}

// weightsInRangeHandler godoc
// @Summary Pesos de todas las mascotas en un rango
// @Description start/end RFC3339 o YYYY-MM-DD; se comparan contra la fecha de medición.
// @Tags pets
// @Produce json
// @Param start query string false "Inicio"
// @Param end query string false "Fin"
// @Success 200 {array} weightResponse
// @Failure 400 {object} errorResponse
// @Router /weight-records [get]
func weightsInRangeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseBound(r.URL.Query().Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", "start must be RFC3339 or YYYY-MM-DD")
			return
		}
		to, err := parseBound(r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_range", "end must be RFC3339 or YYYY-MM-DD")
			return
		}

		items, err := svc.WeightsInRange(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, log, "weights in range", err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightResponses(items))
	}
}

func parseBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toWeightResponse(w WeightRecord) weightResponse {
	return weightResponse{
		ID:           w.ID,
		PetID:        w.PetID,
		Weight:       w.Weight,
		MeasuredDate: w.MeasuredDate.Format("2006-01-02"),
		CreatedAt:    w.CreatedAt,
	}
}

func toWeightResponses(items []WeightRecord) []weightResponse {
	out := make([]weightResponse, 0, len(items))
	for _, w := range items {
		out = append(out, toWeightResponse(w))
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

// writeJSON está duplicado en handlers de cada módulo (feeding/pets/maintenance).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
