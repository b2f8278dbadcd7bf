package sightings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"wildlife-sightings/internal/domain/validation"
	"wildlife-sightings/internal/platform/logger"
	"wildlife-sightings/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const resourceName = "sighting"

// HandlerOptions agrupa lo que los handlers necesitan además del service.
type HandlerOptions struct {
	Metrics *metrics.Metrics

	// LegacyUpdateStatus responde 200 (en vez de 422) cuando falla la
	// validación de un update, como la versión anterior de la API.
	LegacyUpdateStatus bool
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	h := &handler{svc: svc, opts: opts}

	// Rutas planas: el animal viene en animal_id (query o body).
	r.Route("/sightings", h.routes)

	// Rutas anidadas bajo el animal dueño.
	r.Route("/animals/{animalID}/sightings", h.routes)
}

type handler struct {
	svc  *Service
	opts HandlerOptions
}

func (h *handler) routes(sr chi.Router) {
	sr.Get("/", h.list)
	sr.Post("/", h.create)
	sr.Get("/{sightingID}", h.show)
	sr.Patch("/{sightingID}", h.update)
	sr.Put("/{sightingID}", h.update)
	sr.Delete("/{sightingID}", h.destroy)
}

// sightingResponse representa un avistamiento devuelto por la API.
type sightingResponse struct {
	ID        string           `json:"id"`
	AnimalID  string           `json:"animal_id"`
	Date      *time.Time       `json:"date"`
	Latitude  *decimal.Decimal `json:"latitude" swaggertype:"string" example:"45.5152"`
	Longitude *decimal.Decimal `json:"longitude" swaggertype:"string" example:"122.6784"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// sightingRequest documenta el body aceptado; el parseo real es flexible (ver DecodeBody).
type sightingRequest struct {
	Date      string `json:"date" example:"2022-01-12 16:57"`
	Latitude  string `json:"latitude" example:"45.5152"`
	Longitude string `json:"longitude" example:"122.6784"`
}

// list godoc
// @Summary Listar avistamientos por rango de fechas
// @Description Devuelve los avistamientos cuyo `date` cae en el rango inclusivo [start_date, end_date]. Un límite ausente deja ese lado abierto. En la ruta anidada solo se listan los del animal.
// @Tags sightings
// @Produce json
// @Param animalID path string false "ID del animal (solo ruta anidada)"
// @Param start_date query string false "Inicio del rango (RFC3339 o YYYY-MM-DD[ HH:MM])"
// @Param end_date query string false "Fin del rango (RFC3339 o YYYY-MM-DD[ HH:MM])"
// @Success 200 {array} sightingResponse
// @Failure 400 {string} string "start_date/end_date inválido"
// @Failure 404 {string} string "animal not found"
// @Router /sightings [get]
// @Router /animals/{animalID}/sightings [get]
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{AnimalID: chi.URLParam(r, "animalID")}

	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("start_date")); v != "" {
		t, ok := ParseTime(v)
		if !ok {
			http.Error(w, "start_date must be a date or timestamp", http.StatusBadRequest)
			return
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("end_date")); v != "" {
		t, ok := ParseTime(v)
		if !ok {
			http.Error(w, "end_date must be a date or timestamp", http.StatusBadRequest)
			return
		}
		filter.To = &t
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	out := make([]sightingResponse, 0, len(items))
	for _, sg := range items {
		out = append(out, toSightingResponse(sg))
	}
	writeJSON(w, http.StatusOK, out)
}

// show godoc
// @Summary Ver un avistamiento
// @Tags sightings
// @Produce json
// @Param animalID path string false "ID del animal (solo ruta anidada)"
// @Param sightingID path string true "ID del avistamiento"
// @Success 200 {object} sightingResponse
// @Failure 404 {string} string "animal not found / sighting not found"
// @Router /sightings/{sightingID} [get]
// @Router /animals/{animalID}/sightings/{sightingID} [get]
func (h *handler) show(w http.ResponseWriter, r *http.Request) {
	sg, err := h.svc.Get(r.Context(), animalIDFrom(r, nil), chi.URLParam(r, "sightingID"))
	if err != nil {
		h.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, toSightingResponse(sg))
}

// create godoc
// @Summary Registrar un avistamiento
// @Description Crea un avistamiento bajo el animal indicado. Solo se aceptan date, latitude y longitude (planos o dentro de "sighting"); el resto se descarta.
// @Tags sightings
// @Accept json
// @Produce json
// @Param animalID path string false "ID del animal (solo ruta anidada)"
// @Param animal_id query string false "ID del animal en la ruta plana (también puede venir en el body)"
// @Param payload body sightingRequest true "Datos del avistamiento"
// @Success 200 {object} sightingResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "animal not found"
// @Failure 422 {object} map[string][]string "errores por campo"
// @Router /sightings [post]
// @Router /animals/{animalID}/sightings [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	body, attrs, err := DecodeBody(r.Body)
	if err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sg, err := h.svc.Create(r.Context(), animalIDFrom(r, body), ParseAttributes(attrs))
	if err != nil {
		h.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	h.opts.Metrics.RecordCreated(resourceName)
	logger.FromContext(r.Context()).Info("sighting created",
		slog.String("sighting_id", sg.ID),
		slog.String("animal_id", sg.AnimalID),
	)

	writeJSON(w, http.StatusOK, toSightingResponse(sg))
}

// update godoc
// @Summary Actualizar un avistamiento
// @Description Aplica solo los campos permitidos presentes en el body. Si la validación falla responde 422 (200 en modo legacy).
// @Tags sightings
// @Accept json
// @Produce json
// @Param animalID path string false "ID del animal (solo ruta anidada)"
// @Param sightingID path string true "ID del avistamiento"
// @Param payload body sightingRequest true "Campos a modificar"
// @Success 200 {object} sightingResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "animal not found / sighting not found"
// @Failure 422 {object} map[string][]string "errores por campo"
// @Router /sightings/{sightingID} [patch]
// @Router /sightings/{sightingID} [put]
// @Router /animals/{animalID}/sightings/{sightingID} [patch]
// @Router /animals/{animalID}/sightings/{sightingID} [put]
func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	body, attrs, err := DecodeBody(r.Body)
	if err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sg, err := h.svc.Update(r.Context(), animalIDFrom(r, body), chi.URLParam(r, "sightingID"), ParseAttributes(attrs))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if h.opts.LegacyUpdateStatus {
			status = http.StatusOK
		}
		h.writeError(w, r, err, status)
		return
	}

	writeJSON(w, http.StatusOK, toSightingResponse(sg))
}

// destroy godoc
// @Summary Borrar un avistamiento
// @Tags sightings
// @Produce json
// @Param animalID path string false "ID del animal (solo ruta anidada)"
// @Param sightingID path string true "ID del avistamiento"
// @Success 200 {object} sightingResponse
// @Failure 404 {string} string "animal not found / sighting not found"
// @Router /sightings/{sightingID} [delete]
// @Router /animals/{animalID}/sightings/{sightingID} [delete]
func (h *handler) destroy(w http.ResponseWriter, r *http.Request) {
	sg, err := h.svc.Delete(r.Context(), animalIDFrom(r, nil), chi.URLParam(r, "sightingID"))
	if err != nil {
		h.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	h.opts.Metrics.RecordDeleted(resourceName)
	writeJSON(w, http.StatusOK, toSightingResponse(sg))
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error, invalidStatus int) {
	if verrs, ok := validation.AsErrors(err); ok {
		h.opts.Metrics.ValidationFailed(resourceName, verrs)
		writeJSON(w, invalidStatus, verrs)
		return
	}

	switch {
	case errors.Is(err, ErrAnimalNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "sighting not found", http.StatusNotFound)
	default:
		logger.FromContext(r.Context()).Error("sighting request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// animalIDFrom: path param en rutas anidadas; en las planas, animal_id en query o body.
func animalIDFrom(r *http.Request, body map[string]json.RawMessage) string {
	if id := strings.TrimSpace(chi.URLParam(r, "animalID")); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("animal_id")); id != "" {
		return id
	}
	if v, ok := body["animal_id"]; ok {
		if s, ok := RawString(v); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func toSightingResponse(s Sighting) sightingResponse {
	return sightingResponse{
		ID:        s.ID,
		AnimalID:  s.AnimalID,
		Date:      s.Date,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
