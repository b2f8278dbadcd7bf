package animals

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"wildlife-sightings/internal/domain/sightings"
	"wildlife-sightings/internal/domain/validation"
	"wildlife-sightings/internal/platform/logger"
	"wildlife-sightings/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const (
	resourceName      = "animal"
	sightingsResource = "sighting"
)

func RegisterRoutes(r chi.Router, svc *Service, m *metrics.Metrics) {
	h := &handler{svc: svc, metrics: m}

	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", h.list)
		ar.Post("/", h.create)
		ar.Get("/{animalID}", h.show)
		ar.Patch("/{animalID}", h.update)
		ar.Put("/{animalID}", h.update)
		ar.Delete("/{animalID}", h.destroy)
	})
}

type handler struct {
	svc     *Service
	metrics *metrics.Metrics
}

// animalRequest documenta el body aceptado (plano o dentro de "animal").
type animalRequest struct {
	CommonName          string             `json:"common_name" example:"Weasel"`
	LatinName           string             `json:"latin_name" example:"Mustela nivalis"`
	Kingdom             string             `json:"kingdom" example:"mammal"`
	SightingsAttributes []nestedSightingIn `json:"sightings_attributes"`
}

// nestedSightingIn: con id modifica un sighting existente del animal.
type nestedSightingIn struct {
	ID        string `json:"id,omitempty"`
	Date      string `json:"date" example:"2022-01-12 16:57"`
	Latitude  string `json:"latitude" example:"45.5152"`
	Longitude string `json:"longitude" example:"122.6784"`
}

// animalResponse representa un animal devuelto por la API.
type animalResponse struct {
	ID         string    `json:"id"`
	CommonName string    `json:"common_name"`
	LatinName  string    `json:"latin_name"`
	Kingdom    string    `json:"kingdom"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Solo los sightings creados o modificados en el mismo request.
	Sightings []nestedSightingResponse `json:"sightings,omitempty"`
}

type nestedSightingResponse struct {
	ID        string           `json:"id"`
	AnimalID  string           `json:"animal_id"`
	Date      *time.Time       `json:"date"`
	Latitude  *decimal.Decimal `json:"latitude" swaggertype:"string" example:"45.5152"`
	Longitude *decimal.Decimal `json:"longitude" swaggertype:"string" example:"122.6784"`
}

// list godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 500 {string} string "internal error"
// @Router /animals [get]
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// show godoc
// @Summary Ver un animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func (h *handler) show(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "animalID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAnimalResponse(a))
}

// create godoc
// @Summary Crear un animal
// @Description common_name y latin_name son obligatorios, únicos y distintos entre sí. sightings_attributes crea avistamientos en el mismo request y se validan en cascada.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body animalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json"
// @Failure 422 {object} map[string][]string "errores por campo"
// @Router /animals [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	p, err := decodeAnimalParams(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in := CreateInput{Sightings: p.sightings}
	if p.commonName != nil {
		in.CommonName = *p.commonName
	}
	if p.latinName != nil {
		in.LatinName = *p.latinName
	}
	if p.kingdom != nil {
		in.Kingdom = *p.kingdom
	}

	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordCreated(resourceName)
	for range a.Sightings {
		h.metrics.RecordCreated(sightingsResource)
	}
	logger.FromContext(r.Context()).Info("animal created",
		slog.String("animal_id", a.ID),
		slog.Int("sightings", len(a.Sightings)),
	)

	writeJSON(w, http.StatusCreated, toAnimalResponse(a))
}

// update godoc
// @Summary Actualizar un animal
// @Description Las entradas de sightings_attributes con id modifican ese avistamiento del animal; sin id crean uno nuevo.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body animalRequest true "Campos a modificar"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "animal not found / sighting not found"
// @Failure 422 {object} map[string][]string "errores por campo"
// @Router /animals/{animalID} [patch]
// @Router /animals/{animalID} [put]
func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	p, err := decodeAnimalParams(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
		CommonName: p.commonName,
		LatinName:  p.latinName,
		Kingdom:    p.kingdom,
		Sightings:  p.sightings,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	for range a.Sightings {
		h.metrics.RecordCreated(sightingsResource)
	}
	writeJSON(w, http.StatusOK, toAnimalResponse(a))
}

// destroy godoc
// @Summary Borrar un animal
// @Description Borra el animal y todos sus avistamientos.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [delete]
func (h *handler) destroy(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Delete(r.Context(), chi.URLParam(r, "animalID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.RecordDeleted(resourceName)
	writeJSON(w, http.StatusOK, toAnimalResponse(a))
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if verrs, ok := validation.AsErrors(err); ok {
		h.metrics.ValidationFailed(resourceName, verrs)
		writeJSON(w, http.StatusUnprocessableEntity, verrs)
		return
	}

	if errors.Is(err, ErrNotFound) {
		http.Error(w, "animal not found", http.StatusNotFound)
		return
	}
	// id en sightings_attributes que no es del animal
	if errors.Is(err, sightings.ErrNotFound) {
		http.Error(w, "sighting not found", http.StatusNotFound)
		return
	}

	logger.FromContext(r.Context()).Error("animal request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// animalParams son los campos permitidos; nil = no vino en el body.
type animalParams struct {
	commonName *string
	latinName  *string
	kingdom    *string
	sightings  []NestedSighting
}

// decodeAnimalParams acepta {"animal": {...}} o el objeto plano y descarta
// todo lo que no sea common_name, latin_name, kingdom o sightings_attributes.
func decodeAnimalParams(body io.Reader) (animalParams, error) {
	_, attrs, err := sightings.DecodeWrapped(body, "animal")
	if err != nil {
		return animalParams{}, errors.New("invalid json")
	}

	var p animalParams
	p.commonName = stringParam(attrs, "common_name")
	p.latinName = stringParam(attrs, "latin_name")
	p.kingdom = stringParam(attrs, "kingdom")

	if v, ok := attrs["sightings_attributes"]; ok {
		list, err := nestedAttributes(v)
		if err != nil {
			return animalParams{}, err
		}
		p.sightings = list
	}
	return p, nil
}

func stringParam(attrs map[string]json.RawMessage, key string) *string {
	v, ok := attrs[key]
	if !ok {
		return nil
	}
	s, _ := sightings.RawString(v)
	return &s
}

// nestedAttributes acepta un array de objetos o un objeto indexado {"0": {...}}.
func nestedAttributes(v json.RawMessage) ([]NestedSighting, error) {
	var list []map[string]json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil {
		out := make([]NestedSighting, 0, len(list))
		for _, item := range list {
			out = append(out, nestedSighting(item))
		}
		return out, nil
	}

	var indexed map[string]map[string]json.RawMessage
	if err := json.Unmarshal(v, &indexed); err != nil {
		return nil, errors.New("sightings_attributes must be an array of objects")
	}
	keys := make([]string, 0, len(indexed))
	for k := range indexed {
		keys = append(keys, k)
	}
	sortIndexKeys(keys)

	out := make([]NestedSighting, 0, len(keys))
	for _, k := range keys {
		out = append(out, nestedSighting(indexed[k]))
	}
	return out, nil
}

func nestedSighting(raw map[string]json.RawMessage) NestedSighting {
	n := NestedSighting{Attrs: sightings.ParseAttributes(raw)}
	if v, ok := raw["id"]; ok {
		n.ID, _ = sightings.RawString(v)
	}
	return n
}

// sortIndexKeys ordena "2" antes que "10". Las claves no numéricas van
// después, en orden de string.
func sortIndexKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			if a != b {
				return a < b
			}
			return keys[i] < keys[j]
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

func toAnimalResponse(a Animal) animalResponse {
	resp := animalResponse{
		ID:         a.ID,
		CommonName: a.CommonName,
		LatinName:  a.LatinName,
		Kingdom:    a.Kingdom,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	for _, list := range [][]sightings.Sighting{a.ChangedSightings, a.Sightings} {
		for _, sg := range list {
			resp.Sightings = append(resp.Sightings, nestedSightingResponse{
				ID:        sg.ID,
				AnimalID:  sg.AnimalID,
				Date:      sg.Date,
				Latitude:  sg.Latitude,
				Longitude: sg.Longitude,
			})
		}
	}
	return resp
}

// writeJSON está duplicado en sightings a propósito; todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
