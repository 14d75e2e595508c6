package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/models"
)

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request) {
	onlyActive, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	entities, err := h.services.CatalogService.ListEntities(r.Context(), onlyActive)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, entities)
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	entity, err := h.services.CatalogService.GetEntity(r.Context(), idOrSlug)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, entity)
}

func (h *Handler) createEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var entity models.Entity
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		log.Err(err).Str("func", "*Handler.createEntity").Msg("invalid JSON was passed")
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid JSON was passed"})
		return
	}

	created, err := h.services.CatalogService.CreateEntity(r.Context(), entity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, models.CreatedResponse{ID: created.ID})
}

func (h *Handler) updateEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := h.resolveEntityID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var update models.EntityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateEntity").Msg("invalid JSON was passed")
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid JSON was passed"})
		return
	}

	if err := h.services.CatalogService.UpdateEntity(r.Context(), id, update); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteEntity(w http.ResponseWriter, r *http.Request) {
	id, err := h.resolveEntityID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.CatalogService.DeleteEntity(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveEntityID turns the idOrSlug url param into a numeric entity id,
// going through the catalog when a slug was passed.
func (h *Handler) resolveEntityID(r *http.Request) (int64, error) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		return id, nil
	}

	entity, err := h.services.CatalogService.GetEntity(r.Context(), idOrSlug)
	if err != nil {
		return 0, err
	}

	return entity.ID, nil
}
