package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/models"
)

func (h *Handler) createField(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var field models.Field
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		log.Err(err).Str("func", "*Handler.createField").Msg("invalid JSON was passed")
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid JSON was passed"})
		return
	}

	created, err := h.services.CatalogService.CreateField(r.Context(), field)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, models.CreatedResponse{ID: created.ID})
}

func (h *Handler) updateField(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := fieldIDFromURL(r)
	if err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid field id"})
		return
	}

	var update models.FieldUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateField").Msg("invalid JSON was passed")
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid JSON was passed"})
		return
	}

	if err := h.services.CatalogService.UpdateField(r.Context(), id, update); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteField(w http.ResponseWriter, r *http.Request) {
	id, err := fieldIDFromURL(r)
	if err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid field id"})
		return
	}

	if err := h.services.CatalogService.DeleteField(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func fieldIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
