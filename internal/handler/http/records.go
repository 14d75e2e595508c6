package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/models"
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	entitySlug := chi.URLParam(r, "entitySlug")

	records, err := h.services.RecordService.ListRecords(r.Context(), entitySlug)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, records)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	entitySlug := chi.URLParam(r, "entitySlug")

	id, err := recordIDFromURL(r)
	if err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid record id"})
		return
	}

	record, err := h.services.RecordService.GetRecord(r.Context(), entitySlug, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, record)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	entitySlug := chi.URLParam(r, "entitySlug")

	var request models.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("invalid JSON was passed")
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid JSON was passed"})
		return
	}

	record, err := h.services.RecordService.CreateRecord(r.Context(), entitySlug, request.Data)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, models.RecordCreatedResponse{ID: record.ID})
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	entitySlug := chi.URLParam(r, "entitySlug")

	id, err := recordIDFromURL(r)
	if err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid record id"})
		return
	}

	var request models.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Msg("invalid JSON was passed")
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid JSON was passed"})
		return
	}

	if err := h.services.RecordService.UpdateRecord(r.Context(), entitySlug, id, request.Data); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	entitySlug := chi.URLParam(r, "entitySlug")

	id, err := recordIDFromURL(r)
	if err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, models.APIError{Kind: models.KindValidation, Message: "invalid record id"})
		return
	}

	if err := h.services.RecordService.DeleteRecord(r.Context(), entitySlug, id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func recordIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
