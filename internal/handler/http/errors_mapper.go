package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ivkonovalov/shopdesk/internal/fieldtype"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/service"
	"github.com/ivkonovalov/shopdesk/internal/store"
	"github.com/ivkonovalov/shopdesk/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidSlug:           http.StatusBadRequest,
	service.ErrInvalidFieldName:      http.StatusBadRequest,
	service.ErrReservedFieldName:     http.StatusBadRequest,
	service.ErrFieldEntityNotFound:   http.StatusBadRequest,
	service.ErrSelectOptionsRequired: http.StatusBadRequest,
	service.ErrFieldTypeLocked:       http.StatusBadRequest,
	service.ErrInvalidDefaultValue:   http.StatusBadRequest,
	service.ErrRequiredFieldMissing:  http.StatusBadRequest,
	service.ErrRequiredFieldCleared:  http.StatusBadRequest,
	service.ErrUniqueValueConflict:   http.StatusConflict,

	fieldtype.ErrUnknownFieldType: http.StatusBadRequest,
	fieldtype.ErrCoercion:         http.StatusBadRequest,

	store.ErrEntityNotFound:         http.StatusNotFound,
	store.ErrFieldNotFound:          http.StatusNotFound,
	store.ErrRecordNotFound:         http.StatusNotFound,
	store.ErrSlugAlreadyExists:      http.StatusConflict,
	store.ErrFieldNameAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// kindFromStatus folds the HTTP status back into the four-kind error
// taxonomy carried in every error body.
func kindFromStatus(status int) models.ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return models.KindValidation
	case http.StatusConflict:
		return models.KindConflict
	case http.StatusNotFound:
		return models.KindNotFound
	default:
		return models.KindStorage
	}
}

// respondError writes the structured error body for err. Storage-kind
// failures hide the underlying error text from the caller; everything
// else carries the sentinel chain's message verbatim.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	kind := kindFromStatus(status)

	message := err.Error()
	if kind == models.KindStorage {
		log.Err(err).Msg("request failed on storage")
		message = http.StatusText(status)
	}

	h.respondJSON(w, r, status, models.APIError{Kind: kind, Message: message})
}

// respondJSON writes payload as the JSON response body with the given
// status code.
func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromRequest(r).Err(err).Msg("error encoding response body")
	}
}
