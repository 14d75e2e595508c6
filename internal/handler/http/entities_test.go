package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ivkonovalov/shopdesk/internal/config"
	"github.com/ivkonovalov/shopdesk/internal/logger"
	"github.com/ivkonovalov/shopdesk/internal/service"
	"github.com/ivkonovalov/shopdesk/internal/store"
	"github.com/ivkonovalov/shopdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlerWithCatalog(t *testing.T, catalog *mockCatalogService) *Handler {
	t.Helper()

	svcs := &service.Services{
		CatalogService: catalog,
		RecordService:  &mockRecordService{},
	}

	return NewHandler(svcs, config.App{}, logger.Nop())
}

// ─────────────────────────────────────────────
// listEntities
// ─────────────────────────────────────────────

func TestListEntities_ReturnsOK(t *testing.T) {
	catalog := &mockCatalogService{
		listEntitiesFn: func(_ context.Context, onlyActive bool) ([]models.Entity, error) {
			assert.False(t, onlyActive)
			return []models.Entity{{ID: 1, Slug: "products"}}, nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"products"`)
}

func TestListEntities_ActiveFilterPassedThrough(t *testing.T) {
	catalog := &mockCatalogService{
		listEntitiesFn: func(_ context.Context, onlyActive bool) ([]models.Entity, error) {
			assert.True(t, onlyActive)
			return []models.Entity{}, nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/?active=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListEntities_StorageErrorHidesDetails(t *testing.T) {
	catalog := &mockCatalogService{
		listEntitiesFn: func(_ context.Context, _ bool) ([]models.Entity, error) {
			return nil, store.ErrExecutingQuery
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	apiErr := decodeAPIError(t, rec.Body.Bytes())
	assert.Equal(t, models.KindStorage, apiErr.Kind)
	assert.NotContains(t, apiErr.Message, "sql", "driver details must not leak to the caller")
}

// ─────────────────────────────────────────────
// getEntity
// ─────────────────────────────────────────────

func TestGetEntity_ReturnsEntityWithFields(t *testing.T) {
	catalog := &mockCatalogService{
		getEntityFn: func(_ context.Context, idOrSlug string) (models.Entity, error) {
			assert.Equal(t, "products", idOrSlug)
			return models.Entity{
				ID:   1,
				Slug: "products",
				Fields: []models.Field{
					{ID: 10, FieldName: "name", FieldType: models.FieldTypeText},
				},
			}, nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field_name":"name"`)
}

func TestGetEntity_NotFound(t *testing.T) {
	catalog := &mockCatalogService{
		getEntityFn: func(_ context.Context, _ string) (models.Entity, error) {
			return models.Entity{}, store.ErrEntityNotFound
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/entities/ghosts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.KindNotFound, decodeAPIError(t, rec.Body.Bytes()).Kind)
}

// ─────────────────────────────────────────────
// createEntity
// ─────────────────────────────────────────────

func TestCreateEntity_ReturnsCreatedID(t *testing.T) {
	catalog := &mockCatalogService{
		createEntityFn: func(_ context.Context, entity models.Entity) (models.Entity, error) {
			assert.Equal(t, "products", entity.Slug)
			entity.ID = 5
			return entity, nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	body := strings.NewReader(`{"slug":"products","label":"Products"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/entities/", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":5}`, rec.Body.String())
}

func TestCreateEntity_InvalidJSON(t *testing.T) {
	router := newTestHandlerWithCatalog(t, &mockCatalogService{}).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/entities/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.KindValidation, decodeAPIError(t, rec.Body.Bytes()).Kind)
}

func TestCreateEntity_InvalidSlug(t *testing.T) {
	catalog := &mockCatalogService{
		createEntityFn: func(_ context.Context, _ models.Entity) (models.Entity, error) {
			return models.Entity{}, service.ErrInvalidSlug
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/entities/", strings.NewReader(`{"slug":"Bad Slug"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.KindValidation, decodeAPIError(t, rec.Body.Bytes()).Kind)
}

func TestCreateEntity_SlugAlreadyExists(t *testing.T) {
	catalog := &mockCatalogService{
		createEntityFn: func(_ context.Context, _ models.Entity) (models.Entity, error) {
			return models.Entity{}, store.ErrSlugAlreadyExists
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/entities/", strings.NewReader(`{"slug":"products"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, models.KindConflict, decodeAPIError(t, rec.Body.Bytes()).Kind)
}

// ─────────────────────────────────────────────
// updateEntity / deleteEntity
// ─────────────────────────────────────────────

func TestUpdateEntity_ByNumericID(t *testing.T) {
	catalog := &mockCatalogService{
		updateEntityFn: func(_ context.Context, id int64, update models.EntityUpdate) error {
			assert.Equal(t, int64(5), id)
			require.NotNil(t, update.Label)
			assert.Equal(t, "New label", *update.Label)
			return nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodPatch, "/api/entities/5", strings.NewReader(`{"label":"New label"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateEntity_BySlugResolvesID(t *testing.T) {
	catalog := &mockCatalogService{
		getEntityFn: func(_ context.Context, idOrSlug string) (models.Entity, error) {
			assert.Equal(t, "products", idOrSlug)
			return models.Entity{ID: 5, Slug: "products"}, nil
		},
		updateEntityFn: func(_ context.Context, id int64, _ models.EntityUpdate) error {
			assert.Equal(t, int64(5), id)
			return nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodPatch, "/api/entities/products", strings.NewReader(`{"label":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteEntity_NotFound(t *testing.T) {
	catalog := &mockCatalogService{
		deleteEntityFn: func(_ context.Context, _ int64) error {
			return store.ErrEntityNotFound
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/entities/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEntity_Success(t *testing.T) {
	called := false
	catalog := &mockCatalogService{
		deleteEntityFn: func(_ context.Context, id int64) error {
			called = true
			assert.Equal(t, int64(42), id)
			return nil
		},
	}
	router := newTestHandlerWithCatalog(t, catalog).Init()

	req := httptest.NewRequest(http.MethodDelete, "/api/entities/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
