package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getAppVersion)
	})

	router.Group(func(r chi.Router) {
		if h.config.TokenSignKey != "" {
			r.Use(h.auth)
		}

		r.Route("/api/entities", func(r chi.Router) {
			r.Get("/", h.listEntities)
			r.Post("/", h.createEntity)
			r.Get("/{idOrSlug}", h.getEntity)
			r.Patch("/{idOrSlug}", h.updateEntity)
			r.Delete("/{idOrSlug}", h.deleteEntity)
		})

		r.Route("/api/fields", func(r chi.Router) {
			r.Post("/", h.createField)
			r.Patch("/{id}", h.updateField)
			r.Delete("/{id}", h.deleteField)
		})

		r.Route("/api/records", func(r chi.Router) {
			r.Get("/{entitySlug}", h.listRecords)
			r.Post("/{entitySlug}", h.createRecord)
			r.Get("/{entitySlug}/{id}", h.getRecord)
			r.Patch("/{entitySlug}/{id}", h.updateRecord)
			r.Delete("/{entitySlug}/{id}", h.deleteRecord)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
