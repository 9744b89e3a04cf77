package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	// fallbacks are copied into subrouters when they are mounted,
	// so they have to be set before any route
	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Use(withRecover)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Get("/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/auth/logout", h.logout)

		r.Get("/profile", h.getProfile)
		r.Post("/profile", h.updateProfile)

		r.Route("/fields", func(r chi.Router) {
			h.fields().mount(r)
			r.Get("/{id}/sensors", h.getFieldWithSensors)
		})
		r.Route("/sensors", h.sensors().mount)
	})

	return router
}
