package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-agro-keeper/internal/service"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/go-chi/chi/v5"
)

const messageRecordDeleted = "Record deleted."

// resourceHandler serves the CRUD routes of one resource kind.
// one and many shape the payloads, e.g. {"field": ...} and {"fields": [...]}.
type resourceHandler[T, C, U any] struct {
	service service.ResourceService[T, C, U]
	one     func(T) any
	many    func([]T) any
}

// mount registers GET / and POST / plus GET, PATCH and DELETE on /{id}.
func (h resourceHandler[T, C, U]) mount(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h resourceHandler[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, h.many(resources), "")
}

func (h resourceHandler[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	var req C
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusCreated, h.one(created), "")
}

func (h resourceHandler[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resource, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, h.one(resource), "")
}

func (h resourceHandler[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req U
	if err := decodeJSON(w, r, &req); err != nil {
		// a missing record outranks a mistyped body
		if errors.Is(err, validators.ErrValidationFailed) {
			if _, getErr := h.service.Get(r.Context(), id); getErr != nil {
				err = getErr
			}
		}
		writeError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, h.one(updated), "")
}

func (h resourceHandler[T, C, U]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, nil, messageRecordDeleted)
}
