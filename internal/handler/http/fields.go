package http

import (
	"net/http"

	"github.com/MKhiriev/go-agro-keeper/models"
)

func (h *Handler) fields() resourceHandler[models.Field, models.FieldRequest, models.FieldRequest] {
	return resourceHandler[models.Field, models.FieldRequest, models.FieldRequest]{
		service: h.services.FieldService,
		one:     func(f models.Field) any { return models.FieldPayload{Field: f} },
		many:    func(f []models.Field) any { return models.FieldsPayload{Fields: f} },
	}
}

func (h *Handler) getFieldWithSensors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	field, err := h.services.FieldService.GetWithSensors(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, models.FieldWithSensorsPayload{Field: field}, "")
}
