package http

import "github.com/MKhiriev/go-agro-keeper/models"

func (h *Handler) sensors() resourceHandler[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest] {
	return resourceHandler[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest]{
		service: h.services.SensorService,
		one:     func(s models.Sensor) any { return models.SensorPayload{Sensor: s} },
		many:    func(s []models.Sensor) any { return models.SensorsPayload{Sensors: s} },
	}
}
