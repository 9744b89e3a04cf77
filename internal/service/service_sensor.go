package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
)

type sensorService struct {
	*resourceService[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest]
}

// NewSensorService constructs a SensorService. The field a sensor refers to
// is checked through fieldRepository before every write.
func NewSensorService(sensorRepository store.SensorRepository, fieldRepository store.FieldRepository, logger *logger.Logger) SensorService {
	return &sensorService{
		resourceService: newResourceService[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest](sensorRepository, sensorSchema(fieldRepository), logger),
	}
}

func sensorSchema(fieldRepository store.FieldRepository) ResourceSchema[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest] {
	return ResourceSchema[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest]{
		Name:      "sensor",
		Validator: validators.NewResourceValidator(),
		New: func(req models.SensorCreateRequest) models.Sensor {
			return models.Sensor{
				Name:    req.Name,
				Lat:     *req.Lat,
				Lng:     *req.Lng,
				Status:  req.Status,
				FieldID: *req.FieldID,
			}
		},
		Merge: mergeSensor,
		BeforeSave: func(ctx context.Context, sensor models.Sensor) error {
			exists, err := fieldRepository.Exists(ctx, sensor.FieldID)
			if err != nil {
				return fmt.Errorf("error checking field %d: %w", sensor.FieldID, err)
			}
			if !exists {
				return unknownFieldError()
			}
			return nil
		},
		MapError: func(err error) error {
			if errors.Is(err, store.ErrForeignKeyViolation) {
				return unknownFieldError()
			}
			return nil
		},
	}
}

// mergeSensor overwrites the name and every supplied optional field.
func mergeSensor(sensor *models.Sensor, req models.SensorUpdateRequest) {
	sensor.Name = req.Name
	if req.Lat != nil {
		sensor.Lat = *req.Lat
	}
	if req.Lng != nil {
		sensor.Lng = *req.Lng
	}
	if req.Status != nil {
		sensor.Status = *req.Status
	}
	if req.FieldID != nil {
		sensor.FieldID = *req.FieldID
	}
}

func unknownFieldError() error {
	return validators.FieldError(validators.FieldFieldID, validators.ExistsMessage(validators.FieldFieldID))
}
