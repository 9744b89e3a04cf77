package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
)

type fieldService struct {
	*resourceService[models.Field, models.FieldRequest, models.FieldRequest]

	sensorRepository store.SensorRepository
}

// NewFieldService constructs a FieldService. Deleting a field also deletes
// its sensors through the schema's cascading foreign key.
func NewFieldService(fieldRepository store.FieldRepository, sensorRepository store.SensorRepository, logger *logger.Logger) FieldService {
	return &fieldService{
		resourceService:  newResourceService[models.Field, models.FieldRequest, models.FieldRequest](fieldRepository, fieldSchema(), logger),
		sensorRepository: sensorRepository,
	}
}

func fieldSchema() ResourceSchema[models.Field, models.FieldRequest, models.FieldRequest] {
	return ResourceSchema[models.Field, models.FieldRequest, models.FieldRequest]{
		Name:      "field",
		Validator: validators.NewResourceValidator(),
		New: func(req models.FieldRequest) models.Field {
			return models.Field{Name: req.Name}
		},
		Merge: func(field *models.Field, req models.FieldRequest) {
			field.Name = req.Name
		},
	}
}

// GetWithSensors returns the field with id and its sensors ordered by id.
func (s *fieldService) GetWithSensors(ctx context.Context, id int64) (models.FieldWithSensors, error) {
	field, err := s.Get(ctx, id)
	if err != nil {
		return models.FieldWithSensors{}, err
	}

	sensors, err := s.sensorRepository.ListByField(ctx, id)
	if err != nil {
		return models.FieldWithSensors{}, fmt.Errorf("error listing sensors of field %d: %w", id, err)
	}

	return models.FieldWithSensors{Field: field, Sensors: sensors}, nil
}
