package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// sensorRepository is the "sensors" table repository. CRUD comes from the
// generic resource repository.
type sensorRepository struct {
	*resourceRepository[models.Sensor]
}

// NewSensorRepository constructs a [SensorRepository] backed by db.
func NewSensorRepository(db *DB, log *logger.Logger) SensorRepository {
	return &sensorRepository{
		resourceRepository: newResourceRepository(db, sensorsTable, log),
	}
}

// ListByField returns the sensors attached to fieldID ordered by id.
func (r *sensorRepository) ListByField(ctx context.Context, fieldID int64) ([]models.Sensor, error) {
	return r.selectMany(ctx, "*sensorRepository.ListByField", sq.Eq{"field_id": fieldID})
}
