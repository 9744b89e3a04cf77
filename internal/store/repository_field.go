package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// fieldRepository is the "fields" table repository. CRUD comes from the
// generic resource repository.
type fieldRepository struct {
	*resourceRepository[models.Field]
}

// NewFieldRepository constructs a [FieldRepository] backed by db.
func NewFieldRepository(db *DB, log *logger.Logger) FieldRepository {
	return &fieldRepository{
		resourceRepository: newResourceRepository(db, fieldsTable, log),
	}
}

// Exists reports whether a field with id is stored.
func (r *fieldRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}
