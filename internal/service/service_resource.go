package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
)

// ResourceSchema describes one resource kind to the generic resource service.
// T is the stored model, C the create request and U the update request.
type ResourceSchema[T, C, U any] struct {
	// Name is the singular resource name used in logs and error messages.
	Name string

	// Validator checks C on create and U on update.
	Validator validators.Validator

	// New builds a model from a validated create request.
	New func(req C) T

	// Merge applies a validated update request to the stored model.
	Merge func(resource *T, req U)

	// BeforeSave runs after New or Merge and before the model is written.
	// Optional.
	BeforeSave func(ctx context.Context, resource T) error

	// MapError translates repository write errors. Optional.
	MapError func(err error) error
}

// resourceService implements [ResourceService] once for every schema.
type resourceService[T, C, U any] struct {
	repository store.ResourceRepository[T]
	schema     ResourceSchema[T, C, U]

	logger *logger.Logger
}

func newResourceService[T, C, U any](repository store.ResourceRepository[T], schema ResourceSchema[T, C, U], logger *logger.Logger) *resourceService[T, C, U] {
	return &resourceService[T, C, U]{
		repository: repository,
		schema:     schema,
		logger:     logger,
	}
}

// List returns every resource ordered by id.
func (s *resourceService[T, C, U]) List(ctx context.Context) ([]T, error) {
	resources, err := s.repository.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("resource", s.schema.Name).Msg("error listing resources")
		return nil, fmt.Errorf("error listing %ss: %w", s.schema.Name, err)
	}
	return resources, nil
}

// Create validates req and stores a new resource built from it.
func (s *resourceService[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	if err := s.schema.Validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("resource", s.schema.Name).Msg("create request is invalid")
		return zero, err
	}

	resource := s.schema.New(req)
	if err := s.beforeSave(ctx, resource); err != nil {
		return zero, err
	}

	created, err := s.repository.Create(ctx, resource)
	if err != nil {
		log.Err(err).Str("resource", s.schema.Name).Msg("error creating resource")
		return zero, s.mapError(err, "creating")
	}

	return created, nil
}

// Get returns the resource with id or an error matching store.ErrRecordNotFound.
func (s *resourceService[T, C, U]) Get(ctx context.Context, id int64) (T, error) {
	resource, err := s.repository.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("error reading %s %d: %w", s.schema.Name, id, err)
	}
	return resource, nil
}

// Update validates req, merges it into the stored resource and writes the
// result. A missing resource is reported before anything is written.
func (s *resourceService[T, C, U]) Update(ctx context.Context, id int64, req U) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	resource, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := s.schema.Validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("resource", s.schema.Name).Int64("id", id).Msg("update request is invalid")
		return zero, err
	}

	s.schema.Merge(&resource, req)
	if err := s.beforeSave(ctx, resource); err != nil {
		return zero, err
	}

	updated, err := s.repository.Update(ctx, resource)
	if err != nil {
		log.Err(err).Str("resource", s.schema.Name).Int64("id", id).Msg("error updating resource")
		return zero, s.mapError(err, "updating")
	}

	return updated, nil
}

// Delete removes the resource with id.
func (s *resourceService[T, C, U]) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("resource", s.schema.Name).Int64("id", id).Msg("error deleting resource")
		return fmt.Errorf("error deleting %s %d: %w", s.schema.Name, id, err)
	}

	logger.FromContext(ctx).Info().Str("resource", s.schema.Name).Int64("id", id).Msg("resource deleted")
	return nil
}

func (s *resourceService[T, C, U]) beforeSave(ctx context.Context, resource T) error {
	if s.schema.BeforeSave == nil {
		return nil
	}
	return s.schema.BeforeSave(ctx, resource)
}

func (s *resourceService[T, C, U]) mapError(err error, action string) error {
	if s.schema.MapError != nil {
		if mapped := s.schema.MapError(err); mapped != nil {
			return mapped
		}
	}
	return fmt.Errorf("error %s %s: %w", action, s.schema.Name, err)
}
