package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
)

// resourceRepository implements [ResourceRepository] once for every table
// described by a [table] value.
type resourceRepository[T any] struct {
	db     *DB
	table  table[T]
	logger *logger.Logger
}

func newResourceRepository[T any](db *DB, t table[T], log *logger.Logger) *resourceRepository[T] {
	log.Debug().Str("table", t.name).Msg("creating resource repository")
	return &resourceRepository[T]{
		db:     db,
		table:  t,
		logger: log,
	}
}

// List returns every row ordered by id.
func (r *resourceRepository[T]) List(ctx context.Context) ([]T, error) {
	return r.selectMany(ctx, "*resourceRepository.List", nil)
}

// selectMany runs a SELECT of full rows filtered by where (nil for all rows).
func (r *resourceRepository[T]) selectMany(ctx context.Context, fn string, where sq.Sqlizer) ([]T, error) {
	log := logger.FromContext(ctx)

	builder := r.db.builder.Select(r.table.selectColumns()...).From(r.table.name).OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Str("table", r.table.name).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result := make([]T, 0)
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		result = result[:0]
		for rows.Next() {
			var item T
			if err := r.table.scan(rows, &item); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			result = append(result, item)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", fn).Str("table", r.table.name).Msg("error selecting rows")
		if errors.Is(err, ErrScanningRows) {
			return nil, err
		}
		return nil, r.db.mapError(err, ErrExecutingQuery)
	}

	return result, nil
}

// Create inserts resource and returns the stored row.
func (r *resourceRepository[T]) Create(ctx context.Context, resource T) (T, error) {
	log := logger.FromContext(ctx)
	var created T

	now := time.Now().UTC()
	columns := append(append([]string{}, r.table.columns...), "created_at", "updated_at")
	values := append(r.table.values(resource), now, now)

	query, args, err := r.db.builder.
		Insert(r.table.name).
		Columns(columns...).
		Values(values...).
		Suffix(r.table.returning()).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Create").Str("table", r.table.name).Msg("error building query")
		return created, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.table.scan(row, &created); err != nil {
		log.Err(err).Str("func", "*resourceRepository.Create").Str("table", r.table.name).Msg("error inserting row")
		return created, r.db.mapError(err, ErrExecutingStatement)
	}

	return created, nil
}

// Get returns the row with id or ErrRecordNotFound.
func (r *resourceRepository[T]) Get(ctx context.Context, id int64) (T, error) {
	log := logger.FromContext(ctx)
	var found T

	query, args, err := r.db.builder.
		Select(r.table.selectColumns()...).
		From(r.table.name).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Get").Str("table", r.table.name).Msg("error building query")
		return found, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.table.scan(r.db.QueryRowContext(ctx, query, args...), &found)
	})
	if err != nil {
		mapped := r.db.mapError(err, ErrExecutingQuery)
		if !errors.Is(mapped, ErrRecordNotFound) {
			log.Err(err).Str("func", "*resourceRepository.Get").Str("table", r.table.name).Msg("error selecting row")
		}
		return found, mapped
	}

	return found, nil
}

// Update overwrites every writable column of the row with resource's id.
func (r *resourceRepository[T]) Update(ctx context.Context, resource T) (T, error) {
	log := logger.FromContext(ctx)
	var updated T

	builder := r.db.builder.Update(r.table.name)
	values := r.table.values(resource)
	for i, column := range r.table.columns {
		builder = builder.Set(column, values[i])
	}

	query, args, err := builder.
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": r.table.id(resource)}).
		Suffix(r.table.returning()).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Update").Str("table", r.table.name).Msg("error building query")
		return updated, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.table.scan(row, &updated); err != nil {
		log.Err(err).Str("func", "*resourceRepository.Update").Str("table", r.table.name).Msg("error updating row")
		return updated, r.db.mapError(err, ErrExecutingStatement)
	}

	return updated, nil
}

// Delete removes the row with id or returns ErrRecordNotFound.
func (r *resourceRepository[T]) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(r.table.name).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Delete").Str("table", r.table.name).Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Delete").Str("table", r.table.name).Msg("error deleting row")
		return r.db.mapError(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
