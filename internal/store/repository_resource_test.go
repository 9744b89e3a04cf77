// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fieldRowColumns  = []string{"id", "name", "created_at", "updated_at"}
	sensorRowColumns = []string{"id", "name", "lat", "lng", "status", "field_id", "created_at", "updated_at"}
)

func TestFieldRepository_List(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery(`^SELECT id, name, created_at, updated_at FROM fields ORDER BY id$`).
		WillReturnRows(sqlmock.NewRows(fieldRowColumns).
			AddRow(1, "North Field", now, now).
			AddRow(2, "South Field", now, now))

	fields, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "North Field", fields[0].Name)
	assert.Equal(t, int64(2), fields[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldRepository_ListEmptyIsNotNil(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM fields").WillReturnRows(sqlmock.NewRows(fieldRowColumns))

	fields, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}

func TestFieldRepository_ListQueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM fields").WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestFieldRepository_ListScanError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM fields").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestFieldRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO fields \(name,created_at,updated_at\) VALUES \(\$1,\$2,\$3\) RETURNING id, name, created_at, updated_at`).
		WithArgs("North Field", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(fieldRowColumns).AddRow(10, "North Field", now, now))

	field, err := repo.Create(context.Background(), models.Field{Name: "North Field"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), field.ID)
	assert.Equal(t, "North Field", field.Name)
}

func TestFieldRepository_Get(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM fields WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(fieldRowColumns).AddRow(10, "North Field", now, now))

	field, err := repo.Get(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "North Field", field.Name)
}

func TestFieldRepository_GetNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM fields WHERE id").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFieldRepository_Update(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery(`UPDATE fields SET name = \$1, updated_at = \$2 WHERE id = \$3 RETURNING id, name, created_at, updated_at`).
		WithArgs("Renamed", sqlmock.AnyArg(), int64(10)).
		WillReturnRows(sqlmock.NewRows(fieldRowColumns).AddRow(10, "Renamed", now, now))

	field, err := repo.Update(context.Background(), models.Field{ID: 10, Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", field.Name)
}

func TestFieldRepository_UpdateNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectQuery("UPDATE fields").
		WillReturnRows(sqlmock.NewRows(fieldRowColumns))

	_, err := repo.Update(context.Background(), models.Field{ID: 404, Name: "x"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFieldRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectExec(`DELETE FROM fields WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 10))
}

func TestFieldRepository_DeleteNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	mock.ExpectExec("DELETE FROM fields").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), ErrRecordNotFound)
}

func TestFieldRepository_Exists(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM fields WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(fieldRowColumns).AddRow(1, "f", now, now))
	mock.ExpectQuery("SELECT (.+) FROM fields WHERE id").
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM fields WHERE id").
		WithArgs(int64(3)).
		WillReturnError(errors.New("boom"))

	ok, err := repo.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Exists(context.Background(), 3)
	assert.Error(t, err)
}

func TestSensorRepository_CreateForeignKeyViolation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSensorRepository(db, logger.Nop())

	mock.ExpectQuery(`INSERT INTO sensors \(name,lat,lng,status,field_id,created_at,updated_at\)`).
		WithArgs("Probe", 1.5, 2.5, "active", int64(99), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.Create(context.Background(), models.Sensor{
		Name: "Probe", Lat: 1.5, Lng: 2.5, Status: "active", FieldID: 99,
	})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func TestSensorRepository_Update(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSensorRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery(`UPDATE sensors SET name = \$1, lat = \$2, lng = \$3, status = \$4, field_id = \$5, updated_at = \$6 WHERE id = \$7`).
		WithArgs("Probe", 1.5, 2.5, "offline", int64(1), sqlmock.AnyArg(), int64(4)).
		WillReturnRows(sqlmock.NewRows(sensorRowColumns).AddRow(4, "Probe", 1.5, 2.5, "offline", 1, now, now))

	sensor, err := repo.Update(context.Background(), models.Sensor{
		ID: 4, Name: "Probe", Lat: 1.5, Lng: 2.5, Status: "offline", FieldID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "offline", sensor.Status)
}

func TestSensorRepository_ListByField(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSensorRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, lat, lng, status, field_id, created_at, updated_at FROM sensors WHERE field_id = \$1 ORDER BY id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(sensorRowColumns).
			AddRow(4, "A", 1.0, 2.0, "active", 1, now, now).
			AddRow(5, "B", 3.0, 4.0, "offline", 1, now, now))

	sensors, err := repo.ListByField(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sensors, 2)
	assert.Equal(t, "B", sensors[1].Name)
	assert.Equal(t, int64(1), sensors[0].FieldID)
}
