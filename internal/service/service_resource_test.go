// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/mock"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type note struct {
	ID   int64
	Text string
}

type noteRequest struct {
	Text string
}

// noteValidator rejects empty text.
type noteValidator struct{}

func (noteValidator) Validate(_ context.Context, obj any, _ ...string) error {
	if obj.(noteRequest).Text == "" {
		return validators.FieldError("text", validators.RequiredMessage("text"))
	}
	return nil
}

var errNoteHook = errors.New("hook rejected note")

func newTestNoteSvc(ctrl *gomock.Controller, hook func(context.Context, note) error) (*resourceService[note, noteRequest, noteRequest], *mock.MockResourceRepository[note]) {
	repo := mock.NewMockResourceRepository[note](ctrl)
	schema := ResourceSchema[note, noteRequest, noteRequest]{
		Name:       "note",
		Validator:  noteValidator{},
		New:        func(req noteRequest) note { return note{Text: req.Text} },
		Merge:      func(n *note, req noteRequest) { n.Text = req.Text },
		BeforeSave: hook,
	}
	return newResourceService[note, noteRequest, noteRequest](repo, schema, logger.Nop()), repo
}

func TestResourceService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, note{Text: "hello"}).Return(note{ID: 1, Text: "hello"}, nil)

	created, err := svc.Create(ctx, noteRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestResourceService_CreateInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestNoteSvc(ctrl, nil)

	_, err := svc.Create(context.Background(), noteRequest{})
	assert.ErrorIs(t, err, validators.ErrValidationFailed)
}

func TestResourceService_BeforeSaveStopsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, func(context.Context, note) error { return errNoteHook })
	ctx := context.Background()

	repo.EXPECT().Get(ctx, int64(1)).Return(note{ID: 1, Text: "old"}, nil)

	_, err := svc.Create(ctx, noteRequest{Text: "hello"})
	assert.ErrorIs(t, err, errNoteHook)

	_, err = svc.Update(ctx, 1, noteRequest{Text: "new"})
	assert.ErrorIs(t, err, errNoteHook)
}

func TestResourceService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	repo.EXPECT().List(ctx).Return([]note{{ID: 1}, {ID: 2}}, nil)

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestResourceService_UpdateMerges(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().Get(ctx, int64(4)).Return(note{ID: 4, Text: "old"}, nil),
		repo.EXPECT().Update(ctx, note{ID: 4, Text: "new"}).Return(note{ID: 4, Text: "new"}, nil),
	)

	updated, err := svc.Update(ctx, 4, noteRequest{Text: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Text)
}

func TestResourceService_MissingResourceIsNotMutated(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, int64(404)).Return(note{}, store.ErrRecordNotFound).Times(3)

	_, err := svc.Get(ctx, 404)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, err = svc.Update(ctx, 404, noteRequest{Text: "x"})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 404), store.ErrRecordNotFound)
}

func TestResourceService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().Get(ctx, int64(4)).Return(note{ID: 4}, nil),
		repo.EXPECT().Delete(ctx, int64(4)).Return(nil),
	)

	assert.NoError(t, svc.Delete(ctx, 4))
}

func TestResourceService_UpdateLooksUpBeforeValidating(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, int64(404)).Return(note{}, store.ErrRecordNotFound)

	_, err := svc.Update(ctx, 404, noteRequest{})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	assert.NotErrorIs(t, err, validators.ErrValidationFailed)
}

func TestResourceService_UpdateInvalidExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestNoteSvc(ctrl, nil)
	ctx := context.Background()

	// no Update expected
	repo.EXPECT().Get(ctx, int64(4)).Return(note{ID: 4, Text: "old"}, nil)

	_, err := svc.Update(ctx, 4, noteRequest{})
	assert.ErrorIs(t, err, validators.ErrValidationFailed)
}

// ─────────────────────────────────────────────
// Fields
// ─────────────────────────────────────────────

func TestFieldService_CreateNameRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	fields := mock.NewMockFieldRepository(ctrl)
	svc := NewFieldService(fields, mock.NewMockSensorRepository(ctrl), logger.Nop())

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Create(context.Background(), models.FieldRequest{Name: string(long)})
	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"The name must not be greater than 100 characters."}, errs[validators.FieldName])
}

func TestFieldService_GetWithSensors(t *testing.T) {
	ctrl := gomock.NewController(t)
	fields := mock.NewMockFieldRepository(ctrl)
	sensors := mock.NewMockSensorRepository(ctrl)
	svc := NewFieldService(fields, sensors, logger.Nop())
	ctx := context.Background()

	fields.EXPECT().Get(ctx, int64(1)).Return(models.Field{ID: 1, Name: "North"}, nil)
	sensors.EXPECT().ListByField(ctx, int64(1)).Return([]models.Sensor{{ID: 2, FieldID: 1}}, nil)

	field, err := svc.GetWithSensors(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "North", field.Name)
	require.Len(t, field.Sensors, 1)
	assert.Equal(t, int64(2), field.Sensors[0].ID)
}

func TestFieldService_GetWithSensorsMissingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	fields := mock.NewMockFieldRepository(ctrl)
	svc := NewFieldService(fields, mock.NewMockSensorRepository(ctrl), logger.Nop())
	ctx := context.Background()

	fields.EXPECT().Get(ctx, int64(9)).Return(models.Field{}, store.ErrRecordNotFound)

	_, err := svc.GetWithSensors(ctx, 9)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ─────────────────────────────────────────────
// Sensors
// ─────────────────────────────────────────────

func newTestSensorSvc(ctrl *gomock.Controller) (SensorService, *mock.MockSensorRepository, *mock.MockFieldRepository) {
	sensors := mock.NewMockSensorRepository(ctrl)
	fields := mock.NewMockFieldRepository(ctrl)
	return NewSensorService(sensors, fields, logger.Nop()), sensors, fields
}

func validSensorRequest() models.SensorCreateRequest {
	return models.SensorCreateRequest{
		Name:    "Probe A",
		Lat:     ptr(48.5),
		Lng:     ptr(-3.25),
		Status:  "active",
		FieldID: ptr(int64(1)),
	}
}

func TestSensorService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sensors, fields := newTestSensorSvc(ctrl)
	ctx := context.Background()

	want := models.Sensor{Name: "Probe A", Lat: 48.5, Lng: -3.25, Status: "active", FieldID: 1}
	fields.EXPECT().Exists(ctx, int64(1)).Return(true, nil)
	sensors.EXPECT().Create(ctx, want).Return(models.Sensor{ID: 7, Name: "Probe A", FieldID: 1}, nil)

	sensor, err := svc.Create(ctx, validSensorRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), sensor.ID)
}

func TestSensorService_CreateMissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestSensorSvc(ctrl)

	_, err := svc.Create(context.Background(), models.SensorCreateRequest{})

	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	for _, field := range []string{validators.FieldName, validators.FieldLat, validators.FieldLng, validators.FieldStatus, validators.FieldFieldID} {
		assert.True(t, errs.Has(field), field)
	}
	assert.Equal(t, []string{"The field id field is required."}, errs[validators.FieldFieldID])
}

func TestSensorService_CreateUnknownField(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, fields := newTestSensorSvc(ctrl)
	ctx := context.Background()

	fields.EXPECT().Exists(ctx, int64(1)).Return(false, nil)

	_, err := svc.Create(ctx, validSensorRequest())

	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"The selected field id is invalid."}, errs[validators.FieldFieldID])
}

func TestSensorService_CreateForeignKeyRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sensors, fields := newTestSensorSvc(ctrl)
	ctx := context.Background()

	fields.EXPECT().Exists(ctx, int64(1)).Return(true, nil)
	sensors.EXPECT().Create(ctx, gomock.Any()).Return(models.Sensor{}, store.ErrForeignKeyViolation)

	_, err := svc.Create(ctx, validSensorRequest())

	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has(validators.FieldFieldID))
}

func TestSensorService_UpdateKeepsUnsuppliedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sensors, fields := newTestSensorSvc(ctrl)
	ctx := context.Background()

	stored := models.Sensor{ID: 7, Name: "Probe A", Lat: 48.5, Lng: -3.25, Status: "active", FieldID: 1}
	want := stored
	want.Status = "offline"

	sensors.EXPECT().Get(ctx, int64(7)).Return(stored, nil)
	fields.EXPECT().Exists(ctx, int64(1)).Return(true, nil)
	sensors.EXPECT().Update(ctx, want).Return(want, nil)

	updated, err := svc.Update(ctx, 7, models.SensorUpdateRequest{Name: "Probe A", Status: ptr("offline")})
	require.NoError(t, err)
	assert.Equal(t, "offline", updated.Status)
	assert.Equal(t, 48.5, updated.Lat)
}

func TestSensorService_UpdateRequiresName(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sensors, _ := newTestSensorSvc(ctrl)
	ctx := context.Background()

	sensors.EXPECT().Get(ctx, int64(7)).Return(models.Sensor{ID: 7, Name: "Probe", FieldID: 1}, nil)

	_, err := svc.Update(ctx, 7, models.SensorUpdateRequest{Status: ptr("offline")})

	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"The name field is required."}, errs[validators.FieldName])
}

func TestSensorService_UpdateMovesToUnknownField(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, sensors, fields := newTestSensorSvc(ctrl)
	ctx := context.Background()

	sensors.EXPECT().Get(ctx, int64(7)).Return(models.Sensor{ID: 7, FieldID: 1}, nil)
	fields.EXPECT().Exists(ctx, int64(42)).Return(false, nil)

	_, err := svc.Update(ctx, 7, models.SensorUpdateRequest{Name: "Probe", FieldID: ptr(int64(42))})
	assert.ErrorIs(t, err, validators.ErrValidationFailed)
}
