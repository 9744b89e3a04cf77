package validators

import (
	"context"

	"github.com/MKhiriev/go-agro-keeper/models"
)

// Coordinate bounds in degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ResourceValidator implements the Validator interface for the field and
// sensor requests: FieldRequest, SensorCreateRequest and SensorUpdateRequest.
type ResourceValidator struct {
}

// NewResourceValidator constructs a new ResourceValidator and returns it as
// the Validator interface.
func NewResourceValidator() Validator {
	return &ResourceValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known request,
// an [Errors] value if any rule failed, and nil otherwise.
func (v *ResourceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FieldRequest:
		return v.validateField(value, fields...)
	case *models.FieldRequest:
		return v.validateField(*value, fields...)

	case models.SensorCreateRequest:
		return v.validateSensorCreate(value, fields...)
	case *models.SensorCreateRequest:
		return v.validateSensorCreate(*value, fields...)

	case models.SensorUpdateRequest:
		return v.validateSensorUpdate(value, fields...)
	case *models.SensorUpdateRequest:
		return v.validateSensorUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ResourceValidator) validateField(req models.FieldRequest, fields ...string) error {
	errs := Errors{}

	if scope(fields, FieldName) {
		checkName(errs, FieldName, req.Name, MaxResourceNameLength)
	}

	return errs.Err()
}

func (v *ResourceValidator) validateSensorCreate(req models.SensorCreateRequest, fields ...string) error {
	errs := Errors{}

	if scope(fields, FieldName) {
		checkName(errs, FieldName, req.Name, MaxResourceNameLength)
	}
	if scope(fields, FieldLat) {
		if req.Lat == nil {
			errs.Add(FieldLat, RequiredMessage(FieldLat))
		} else {
			checkBetween(errs, FieldLat, *req.Lat, MinLatitude, MaxLatitude)
		}
	}
	if scope(fields, FieldLng) {
		if req.Lng == nil {
			errs.Add(FieldLng, RequiredMessage(FieldLng))
		} else {
			checkBetween(errs, FieldLng, *req.Lng, MinLongitude, MaxLongitude)
		}
	}
	if scope(fields, FieldStatus) {
		checkName(errs, FieldStatus, req.Status, MaxStatusLength)
	}
	if scope(fields, FieldFieldID) {
		switch {
		case req.FieldID == nil:
			errs.Add(FieldFieldID, RequiredMessage(FieldFieldID))
		case *req.FieldID <= 0:
			errs.Add(FieldFieldID, ExistsMessage(FieldFieldID))
		}
	}

	return errs.Err()
}

// validateSensorUpdate requires the name; every other field is checked only
// when present.
func (v *ResourceValidator) validateSensorUpdate(req models.SensorUpdateRequest, fields ...string) error {
	errs := Errors{}

	if scope(fields, FieldName) {
		checkName(errs, FieldName, req.Name, MaxResourceNameLength)
	}
	if req.Lat != nil && scope(fields, FieldLat) {
		checkBetween(errs, FieldLat, *req.Lat, MinLatitude, MaxLatitude)
	}
	if req.Lng != nil && scope(fields, FieldLng) {
		checkBetween(errs, FieldLng, *req.Lng, MinLongitude, MaxLongitude)
	}
	if req.Status != nil && scope(fields, FieldStatus) {
		checkName(errs, FieldStatus, *req.Status, MaxStatusLength)
	}
	if req.FieldID != nil && *req.FieldID <= 0 && scope(fields, FieldFieldID) {
		errs.Add(FieldFieldID, ExistsMessage(FieldFieldID))
	}

	return errs.Err()
}
