package validators

import (
	"context"

	"github.com/MKhiriev/go-agro-keeper/models"
)

// AuthValidator implements the Validator interface for the identity requests:
// RegisterRequest, LoginRequest and ProfileUpdateRequest.
//
// It accepts both value and pointer forms and allows optional field-level
// scoping via variadic field name arguments.
type AuthValidator struct {
}

// NewAuthValidator constructs a new AuthValidator and returns it as the
// Validator interface.
func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known request,
// an [Errors] value if any rule failed, and nil otherwise.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ProfileUpdateRequest:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdateRequest:
		return v.validateProfileUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	errs := Errors{}

	if scope(fields, FieldName) {
		checkName(errs, FieldName, req.Name, MaxUserNameLength)
	}
	if scope(fields, FieldEmail) {
		checkEmail(errs, FieldEmail, req.Email)
	}
	if scope(fields, FieldPassword) {
		checkStrongPassword(errs, req.Password, req.PasswordConfirmation)
	}

	return errs.Err()
}

// validateLogin keeps a looser password rule than registration: only the
// minimum length is checked.
func (v *AuthValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	errs := Errors{}

	if scope(fields, FieldEmail) {
		checkEmail(errs, FieldEmail, req.Email)
	}
	if scope(fields, FieldPassword) {
		switch {
		case req.Password == "":
			errs.Add(FieldPassword, RequiredMessage(FieldPassword))
		case length(req.Password) < MinLoginPasswordLen:
			errs.Add(FieldPassword, MinMessage(FieldPassword, MinLoginPasswordLen))
		}
	}

	return errs.Err()
}

// validateProfileUpdate only checks the fields present in the request.
func (v *AuthValidator) validateProfileUpdate(req models.ProfileUpdateRequest, fields ...string) error {
	errs := Errors{}

	if req.Name != nil && scope(fields, FieldName) {
		checkName(errs, FieldName, *req.Name, MaxUserNameLength)
	}
	if req.Email != nil && scope(fields, FieldEmail) {
		checkEmail(errs, FieldEmail, *req.Email)
	}
	if req.Password != nil && scope(fields, FieldPassword) {
		var confirmation string
		if req.PasswordConfirmation != nil {
			confirmation = *req.PasswordConfirmation
		}
		checkStrongPassword(errs, *req.Password, confirmation)
	}

	return errs.Err()
}
