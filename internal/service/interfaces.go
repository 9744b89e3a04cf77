// Package service holds the business rules of the API: credentials and
// tokens, the user profile and the field and sensor resources.
//
// Every operation receives the acting user or an explicit request DTO;
// nothing is read from ambient request state.
package service

import (
	"context"

	"github.com/MKhiriev/go-agro-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService issues, checks and revokes bearer tokens.
type AuthService interface {
	// Register creates an account and returns its first token.
	Register(ctx context.Context, req models.RegisterRequest) (models.Token, error)
	// Login returns a new token for valid credentials or ErrInvalidCredentials.
	// Previously issued tokens stay valid.
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)
	// Logout revokes every token of user.
	Logout(ctx context.Context, user models.User) error
	// Authenticate resolves a bearer token to its user or ErrUnauthenticated.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
	// PruneExpiredTokens deletes stored tokens that can no longer be used.
	PruneExpiredTokens(ctx context.Context) (int64, error)
}

// ProfileService reads and edits the account of the acting user.
type ProfileService interface {
	GetProfile(ctx context.Context, user models.User) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User, req models.ProfileUpdateRequest) (models.User, error)
}

// ResourceService is the CRUD contract shared by fields and sensors.
// T is the stored model, C the create request and U the update request.
type ResourceService[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, req C) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, id int64, req U) (T, error)
	Delete(ctx context.Context, id int64) error
}

// FieldService manages fields.
type FieldService interface {
	ResourceService[models.Field, models.FieldRequest, models.FieldRequest]
	// GetWithSensors returns the field together with all of its sensors.
	GetWithSensors(ctx context.Context, id int64) (models.FieldWithSensors, error)
}

// SensorService manages sensors.
type SensorService interface {
	ResourceService[models.Sensor, models.SensorCreateRequest, models.SensorUpdateRequest]
}

// AppInfoService exposes build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator produces unique identifiers for issued tokens.
type IDGenerator interface {
	Generate() string
}
