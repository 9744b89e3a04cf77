// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the go-agro-keeper REST API.
//
// The primary abstraction is [APIAdapter], which hides the transport from the
// command-line client. The package ships an HTTP implementation built on
// resty ([NewHTTPAPIAdapter]).
//
// Error responses are decoded from the response envelope and mapped by
// mapHTTPError to the sentinel values of errors.go, so callers can use
// [errors.Is] (e.g. [ErrUnauthorized] for 401, [ErrValidation] for 422) and
// [errors.As] with [*ValidationError] to read field messages.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-agro-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// APIAdapter covers every route of the API. Implementations attach the
// stored bearer token to authenticated requests.
type APIAdapter interface {
	// SetToken stores the bearer token used by subsequent requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, req models.RegisterRequest) (string, error)

	// Login exchanges credentials for a token and stores it.
	Login(ctx context.Context, req models.LoginRequest) (string, error)

	// Logout revokes every token of the current user and clears the stored one.
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (models.User, error)

	ListFields(ctx context.Context) ([]models.Field, error)
	CreateField(ctx context.Context, req models.FieldRequest) (models.Field, error)
	GetField(ctx context.Context, id int64) (models.Field, error)
	UpdateField(ctx context.Context, id int64, req models.FieldRequest) (models.Field, error)
	DeleteField(ctx context.Context, id int64) error
	GetFieldWithSensors(ctx context.Context, id int64) (models.FieldWithSensors, error)

	ListSensors(ctx context.Context) ([]models.Sensor, error)
	CreateSensor(ctx context.Context, req models.SensorCreateRequest) (models.Sensor, error)
	GetSensor(ctx context.Context, id int64) (models.Sensor, error)
	UpdateSensor(ctx context.Context, id int64, req models.SensorUpdateRequest) (models.Sensor, error)
	DeleteSensor(ctx context.Context, id int64) error

	// Version returns the plain-text server version.
	Version(ctx context.Context) (string, error)
}
