// Package store implements persistence over database/sql for PostgreSQL
// (pgx) and SQLite (go-sqlite3). Queries are built with squirrel for the
// placeholder format of the connected dialect.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-agro-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with server-assigned fields.
	// Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrRecordNotFound when no user has email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns ErrRecordNotFound when no user has id.
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	// UpdateUser overwrites name, email and password of user.ID.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	// EmailTaken reports whether a user other than exceptID owns email.
	// Pass zero to check against every user.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

// TokenRepository persists issued bearer tokens by their hash.
type TokenRepository interface {
	CreateToken(ctx context.Context, token models.PersonalAccessToken) (models.PersonalAccessToken, error)
	// FindTokenByHash returns ErrRecordNotFound for revoked or unknown tokens.
	FindTokenByHash(ctx context.Context, tokenHash string) (models.PersonalAccessToken, error)
	// DeleteUserTokens revokes every token of userID and returns how many
	// were removed.
	DeleteUserTokens(ctx context.Context, userID int64) (int64, error)
	// DeleteExpiredTokens removes tokens that expired before now.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// ResourceRepository is the CRUD contract shared by every resource table.
type ResourceRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, resource T) (T, error)
	// Get returns ErrRecordNotFound when no row has id.
	Get(ctx context.Context, id int64) (T, error)
	// Update writes every column of resource and returns ErrRecordNotFound
	// when its id matches no row.
	Update(ctx context.Context, resource T) (T, error)
	// Delete returns ErrRecordNotFound when no row has id.
	Delete(ctx context.Context, id int64) error
}

// FieldRepository persists fields.
type FieldRepository interface {
	ResourceRepository[models.Field]
	Exists(ctx context.Context, id int64) (bool, error)
}

// SensorRepository persists sensors.
type SensorRepository interface {
	ResourceRepository[models.Sensor]
	ListByField(ctx context.Context, fieldID int64) ([]models.Sensor, error)
}

// ErrorClassificator inspects driver errors of one dialect.
type ErrorClassificator interface {
	// Classify tells whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// Constraint maps constraint violations to ErrUniqueViolation or
	// ErrForeignKeyViolation and returns nil for any other error.
	Constraint(err error) error
}
