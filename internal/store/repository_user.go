package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// userRepository is the database/sql implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// Inserts, lookups by id and updates go through the generic resource
// repository; email lookups are specific to users.
type userRepository struct {
	*resourceRepository[models.User]
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		resourceRepository: newResourceRepository(db, usersTable, logger),
		db:                 db,
		logger:             logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt, UpdatedAt).
//
// A unique violation on email is reported as [ErrEmailAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := r.Create(ctx, user)
	if errors.Is(err, ErrUniqueViolation) {
		return models.User{}, ErrEmailAlreadyExists
	}
	return created, err
}

// FindUserByID retrieves the user with id.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.Get(ctx, id)
}

// UpdateUser overwrites the name, email and password hash of user.ID.
//
// A unique violation on email is reported as [ErrEmailAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	updated, err := r.Update(ctx, user)
	if errors.Is(err, ErrUniqueViolation) {
		return models.User{}, ErrEmailAlreadyExists
	}
	return updated, err
}

// FindUserByEmail retrieves the user whose email matches exactly.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(usersTable.selectColumns()...).
		From(usersTable.name).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundUser models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return usersTable.scan(r.db.QueryRowContext(ctx, query, args...), &foundUser)
	})
	if err != nil {
		mapped := r.db.mapError(err, ErrExecutingQuery)
		if !errors.Is(mapped, ErrRecordNotFound) {
			log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error selecting user")
		}
		return models.User{}, mapped
	}

	return foundUser, nil
}

// EmailTaken reports whether a user other than exceptID owns email.
func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	log := logger.FromContext(ctx)

	where := sq.And{sq.Eq{"email": email}}
	if exceptID != 0 {
		where = append(where, sq.NotEq{"id": exceptID})
	}

	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From(usersTable.name).
		Where(where).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.EmailTaken").Msg("error counting users by email")
		return false, r.db.mapError(err, ErrExecutingQuery)
	}

	return count > 0, nil
}
