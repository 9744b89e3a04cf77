// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// tokenRepository stores issued tokens in "personal_access_tokens".
type tokenRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTokenRepository constructs a [TokenRepository] backed by db.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

var tokensTable = models.PersonalAccessToken{}.TableName()

// CreateToken inserts token and returns the stored row.
func (r *tokenRepository) CreateToken(ctx context.Context, token models.PersonalAccessToken) (models.PersonalAccessToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(tokensTable).
		Columns("user_id", "name", "token_hash", "expires_at", "created_at").
		Values(token.UserID, token.Name, token.TokenHash, token.ExpiresAt.UTC(), time.Now().UTC()).
		Suffix("RETURNING " + strings.Join(tokenColumns, ", ")).
		ToSql()
	if err != nil {
		return models.PersonalAccessToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.PersonalAccessToken
	if err := scanToken(r.db.QueryRowContext(ctx, query, args...), &created); err != nil {
		log.Err(err).Str("func", "*tokenRepository.CreateToken").Msg("error inserting token")
		return models.PersonalAccessToken{}, r.db.mapError(err, ErrExecutingStatement)
	}

	return created, nil
}

// FindTokenByHash returns the stored token with tokenHash.
func (r *tokenRepository) FindTokenByHash(ctx context.Context, tokenHash string) (models.PersonalAccessToken, error) {
	query, args, err := r.db.builder.
		Select(tokenColumns...).
		From(tokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return models.PersonalAccessToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.PersonalAccessToken
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return scanToken(r.db.QueryRowContext(ctx, query, args...), &found)
	})
	if err != nil {
		return models.PersonalAccessToken{}, r.db.mapError(err, ErrExecutingQuery)
	}

	return found, nil
}

// DeleteUserTokens removes every token of userID.
func (r *tokenRepository) DeleteUserTokens(ctx context.Context, userID int64) (int64, error) {
	return r.delete(ctx, "*tokenRepository.DeleteUserTokens", sq.Eq{"user_id": userID})
}

// DeleteExpiredTokens removes tokens whose expires_at is before now.
func (r *tokenRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.delete(ctx, "*tokenRepository.DeleteExpiredTokens", sq.Lt{"expires_at": now.UTC()})
}

func (r *tokenRepository) delete(ctx context.Context, fn string, where sq.Sqlizer) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(tokensTable).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error deleting tokens")
		return 0, r.db.mapError(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
