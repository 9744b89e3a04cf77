package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenName is the name given to every token issued on register and
// login.
const DefaultTokenName = "API Token"

// Token wraps a JWT bearer credential with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, jti).
// A Token is only valid while a matching [PersonalAccessToken] row exists,
// so deleting the rows of a user revokes all of their tokens at once.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation (header.payload.signature)
	// handed to the client.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`

	// TokenID is the "jti" claim. It is unique per issued token.
	TokenID string `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// PersonalAccessToken is the persisted record of an issued [Token].
// Only a keyed hash of the signed string is stored.
type PersonalAccessToken struct {
	ID        int64
	UserID    int64
	Name      string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the PersonalAccessToken model.
func (p PersonalAccessToken) TableName() string {
	return "personal_access_tokens"
}

// TokenResponse is the payload returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}
