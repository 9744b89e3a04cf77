package models

import "time"

// User is an account that can authenticate against the API.
//
// Password always holds a bcrypt hash. It is never serialized, so a User can
// be returned to clients verbatim.
type User struct {
	// ID is the server-assigned primary key.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is unique across all users and is used as the login identifier.
	Email string `json:"email"`

	// Password is the bcrypt hash of the user's password.
	Password string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is the body of POST /profile.
// A nil field is left untouched.
type ProfileUpdateRequest struct {
	Name                 *string `json:"name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Password             *string `json:"password,omitempty"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r ProfileUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil
}
