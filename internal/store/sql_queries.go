package store

import (
	"strings"

	"github.com/MKhiriev/go-agro-keeper/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// table describes how a model maps onto a table with an "id" primary key
// and "created_at"/"updated_at" timestamps.
type table[T any] struct {
	name string
	// columns are the writable columns, in the order returned by values.
	columns []string
	values  func(T) []any
	id      func(T) int64
	// scan reads a row selected with selectColumns.
	scan func(rowScanner, *T) error
}

// selectColumns returns id, the writable columns and the timestamps.
func (t table[T]) selectColumns() []string {
	cols := make([]string, 0, len(t.columns)+3)
	cols = append(cols, "id")
	cols = append(cols, t.columns...)
	return append(cols, "created_at", "updated_at")
}

// returning is the RETURNING clause that yields a full row.
func (t table[T]) returning() string {
	return "RETURNING " + strings.Join(t.selectColumns(), ", ")
}

var usersTable = table[models.User]{
	name:    models.User{}.TableName(),
	columns: []string{"name", "email", "password"},
	values: func(u models.User) []any {
		return []any{u.Name, u.Email, u.Password}
	},
	id: func(u models.User) int64 { return u.ID },
	scan: func(s rowScanner, u *models.User) error {
		return s.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	},
}

var fieldsTable = table[models.Field]{
	name:    models.Field{}.TableName(),
	columns: []string{"name"},
	values: func(f models.Field) []any {
		return []any{f.Name}
	},
	id: func(f models.Field) int64 { return f.ID },
	scan: func(s rowScanner, f *models.Field) error {
		return s.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	},
}

var sensorsTable = table[models.Sensor]{
	name:    models.Sensor{}.TableName(),
	columns: []string{"name", "lat", "lng", "status", "field_id"},
	values: func(s models.Sensor) []any {
		return []any{s.Name, s.Lat, s.Lng, s.Status, s.FieldID}
	},
	id: func(s models.Sensor) int64 { return s.ID },
	scan: func(r rowScanner, s *models.Sensor) error {
		return r.Scan(&s.ID, &s.Name, &s.Lat, &s.Lng, &s.Status, &s.FieldID, &s.CreatedAt, &s.UpdatedAt)
	},
}

// personal_access_tokens has no updated_at, so it is queried directly.
var tokenColumns = []string{"id", "user_id", "name", "token_hash", "expires_at", "created_at"}

func scanToken(s rowScanner, t *models.PersonalAccessToken) error {
	return s.Scan(&t.ID, &t.UserID, &t.Name, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
}
