package store

import "github.com/MKhiriev/go-agro-keeper/internal/logger"

// Storages groups every repository the services depend on.
type Storages struct {
	UserRepository   UserRepository
	TokenRepository  TokenRepository
	FieldRepository  FieldRepository
	SensorRepository SensorRepository
}

// NewStorages builds all repositories over db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		TokenRepository:  NewTokenRepository(db, log),
		FieldRepository:  NewFieldRepository(db, log),
		SensorRepository: NewSensorRepository(db, log),
	}
}
