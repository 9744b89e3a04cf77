package service

import (
	"fmt"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/models"
)

type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
	FieldService   FieldService
	SensorService  SensorService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, storages.TokenRepository, utils.NewUUIDGenerator(), cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    authService,
		ProfileService: NewProfileService(storages.UserRepository, cfg.App, logger),
		FieldService:   NewFieldService(storages.FieldRepository, storages.SensorRepository, logger),
		SensorService:  NewSensorService(storages.SensorRepository, storages.FieldRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
