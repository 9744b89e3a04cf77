package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
)

type profileService struct {
	userRepository   store.UserRepository
	validator        validators.Validator
	passwordHashCost int

	logger *logger.Logger
}

func NewProfileService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository:   userRepository,
		validator:        validators.NewAuthValidator(),
		passwordHashCost: cfg.PasswordHashCost,
		logger:           logger,
	}
}

// GetProfile returns the stored record of user.
func (p *profileService) GetProfile(ctx context.Context, user models.User) (models.User, error) {
	current, err := p.userRepository.FindUserByID(ctx, user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("error reading profile: %w", err)
	}
	return current, nil
}

// UpdateProfile applies the supplied fields of req to user.
//
// The email must stay unique among the other users; a new password is
// re-hashed before it is stored. An empty request returns the current record.
func (p *profileService) UpdateProfile(ctx context.Context, user models.User, req models.ProfileUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := p.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Int64("user_id", user.ID).Msg("profile update request is invalid")
		return models.User{}, err
	}

	current, err := p.userRepository.FindUserByID(ctx, user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("error reading profile: %w", err)
	}
	if req.IsEmpty() {
		return current, nil
	}

	if req.Email != nil {
		taken, err := p.userRepository.EmailTaken(ctx, *req.Email, current.ID)
		if err != nil {
			log.Err(err).Int64("user_id", current.ID).Msg("email uniqueness check failed")
			return models.User{}, fmt.Errorf("email uniqueness check failed: %w", err)
		}
		if taken {
			return models.User{}, emailTakenError()
		}
		current.Email = *req.Email
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Password != nil {
		current.Password, err = utils.HashPassword(*req.Password, p.passwordHashCost)
		if err != nil {
			return models.User{}, err
		}
	}

	updated, err := p.userRepository.UpdateUser(ctx, current)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, emailTakenError()
	}
	if err != nil {
		log.Err(err).Int64("user_id", current.ID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	log.Info().Int64("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}
