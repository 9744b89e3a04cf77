package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the token lifecycle.
// Passwords are stored as bcrypt hashes; tokens are signed JWTs that are
// only accepted while their keyed hash is present in the TokenRepository.
type authService struct {
	userRepository  store.UserRepository
	tokenRepository store.TokenRepository
	validator       validators.Validator
	ids             IDGenerator

	// tokenHashKey is the HMAC key applied to a signed token before its hash
	// is stored or looked up.
	tokenHashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	passwordHashCost int

	// dummyHash is compared against on login for unknown emails so that both
	// failure paths run bcrypt.
	dummyHash string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	tokenRepository store.TokenRepository,
	ids IDGenerator,
	cfg config.App,
	logger *logger.Logger,
) (AuthService, error) {
	dummyHash, err := utils.HashPassword(ids.Generate(), cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy password hash: %w", err)
	}

	return &authService{
		userRepository:   userRepository,
		tokenRepository:  tokenRepository,
		validator:        validators.NewAuthValidator(),
		ids:              ids,
		tokenHashKey:     cfg.TokenHashKey,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		passwordHashCost: cfg.PasswordHashCost,
		dummyHash:        dummyHash,
		logger:           logger,
	}, nil
}

// Register creates a new user account and issues its first token.
//
// Returns:
//   - a [validators.Errors] value if a rule fails, including an email that
//     is already taken;
//   - a wrapped storage error if persistence fails.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("email", req.Email).Msg("register request is invalid")
		return models.Token{}, err
	}

	taken, err := a.userRepository.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("email uniqueness check failed")
		return models.Token{}, fmt.Errorf("email uniqueness check failed: %w", err)
	}
	if taken {
		return models.Token{}, emailTakenError()
	}

	passwordHash, err := utils.HashPassword(req.Password, a.passwordHashCost)
	if err != nil {
		return models.Token{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: passwordHash,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.Token{}, emailTakenError()
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return a.issueToken(ctx, user)
}

// Login authenticates an existing user and issues a new token.
//
// An unknown email and a wrong password both return ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("email", req.Email).Msg("login request is invalid")
		return models.Token{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrRecordNotFound) {
		utils.ComparePassword(a.dummyHash, req.Password)
		log.Debug().Str("email", req.Email).Msg("login with unknown email")
		return models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.ComparePassword(user.Password, req.Password) {
		log.Debug().Int64("user_id", user.ID).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.issueToken(ctx, user)
}

// Logout revokes every token of user. Calling it again is not an error.
func (a *authService) Logout(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	revoked, err := a.tokenRepository.DeleteUserTokens(ctx, user.ID)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("token revocation failed")
		return fmt.Errorf("token revocation failed: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Int64("revoked", revoked).Msg("user logged out")
	return nil
}

// Authenticate validates tokenString and resolves it to the stored user.
//
// The JWT must carry a valid signature, the configured issuer and an
// unexpired "exp". Its hash must still be stored for the same user.
// Every failure is reported as ErrUnauthenticated.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.User{}, ErrUnauthenticated
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	stored, err := a.tokenRepository.FindTokenByHash(ctx, utils.HashString(tokenString, a.tokenHashKey))
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			log.Err(err).Int64("user_id", token.UserID).Msg("token lookup failed")
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if stored.UserID != token.UserID {
		log.Warn().Int64("user_id", token.UserID).Int64("owner_id", stored.UserID).Msg("token owner mismatch")
		return models.User{}, ErrUnauthenticated
	}
	if !stored.ExpiresAt.IsZero() && time.Now().After(stored.ExpiresAt) {
		return models.User{}, ErrUnauthenticated
	}

	user, err := a.userRepository.FindUserByID(ctx, stored.UserID)
	if err != nil {
		log.Debug().Err(err).Int64("user_id", stored.UserID).Msg("token owner not found")
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return user, nil
}

// PruneExpiredTokens deletes every stored token whose expiry has passed.
func (a *authService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	pruned, err := a.tokenRepository.DeleteExpiredTokens(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error pruning expired tokens: %w", err)
	}
	return pruned, nil
}

// issueToken signs a new JWT for user and stores its hash.
func (a *authService) issueToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.ids.Generate(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	_, err = a.tokenRepository.CreateToken(ctx, models.PersonalAccessToken{
		UserID:    user.ID,
		Name:      models.DefaultTokenName,
		TokenHash: utils.HashString(token.SignedString, a.tokenHashKey),
		ExpiresAt: token.ExpiresAt.Time,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.ID).Msg("error storing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func emailTakenError() error {
	return validators.FieldError(validators.FieldEmail, validators.UniqueMessage(validators.FieldEmail))
}
