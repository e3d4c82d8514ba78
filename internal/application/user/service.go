// Package user provides the application layer for account management:
// registration, login, and the OTP-based password reset flow.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/tasteai/v2/internal/domain/user"
	"github.com/tasteai/v2/internal/infrastructure/security"
	"github.com/tasteai/v2/internal/ports/outbound"
	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// Reset codes rotate every 60 seconds; the secret lives in cache for two
// periods so a code generated at the very end of a period stays verifiable.
const (
	resetCodePeriod  = 60 * time.Second
	resetSecretTTL   = 2 * resetCodePeriod
	resetVerifiedTTL = 5 * time.Minute
)

var resetValidateOpts = totp.ValidateOpts{
	Period:    uint(resetCodePeriod / time.Second),
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// UserService implements account management use cases
type UserService struct {
	userRepo outbound.UserRepository
	cache    outbound.CacheRepository
	email    outbound.EmailSender
	tokens   *security.TokenService
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	cache outbound.CacheRepository,
	email outbound.EmailSender,
	tokens *security.TokenService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    cache,
		email:    email,
		tokens:   tokens,
		logger:   logger.Named("user-service"),
	}
}

// RegisterCommand contains user registration data
type RegisterCommand struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginCommand contains user login data
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// AuthResponse contains authentication response data
type AuthResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int     `json:"expires_in"`
}

// Register creates a new user account and logs it in
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error) {
	s.logger.Info("Registering new user", zap.String("email", cmd.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, strings.ToLower(cmd.Email))
	if err != nil {
		return nil, errors.NewDatabaseError("check email", err)
	}
	if exists {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	entity, err := user.NewUser(cmd.Email, cmd.FirstName, cmd.LastName, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.userRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered", zap.String("user_id", entity.ID().String()))
	return s.authResponse(entity)
}

// Login authenticates a user by email and password
func (s *UserService) Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error) {
	entity, err := s.userRepo.FindByEmail(ctx, strings.ToLower(cmd.Email))
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if entity == nil || !entity.IsActive() {
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := entity.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", cmd.Email))
		return nil, errors.NewInvalidCredentialsError()
	}

	entity.RecordLogin()
	if err := s.userRepo.Update(ctx, entity); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	return s.authResponse(entity)
}

// RequestPasswordReset issues a one-time reset code to the account's email.
// The code rotates on a 60-second period; the backing secret expires shortly
// after, so stale codes stop verifying on their own.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	entity, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return errors.NewDatabaseError("find user", err)
	}
	if entity == nil {
		return errors.NewUserNotFoundError(email)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "TasteAI",
		AccountName: email,
		Period:      uint(resetCodePeriod / time.Second),
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return errors.Wrap(err, "failed to generate reset code")
	}
	code, err := totp.GenerateCodeCustom(key.Secret(), time.Now(), resetValidateOpts)
	if err != nil {
		return errors.Wrap(err, "failed to generate reset code")
	}

	if err := s.cache.Set(ctx, resetSecretKey(email), []byte(key.Secret()), resetSecretTTL); err != nil {
		return errors.Wrap(err, "failed to store reset secret")
	}

	body := fmt.Sprintf("Your password reset code is %s. It will expire in 60 seconds.", code)
	if err := s.email.Send(ctx, email, "Password Reset OTP", body); err != nil {
		return errors.Wrap(err, "failed to send reset email")
	}

	s.logger.Info("Password reset code issued", zap.String("email", email))
	return nil
}

// VerifyResetCode validates a reset code and marks the email as eligible for
// a password update.
func (s *UserService) VerifyResetCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	secret, err := s.cache.Get(ctx, resetSecretKey(email))
	if err != nil {
		return errors.NewOTPExpiredError()
	}

	valid, err := totp.ValidateCustom(code, string(secret), time.Now(), resetValidateOpts)
	if err != nil || !valid {
		return errors.NewInvalidOTPError()
	}

	if err := s.cache.Set(ctx, resetVerifiedKey(email), []byte("1"), resetVerifiedTTL); err != nil {
		return errors.Wrap(err, "failed to record verification")
	}
	_ = s.cache.Delete(ctx, resetSecretKey(email))

	s.logger.Info("Password reset code verified", zap.String("email", email))
	return nil
}

// UpdatePassword sets a new password for an email that verified a reset code
func (s *UserService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	verified, err := s.cache.Exists(ctx, resetVerifiedKey(email))
	if err != nil || !verified {
		return errors.NewUnauthorizedError("password reset not verified")
	}

	entity, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return errors.NewDatabaseError("find user", err)
	}
	if entity == nil {
		return errors.NewUserNotFoundError(email)
	}

	if err := entity.ChangePassword(newPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := s.userRepo.Update(ctx, entity); err != nil {
		return errors.NewDatabaseError("update password", err)
	}
	_ = s.cache.Delete(ctx, resetVerifiedKey(email))

	s.logger.Info("Password updated", zap.String("email", email))
	return nil
}

// authResponse builds the token pair for a logged-in user
func (s *UserService) authResponse(entity *user.User) (*AuthResponse, error) {
	accessToken, expiresIn, err := s.tokens.GenerateAccessToken(entity.ID(), entity.Email())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(entity.ID())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}
	return &AuthResponse{
		User: UserDTO{
			ID:        entity.ID(),
			Email:     entity.Email(),
			FirstName: entity.FirstName(),
			LastName:  entity.LastName(),
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

func resetSecretKey(email string) string {
	return "pwdreset:secret:" + email
}

func resetVerifiedKey(email string) string {
	return "pwdreset:verified:" + email
}
