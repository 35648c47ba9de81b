package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
	// bcrypt only reads this many bytes of the password.
	bcryptMaxBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements registration and credential verification.
type AuthService struct {
	repo     ports.CredentialStore
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthService(repo ports.CredentialStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		validate: validator.New(),
		log:      log.With().Str("component", "authenticator").Logger(),
	}
}

// Register validates the sign-up form, stopping at the first problem, then
// stores a new non-member user with a bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	if err := s.validateRegistration(ctx, in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(in.Password), bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("hash password", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		IsAdmin:      in.RequestedAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, domain.NewInternalError("create user", err)
	}

	s.log.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Bool("is_admin", created.IsAdmin).
		Msg("user registered")

	return created.Identity(), nil
}

func (s *AuthService) validateRegistration(ctx context.Context, in ports.RegisterInput) error {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return domain.NewValidationError(lowerFirst(ve[0].Field()), "all fields are required")
		}
		return domain.NewInternalError("validate registration", err)
	}
	if in.Password != in.ConfirmPassword {
		return domain.NewValidationError("confirmPassword", "passwords do not match")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return domain.NewValidationError("password", "password must be at least 6 characters long")
	}
	if !emailPattern.MatchString(in.Email) {
		return domain.NewValidationError("email", "invalid email format")
	}

	taken, err := s.identityTaken(ctx, in.Email, in.Username)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUserExists
	}
	return nil
}

// bcryptInput truncates the password to the bytes bcrypt hashes, so long
// passwords register and verify instead of failing with ErrPasswordTooLong.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxBytes {
		b = b[:bcryptMaxBytes]
	}
	return b
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func (s *AuthService) identityTaken(ctx context.Context, email, username string) (bool, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, domain.NewInternalError("find user by email", err)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return false, domain.NewInternalError("find user by username", err)
	}
	return false, nil
}

// Verify checks an email/password pair. Every verification failure returns
// an *domain.AuthFailure with the same message; the reason is only logged.
func (s *AuthService) Verify(ctx context.Context, email, secret string) (*domain.Identity, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.fail(domain.UnknownIdentifier, email)
		}
		return nil, domain.NewInternalError("find user by email", err)
	}

	if user.PasswordHash == "" {
		s.log.Error().Int64("user_id", user.ID).Msg("stored user has no password hash")
		return nil, s.fail(domain.MissingCredentialMaterial, email)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(secret)) != nil {
		return nil, s.fail(domain.IncorrectSecret, email)
	}

	return user.Identity(), nil
}

func (s *AuthService) fail(reason domain.AuthFailureReason, email string) error {
	s.log.Warn().Str("reason", string(reason)).Str("email", email).Msg("authentication failed")
	return &domain.AuthFailure{Reason: reason}
}
