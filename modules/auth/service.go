package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/user"
	"github.com/google/uuid"
)

// AccountService orchestrates registration, login and profile access.
// Expected failures are returned as *apperror.Error; anything else is an
// unexpected store failure.
type AccountService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	tokens *TokenService
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *UserRepository, hasher *PasswordHasher, tokens *TokenService) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new account. Email is stored lower-cased; the
// returned user never includes the hash in any serialized form.
func (s *AccountService) Register(_ context.Context, req RegisterRequest) (*domain.User, error) {
	if fieldErrs := ValidateRegisterInput(req); len(fieldErrs) > 0 {
		return nil, apperror.Validation(fieldErrs)
	}

	email := NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	// Email is checked before username so a payload colliding on both
	// reports the email conflict.
	emailTaken, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailTaken {
		return nil, apperror.Conflict(apperror.CodeEmailExists, "User with this email already exists")
	}

	usernameTaken, err := s.repo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if usernameTaken {
		return nil, apperror.Conflict(apperror.CodeUsernameExists, "User with this username already exists")
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password produce the same generic error so the response does not
// reveal which credential was wrong.
func (s *AccountService) Login(_ context.Context, req LoginRequest) (string, *domain.User, error) {
	if fieldErrs := ValidateLoginInput(req); len(fieldErrs) > 0 {
		return "", nil, apperror.Validation(fieldErrs)
	}

	invalidCredentials := apperror.Unauthorized(apperror.CodeInvalidCredentials, "Invalid email or password")

	user, err := s.repo.FindByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, invalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return "", nil, invalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// GetProfile returns the account profile for the given id.
func (s *AccountService) GetProfile(_ context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NotFound(apperror.CodeUserNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. Provided names are
// trimmed; empty-after-trim names are ignored like the absent fields. A
// payload with nothing to apply is a validation failure.
func (s *AccountService) UpdateProfile(_ context.Context, req UpdateProfileRequest) (*domain.User, error) {
	fields := map[string]any{}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) != "" {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) != "" {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.ProfileImage != nil {
		fields["profile_image"] = *req.ProfileImage
	}

	if len(fields) == 0 {
		return nil, apperror.Validation([]apperror.FieldError{
			{Field: "profile", Message: "No valid fields to update"},
		})
	}

	user, err := s.repo.UpdateFields(req.UserID, fields)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NotFound(apperror.CodeUserNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ValidateToken verifies a bearer token and returns its claims. The
// error is always an *apperror.Error with a distinct code per failure
// mode.
func (s *AccountService) ValidateToken(_ context.Context, token string) (*domain.Claims, *apperror.Error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, apperror.Unauthorized(apperror.CodeTokenExpired, "Token has expired. Please log in again.")
		}
		return nil, apperror.Unauthorized(apperror.CodeInvalidToken, "Invalid or malformed token")
	}
	return claims, nil
}
