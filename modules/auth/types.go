package auth

import (
	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/user"
)

// Request and response types for the auth services. Expected domain
// failures (validation, conflicts, bad credentials) ride in the Error
// field so they survive the service container round trip with code and
// field details intact.

// RegisterRequest is a registration payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RegisterResponse carries the public identity of the new account.
type RegisterResponse struct {
	User  *domain.PublicUser `json:"user,omitempty"`
	Error *apperror.Error    `json:"error,omitempty"`
}

// LoginRequest is a login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and public identity.
type LoginResponse struct {
	AccessToken string             `json:"accessToken,omitempty"`
	User        *domain.PublicUser `json:"user,omitempty"`
	Error       *apperror.Error    `json:"error,omitempty"`
}

// LogoutRequest is empty: logout is a stateless acknowledgment.
type LogoutRequest struct{}

// LogoutResponse acknowledges the logout.
type LogoutResponse struct {
	Message string `json:"message"`
}

// ValidateTokenRequest asks for verification of a bearer token.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports the verification outcome. On failure
// Error carries the distinct UNAUTHORIZED/TOKEN_EXPIRED/INVALID_TOKEN
// code for the authorization gate.
type ValidateTokenResponse struct {
	Valid  bool            `json:"valid"`
	Claims *domain.Claims  `json:"claims,omitempty"`
	Error  *apperror.Error `json:"error,omitempty"`
}

// GetProfileRequest asks for the profile of the authenticated account.
type GetProfileRequest struct {
	UserID string `json:"userId"`
}

// UpdateProfileRequest applies a partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	UserID       string  `json:"userId"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// ProfileResponse carries the account profile without credentials.
type ProfileResponse struct {
	Profile *domain.Profile `json:"profile,omitempty"`
	Error   *apperror.Error `json:"error,omitempty"`
}
