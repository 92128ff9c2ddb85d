package auth

import (
	"errors"
	"strings"
	"time"

	domain "github.com/example/taskboard/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails signature or decode
	// checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenConfig holds the immutable token service configuration.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// tokenClaims are the signed claims of an identity token.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bounded identity tokens.
// Tokens are stateless: once issued they remain valid for the full TTL,
// there is no revocation list.
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a TokenService with the given configuration.
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config}
}

// Issue signs a token for the given account with issued-at now and
// expiry now+TTL.
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// Verify checks signature and expiry and returns the decoded claims.
// Expiry is reported as ErrExpiredToken; every other failure (bad
// signature, wrong algorithm, malformed token) as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// TTLSeconds returns the token lifetime in seconds.
func (s *TokenService) TTLSeconds() int64 {
	return int64(s.config.TTL.Seconds())
}

// ExtractFromHeader returns the bearer token from an Authorization
// header value, or "" when the header does not have the exact shape
// "Bearer <token>": a case-sensitive scheme and exactly two
// space-separated parts.
func ExtractFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}
