package auth

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the interface other modules use to verify identity tokens.
type AuthPort interface {
	// ValidateToken verifies a bearer token. On failure the returned
	// *apperror.Error carries the distinct unauthorized code.
	ValidateToken(ctx context.Context, token string) (*domain.Claims, *apperror.Error)
}

// AuthAdapter implements AuthPort over the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{container: container}
}

// ValidateToken verifies a bearer token through the auth module.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, *apperror.Error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"validate-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		log.Printf("[auth] validate-token request failed: %v", err)
		return nil, apperror.Internal()
	}

	if !resp.Valid {
		if resp.Error != nil {
			return nil, resp.Error
		}
		return nil, apperror.Unauthorized(apperror.CodeInvalidToken, "Invalid token")
	}

	return resp.Claims, nil
}
