package api

import (
	"github.com/example/taskboard/domain/apperror"
	"github.com/example/taskboard/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// ClaimsContextKey is the key under which verified claims are stored in
// the Fiber context.
const ClaimsContextKey = "claims"

// AuthMiddleware is the authorization gate for protected routes.
// A missing or malformed header is rejected with UNAUTHORIZED, an
// expired token with TOKEN_EXPIRED and anything else invalid with
// INVALID_TOKEN. On success the decoded claims are attached to the
// request context. There is no session store behind the claims.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.ExtractFromHeader(c.Get("Authorization"))
		if token == "" {
			return respondError(c, apperror.Unauthorized(
				apperror.CodeUnauthorized,
				"Missing authorization token",
			))
		}

		claims, appErr := authPort.ValidateToken(c.UserContext(), token)
		if appErr != nil {
			return respondError(c, appErr)
		}

		c.Locals(ClaimsContextKey, claims)
		return c.Next()
	}
}
