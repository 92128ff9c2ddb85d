package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/example/taskboard/domain/apperror"
	"github.com/gofiber/fiber/v2"
)

// envelope mirrors the API response envelope for the 429 path; the
// limiter sits in front of the handlers, so it writes its own body.
type envelope struct {
	Success bool            `json:"success"`
	Error   *apperror.Error `json:"error,omitempty"`
}

// IPRateLimit returns Fiber middleware limiting requests per client IP.
// Limiter failures fail open: an unreachable Redis must not take the
// auth endpoints down with it.
func (m *Module) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}

		result, err := m.limiter.Allow(c.Context(), ip)
		if err != nil {
			c.Set("X-RateLimit-Error", err.Error())
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.limiter.Limit()))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))

			return c.Status(http.StatusTooManyRequests).JSON(envelope{
				Success: false,
				Error: apperror.New(
					apperror.CodeRateLimited,
					http.StatusTooManyRequests,
					fmt.Sprintf("Too many attempts. Please retry after %d seconds.", retryAfter),
				),
			})
		}

		return c.Next()
	}
}
