package api

import (
	"encoding/json"
	"log"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer mono.ServiceContainer) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		taskContainer: taskContainer,
	}
}

// claims returns the verified claims attached by the auth middleware.
func claims(c *fiber.Ctx) (*domain.Claims, bool) {
	cl, ok := c.Locals(ClaimsContextKey).(*domain.Claims)
	return cl, ok && cl != nil
}

// internalError logs the unexpected failure and writes a generic 500.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return respondError(c, apperror.Internal())
}

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	var resp auth.RegisterResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusCreated, resp.User, "User registered successfully")
}

// loginData is the payload of a successful login.
type loginData struct {
	AccessToken string             `json:"accessToken"`
	User        *domain.PublicUser `json:"user"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	var resp auth.LoginResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusOK, loginData{
		AccessToken: resp.AccessToken,
		User:        resp.User,
	}, "Login successful")
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so the
// contract is only that the client discards its token.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	req := auth.LogoutRequest{}
	var resp auth.LogoutResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "logout",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}

	return respond(c, fiber.StatusOK, nil, resp.Message)
}
