package api

import (
	"encoding/json"

	"github.com/example/taskboard/domain/apperror"
	"github.com/example/taskboard/modules/auth"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// profileUpdateBody is the accepted PATCH /profile payload. Nil fields
// are left untouched.
type profileUpdateBody struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
}

// GetProfile handles GET /api/v1/profile.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	req := auth.GetProfileRequest{UserID: cl.UserID}
	var resp auth.ProfileResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "get-profile",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusOK, resp.Profile, "")
}

// UpdateProfile handles PATCH /api/v1/profile.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	var body profileUpdateBody
	if err := c.BodyParser(&body); err != nil {
		return badJSON(c)
	}

	req := auth.UpdateProfileRequest{
		UserID:       cl.UserID,
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		ProfileImage: body.ProfileImage,
	}
	var resp auth.ProfileResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "update-profile",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusOK, resp.Profile, "Profile updated successfully")
}
