package api

import (
	"github.com/example/taskboard/domain/apperror"
	"github.com/example/taskboard/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Response is the uniform JSON envelope every endpoint uses.
type Response struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Message    string           `json:"message,omitempty"`
	Error      *apperror.Error  `json:"error,omitempty"`
	Pagination *task.Pagination `json:"pagination,omitempty"`
}

// respond writes a success envelope.
func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondPage writes a success envelope with pagination metadata.
func respondPage(c *fiber.Ctx, status int, data any, pagination *task.Pagination) error {
	return c.Status(status).JSON(Response{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// respondError writes a failure envelope with the error's own status.
func respondError(c *fiber.Ctx, appErr *apperror.Error) error {
	return c.Status(appErr.StatusCode).JSON(Response{
		Success: false,
		Error:   appErr,
	})
}

// badJSON is the 400 returned when the request body is not valid JSON.
func badJSON(c *fiber.Ctx) error {
	return respondError(c, apperror.New(
		apperror.CodeValidation,
		fiber.StatusBadRequest,
		"Invalid JSON in request body",
	))
}
