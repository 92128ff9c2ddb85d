package api

import (
	"encoding/json"
	"time"

	"github.com/example/taskboard/domain/apperror"
	"github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// taskCreateBody is the accepted POST /tasks payload.
type taskCreateBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
}

// taskUpdateBody is the accepted PATCH /tasks/:id payload. Nil fields
// are left untouched.
type taskUpdateBody struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        *[]string  `json:"tags"`
}

// CreateTask handles POST /api/v1/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	var body taskCreateBody
	if err := c.BodyParser(&body); err != nil {
		return badJSON(c)
	}

	req := task.CreateTaskRequest{
		UserID:      cl.UserID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
		Tags:        body.Tags,
	}
	var resp task.TaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.taskContainer, "create",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusCreated, resp.Task, "Task created successfully")
}

// ListTasks handles GET /api/v1/tasks with page, limit, status,
// priority and search query parameters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	req := task.ListTasksRequest{
		UserID:   cl.UserID,
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
	var resp task.ListTasksResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.taskContainer, "list",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respondPage(c, fiber.StatusOK, resp.Tasks, resp.Pagination)
}

// GetTask handles GET /api/v1/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	req := task.GetTaskRequest{UserID: cl.UserID, ID: c.Params("id")}
	var resp task.TaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.taskContainer, "get",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusOK, resp.Task, "")
}

// UpdateTask handles PATCH /api/v1/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	var body taskUpdateBody
	if err := c.BodyParser(&body); err != nil {
		return badJSON(c)
	}

	req := task.UpdateTaskRequest{
		UserID:      cl.UserID,
		ID:          c.Params("id"),
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
		Tags:        body.Tags,
	}
	var resp task.TaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.taskContainer, "update",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusOK, resp.Task, "Task updated successfully")
}

// DeleteTask handles DELETE /api/v1/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return respondError(c, apperror.Unauthorized(apperror.CodeUnauthorized, "User not authenticated"))
	}

	req := task.DeleteTaskRequest{UserID: cl.UserID, ID: c.Params("id")}
	var resp task.DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.taskContainer, "delete",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return internalError(c, err)
	}
	if resp.Error != nil {
		return respondError(c, resp.Error)
	}

	return respond(c, fiber.StatusOK, nil, "Task deleted successfully")
}
