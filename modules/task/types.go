package task

import (
	"time"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/task"
)

// Request and response types for the task services. Every request
// carries the authenticated account id; all operations are scoped to it.

// TaskView is the outward representation of a task.
type TaskView struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTaskView converts a task entity to its outward representation.
func NewTaskView(t *domain.Task) *TaskView {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &TaskView{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// CreateTaskRequest creates a task for the given owner.
type CreateTaskRequest struct {
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
}

// TaskResponse carries a single task or an expected failure.
type TaskResponse struct {
	Task  *TaskView       `json:"task,omitempty"`
	Error *apperror.Error `json:"error,omitempty"`
}

// ListTasksRequest lists the owner's tasks with paging and filters.
type ListTasksRequest struct {
	UserID   string `json:"userId"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Pagination describes a result page.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// ListTasksResponse carries one page of the owner's tasks.
type ListTasksResponse struct {
	Tasks      []TaskView      `json:"tasks"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Error      *apperror.Error `json:"error,omitempty"`
}

// GetTaskRequest fetches one task by id, scoped to the owner.
type GetTaskRequest struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

// UpdateTaskRequest applies a partial update. Only non-nil fields are
// validated and applied; absent fields are left untouched.
type UpdateTaskRequest struct {
	UserID      string     `json:"userId"`
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
}

// DeleteTaskRequest deletes one task by id, scoped to the owner.
type DeleteTaskRequest struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

// DeleteTaskResponse reports the deletion outcome. Deleting an absent
// task is TASK_NOT_FOUND, including the second delete of the same id.
type DeleteTaskResponse struct {
	Deleted bool            `json:"deleted"`
	Error   *apperror.Error `json:"error,omitempty"`
}
