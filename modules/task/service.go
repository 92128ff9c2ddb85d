package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/task"
	"github.com/google/uuid"
)

// Listing bounds and defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// TaskService implements owner-scoped task CRUD and listing. Expected
// failures are returned as *apperror.Error; anything else is an
// unexpected store failure.
type TaskService struct {
	repo *TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create validates and sanitizes the payload and persists a task owned
// by the requesting account, with todo/medium defaults for omitted
// status and priority.
func (s *TaskService) Create(_ context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if fieldErrs := ValidateNewTask(req); len(fieldErrs) > 0 {
		return nil, apperror.Validation(fieldErrs)
	}

	status := req.Status
	if status == "" {
		status = domain.StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Title:       SanitizeString(req.Title),
		Description: SanitizeString(req.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		Tags:        SanitizeTags(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns one page of the owner's tasks. Page defaults to 1, limit
// to 10 clamped into 1..100; filters are exact matches and search is a
// substring match over title and description.
func (s *TaskService) List(_ context.Context, req ListTasksRequest) ([]*domain.Task, Pagination, error) {
	page := req.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	filter := ListFilter{
		Status:   req.Status,
		Priority: req.Priority,
		Search:   strings.TrimSpace(req.Search),
		Page:     page,
		Limit:    limit,
	}

	tasks, total, err := s.repo.List(req.UserID, filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	pagination := Pagination{
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}
	return tasks, pagination, nil
}

// Get fetches one task within the owner's scope.
func (s *TaskService) Get(_ context.Context, req GetTaskRequest) (*domain.Task, error) {
	task, err := s.repo.FindByID(req.UserID, req.ID)
	if err != nil {
		return nil, s.notFoundOr(err)
	}
	return task, nil
}

// Update applies a partial update within the owner's scope. Only fields
// present in the payload are validated and written; the owner reference
// is never touched.
func (s *TaskService) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	if fieldErrs := ValidateTaskPatch(req); len(fieldErrs) > 0 {
		return nil, apperror.Validation(fieldErrs)
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = SanitizeString(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = SanitizeString(*req.Description)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.Tags != nil {
		// Map-based updates bypass GORM's field serializer, so encode
		// the JSON column value directly.
		encoded, err := json.Marshal(SanitizeTags(*req.Tags))
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags: %w", err)
		}
		fields["tags"] = string(encoded)
	}

	if len(fields) == 0 {
		// Nothing to write; treat as a read so the caller still gets
		// the current row or a not-found.
		return s.Get(ctx, GetTaskRequest{UserID: req.UserID, ID: req.ID})
	}
	fields["updated_at"] = time.Now()

	task, err := s.repo.UpdateFields(req.UserID, req.ID, fields)
	if err != nil {
		return nil, s.notFoundOr(err)
	}
	return task, nil
}

// Delete removes a task within the owner's scope. A second delete of the
// same id fails with TASK_NOT_FOUND, not an internal error.
func (s *TaskService) Delete(_ context.Context, req DeleteTaskRequest) error {
	if err := s.repo.Delete(req.UserID, req.ID); err != nil {
		return s.notFoundOr(err)
	}
	return nil
}

func (s *TaskService) notFoundOr(err error) error {
	if errors.Is(err, ErrTaskNotFound) {
		return apperror.NotFound(apperror.CodeTaskNotFound, "Task not found")
	}
	return fmt.Errorf("task store failure: %w", err)
}
