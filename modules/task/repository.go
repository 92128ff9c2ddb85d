package task

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/taskboard/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task matches the id within the
// owner's scope. A task owned by someone else is indistinguishable from
// one that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// ListFilter narrows and pages a task listing. Callers pass already
// clamped page/limit values.
type ListFilter struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// TaskRepository handles task persistence using GORM. Every query is
// scoped by owner id; mutations are single atomic owner-scoped
// statements, so isolation is delegated entirely to the store.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by id within the owner's scope.
func (r *TaskRepository) FindByID(ownerID, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// List returns one page of the owner's tasks, newest first, plus the
// total count matching the filter.
func (r *TaskRepository) List(ownerID string, filter ListFilter) ([]*domain.Task, int64, error) {
	query := r.db.Model(&domain.Task{}).Where("user_id = ?", ownerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		like := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("(title LIKE ? ESCAPE '\\' OR description LIKE ? ESCAPE '\\')", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	var tasks []*domain.Task
	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateFields applies a partial update as a single atomic owner-scoped
// UPDATE and returns the fresh row.
func (r *TaskRepository) UpdateFields(ownerID, id string, fields map[string]any) (*domain.Task, error) {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}
	return r.FindByID(ownerID, id)
}

// Delete removes a task within the owner's scope. Deleting an absent
// task reports ErrTaskNotFound, so a repeated delete fails the same way.
func (r *TaskRepository) Delete(ownerID, id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// escapeLike escapes LIKE wildcards in user-provided search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
