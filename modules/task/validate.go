package task

import (
	"strings"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/task"
)

const maxTitleLen = 200

func validateTitle(title string) *apperror.FieldError {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return &apperror.FieldError{Field: "title", Message: "Task title is required"}
	}
	if len(trimmed) > maxTitleLen {
		return &apperror.FieldError{Field: "title", Message: "Task title must be at most 200 characters"}
	}
	return nil
}

// ValidateNewTask checks a create payload and returns the ordered list
// of field errors. Omitted status/priority are valid (defaults apply).
func ValidateNewTask(req CreateTaskRequest) []apperror.FieldError {
	var errs []apperror.FieldError

	if fieldErr := validateTitle(req.Title); fieldErr != nil {
		errs = append(errs, *fieldErr)
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		errs = append(errs, apperror.FieldError{Field: "status", Message: "Invalid status value"})
	}
	if req.Priority != "" && !domain.ValidPriority(req.Priority) {
		errs = append(errs, apperror.FieldError{Field: "priority", Message: "Invalid priority value"})
	}

	return errs
}

// ValidateTaskPatch checks a partial update. Only fields present in the
// payload are validated; an absent field can never block the patch.
func ValidateTaskPatch(req UpdateTaskRequest) []apperror.FieldError {
	var errs []apperror.FieldError

	if req.Title != nil {
		if fieldErr := validateTitle(*req.Title); fieldErr != nil {
			errs = append(errs, *fieldErr)
		}
	}
	if req.Status != nil && !domain.ValidStatus(*req.Status) {
		errs = append(errs, apperror.FieldError{Field: "status", Message: "Invalid status value"})
	}
	if req.Priority != nil && !domain.ValidPriority(*req.Priority) {
		errs = append(errs, apperror.FieldError{Field: "priority", Message: "Invalid priority value"})
	}

	return errs
}
