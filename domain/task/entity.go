package task

import (
	"time"
)

// Task status values.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the three task priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a task owned by exactly one user. The owner reference
// is immutable after creation. Tags are stored as a JSON array column,
// preserving order and duplicates.
type Task struct {
	ID          string `gorm:"primaryKey;type:text"`
	UserID      string `gorm:"index;not null;type:text"`
	Title       string `gorm:"not null;size:200"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"not null;default:todo;index"`
	Priority    string `gorm:"not null;default:medium;index"`
	DueDate     *time.Time
	Tags        []string  `gorm:"serializer:json;type:text"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
