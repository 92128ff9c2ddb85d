package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the task module configuration. Tasks share the account
// database file by default.
type Config struct {
	DBPath string `env:"TASKBOARD_DB_PATH" envDefault:"taskboard.db"`
}

// TaskModule provides owner-scoped task services.
type TaskModule struct {
	config  Config
	db      *gorm.DB
	service *TaskService
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	return &TaskModule{}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Start opens the database and builds the task service.
func (m *TaskModule) Start(_ context.Context) error {
	if err := env.Parse(&m.config); err != nil {
		return fmt.Errorf("failed to parse task config: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewTaskRepository(db))

	log.Printf("[task] Module started (database: %s)", m.config.DBPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.config.DBPath,
		},
	}
}

// RegisterServices registers the task request-reply services.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		}},
		{"list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.handleList)
		}},
		{"get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		}},
		{"update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.handleUpdate)
		}},
		{"delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[task] Registered services: create, list, get, update, delete")
	return nil
}

// handleCreate handles task creation.
func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	created, err := m.service.Create(ctx, req)
	if err != nil {
		return m.taskError(err)
	}
	return TaskResponse{Task: NewTaskView(created)}, nil
}

// handleList handles filtered, paginated listing.
func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, pagination, err := m.service.List(ctx, req)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return ListTasksResponse{Error: appErr}, nil
		}
		return ListTasksResponse{}, err
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, *NewTaskView(t))
	}
	return ListTasksResponse{Tasks: views, Pagination: &pagination}, nil
}

// handleGet handles a single task fetch.
func (m *TaskModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	found, err := m.service.Get(ctx, req)
	if err != nil {
		return m.taskError(err)
	}
	return TaskResponse{Task: NewTaskView(found)}, nil
}

// handleUpdate handles a partial task update.
func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	updated, err := m.service.Update(ctx, req)
	if err != nil {
		return m.taskError(err)
	}
	return TaskResponse{Task: NewTaskView(updated)}, nil
}

// handleDelete handles a task deletion.
func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req); err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return DeleteTaskResponse{Deleted: false, Error: appErr}, nil
		}
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

// taskError converts an expected failure into a response and lets
// unexpected store failures propagate as transport errors.
func (m *TaskModule) taskError(err error) (TaskResponse, error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return TaskResponse{Error: appErr}, nil
	}
	return TaskResponse{}, err
}
