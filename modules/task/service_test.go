package task

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/task"
)

func setupTaskService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(setupTestRepo(t))
}

func taskErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want *apperror.Error", err)
	}
	return appErr.Code
}

func TestTaskService_CreateDefaults(t *testing.T) {
	service := setupTaskService(t)

	task, err := service.Create(context.Background(), CreateTaskRequest{
		UserID: "owner-a",
		Title:  "  buy milk  ",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.ID == "" {
		t.Error("Create() task.ID is empty")
	}
	if task.Title != "buy milk" {
		t.Errorf("Title = %q, want sanitized %q", task.Title, "buy milk")
	}
	if task.Status != domain.StatusTodo {
		t.Errorf("Status = %q, want default %q", task.Status, domain.StatusTodo)
	}
	if task.Priority != domain.PriorityMedium {
		t.Errorf("Priority = %q, want default %q", task.Priority, domain.PriorityMedium)
	}
	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", task.DueDate)
	}
	if len(task.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", task.Tags)
	}
}

func TestTaskService_CreateSanitizesTags(t *testing.T) {
	service := setupTaskService(t)

	task, err := service.Create(context.Background(), CreateTaskRequest{
		UserID: "owner-a",
		Title:  "tagged",
		Tags:   []string{"<work>", "home", "  ", "home"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	want := []string{"work", "home", "home"}
	if !reflect.DeepEqual(task.Tags, want) {
		t.Errorf("Tags = %v, want %v", task.Tags, want)
	}
}

func TestTaskService_CreateInvalid(t *testing.T) {
	service := setupTaskService(t)

	_, err := service.Create(context.Background(), CreateTaskRequest{
		UserID: "owner-a",
		Status: "done",
	})
	if code := taskErrorCode(t, err); code != apperror.CodeValidation {
		t.Errorf("error code = %q, want %q", code, apperror.CodeValidation)
	}
}

func TestTaskService_ListClamping(t *testing.T) {
	service := setupTaskService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if _, err := service.Create(ctx, CreateTaskRequest{UserID: "owner-a", Title: "t"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
		wantLen   int
		wantPages int
	}{
		{"defaults", 0, 0, 1, 10, 10, 2},
		{"negative page", -3, 0, 1, 10, 10, 2},
		{"second page", 2, 10, 2, 10, 5, 2},
		{"limit above cap", 1, 500, 1, 100, 15, 1},
		{"small limit", 1, 4, 1, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, page, err := service.List(ctx, ListTasksRequest{
				UserID: "owner-a",
				Page:   tt.page,
				Limit:  tt.limit,
			})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if page.Total != 15 {
				t.Errorf("Total = %d, want 15", page.Total)
			}
			if page.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", page.Page, tt.wantPage)
			}
			if page.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", page.Limit, tt.wantLimit)
			}
			if page.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", page.Pages, tt.wantPages)
			}
			if len(tasks) != tt.wantLen {
				t.Errorf("List() = %d tasks, want %d", len(tasks), tt.wantLen)
			}
		})
	}
}

func TestTaskService_ListEmpty(t *testing.T) {
	service := setupTaskService(t)

	tasks, page, err := service.List(context.Background(), ListTasksRequest{UserID: "nobody"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 0 || page.Total != 0 || page.Pages != 0 {
		t.Errorf("List() = %d tasks, total %d, pages %d, want all zero", len(tasks), page.Total, page.Pages)
	}
}

func TestTaskService_UpdatePartial(t *testing.T) {
	service := setupTaskService(t)
	ctx := context.Background()

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	created, err := service.Create(ctx, CreateTaskRequest{
		UserID:      "owner-a",
		Title:       "original",
		Description: "keep me",
		Priority:    domain.PriorityHigh,
		DueDate:     &due,
		Tags:        []string{"keep"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newStatus := domain.StatusCompleted
	updated, err := service.Update(ctx, UpdateTaskRequest{
		UserID: "owner-a",
		ID:     created.ID,
		Status: &newStatus,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != domain.StatusCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, domain.StatusCompleted)
	}
	if updated.Title != "original" {
		t.Errorf("Title = %q, want untouched %q", updated.Title, "original")
	}
	if updated.Description != "keep me" {
		t.Errorf("Description = %q, want untouched %q", updated.Description, "keep me")
	}
	if updated.Priority != domain.PriorityHigh {
		t.Errorf("Priority = %q, want untouched %q", updated.Priority, domain.PriorityHigh)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"keep"}) {
		t.Errorf("Tags = %v, want untouched %v", updated.Tags, []string{"keep"})
	}
}

func TestTaskService_UpdateTags(t *testing.T) {
	service := setupTaskService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateTaskRequest{
		UserID: "owner-a",
		Title:  "tagged",
		Tags:   []string{"old"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTags := []string{"<new>", "fresh"}
	updated, err := service.Update(ctx, UpdateTaskRequest{
		UserID: "owner-a",
		ID:     created.ID,
		Tags:   &newTags,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	want := []string{"new", "fresh"}
	if !reflect.DeepEqual(updated.Tags, want) {
		t.Errorf("Tags = %v, want %v", updated.Tags, want)
	}

	// The serialized column must round-trip through a fresh read.
	got, err := service.Get(ctx, GetTaskRequest{UserID: "owner-a", ID: created.ID})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("Get() Tags = %v, want %v", got.Tags, want)
	}
}

func TestTaskService_UpdateEmptyPatch(t *testing.T) {
	service := setupTaskService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateTaskRequest{UserID: "owner-a", Title: "untouched"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// An empty patch reads back the current row.
	got, err := service.Update(ctx, UpdateTaskRequest{UserID: "owner-a", ID: created.ID})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Title != "untouched" {
		t.Errorf("Title = %q, want %q", got.Title, "untouched")
	}
}

func TestTaskService_UpdateInvalidPatch(t *testing.T) {
	service := setupTaskService(t)

	bad := "done"
	_, err := service.Update(context.Background(), UpdateTaskRequest{
		UserID: "owner-a",
		ID:     "any",
		Status: &bad,
	})
	if code := taskErrorCode(t, err); code != apperror.CodeValidation {
		t.Errorf("error code = %q, want %q", code, apperror.CodeValidation)
	}
}

func TestTaskService_NotFound(t *testing.T) {
	service := setupTaskService(t)
	ctx := context.Background()

	if _, err := service.Get(ctx, GetTaskRequest{UserID: "owner-a", ID: "missing"}); taskErrorCode(t, err) != apperror.CodeTaskNotFound {
		t.Errorf("Get(missing) error = %v, want code %q", err, apperror.CodeTaskNotFound)
	}

	title := "new title"
	if _, err := service.Update(ctx, UpdateTaskRequest{UserID: "owner-a", ID: "missing", Title: &title}); taskErrorCode(t, err) != apperror.CodeTaskNotFound {
		t.Errorf("Update(missing) error = %v, want code %q", err, apperror.CodeTaskNotFound)
	}

	if err := service.Delete(ctx, DeleteTaskRequest{UserID: "owner-a", ID: "missing"}); taskErrorCode(t, err) != apperror.CodeTaskNotFound {
		t.Errorf("Delete(missing) error = %v, want code %q", err, apperror.CodeTaskNotFound)
	}
}

func TestTaskService_DeleteThenGone(t *testing.T) {
	service := setupTaskService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateTaskRequest{UserID: "owner-a", Title: "doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := service.Delete(ctx, DeleteTaskRequest{UserID: "owner-a", ID: created.ID}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := service.Delete(ctx, DeleteTaskRequest{UserID: "owner-a", ID: created.ID}); taskErrorCode(t, err) != apperror.CodeTaskNotFound {
		t.Errorf("second Delete() error = %v, want code %q", err, apperror.CodeTaskNotFound)
	}
}
