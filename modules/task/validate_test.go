package task

import (
	"strings"
	"testing"
)

func TestValidateNewTask(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateTaskRequest
		wantErrs []string
	}{
		{
			name:     "valid minimal",
			req:      CreateTaskRequest{Title: "buy milk"},
			wantErrs: nil,
		},
		{
			name:     "valid with status and priority",
			req:      CreateTaskRequest{Title: "buy milk", Status: "in_progress", Priority: "high"},
			wantErrs: nil,
		},
		{
			name:     "missing title",
			req:      CreateTaskRequest{Title: "   "},
			wantErrs: []string{"title"},
		},
		{
			name:     "title too long",
			req:      CreateTaskRequest{Title: strings.Repeat("a", 201)},
			wantErrs: []string{"title"},
		},
		{
			name:     "invalid status",
			req:      CreateTaskRequest{Title: "ok", Status: "done"},
			wantErrs: []string{"status"},
		},
		{
			name:     "invalid priority",
			req:      CreateTaskRequest{Title: "ok", Priority: "urgent"},
			wantErrs: []string{"priority"},
		},
		{
			name:     "multiple errors",
			req:      CreateTaskRequest{Status: "done", Priority: "urgent"},
			wantErrs: []string{"title", "status", "priority"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateNewTask(tt.req)
			if len(errs) != len(tt.wantErrs) {
				t.Fatalf("ValidateNewTask() returned %d errors, want %d: %v", len(errs), len(tt.wantErrs), errs)
			}
			for i, field := range tt.wantErrs {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateTaskPatch(t *testing.T) {
	empty := ""
	long := strings.Repeat("a", 201)
	badStatus := "done"
	goodStatus := "completed"
	badPriority := "urgent"

	tests := []struct {
		name     string
		req      UpdateTaskRequest
		wantErrs []string
	}{
		{
			name:     "all absent is valid",
			req:      UpdateTaskRequest{},
			wantErrs: nil,
		},
		{
			name:     "valid status",
			req:      UpdateTaskRequest{Status: &goodStatus},
			wantErrs: nil,
		},
		{
			name:     "present empty title",
			req:      UpdateTaskRequest{Title: &empty},
			wantErrs: []string{"title"},
		},
		{
			name:     "present long title",
			req:      UpdateTaskRequest{Title: &long},
			wantErrs: []string{"title"},
		},
		{
			name:     "present invalid status",
			req:      UpdateTaskRequest{Status: &badStatus},
			wantErrs: []string{"status"},
		},
		{
			name:     "present invalid priority",
			req:      UpdateTaskRequest{Priority: &badPriority},
			wantErrs: []string{"priority"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTaskPatch(tt.req)
			if len(errs) != len(tt.wantErrs) {
				t.Fatalf("ValidateTaskPatch() returned %d errors, want %d: %v", len(errs), len(tt.wantErrs), errs)
			}
			for i, field := range tt.wantErrs {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}
