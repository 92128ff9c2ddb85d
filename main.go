// Taskboard - a multi-tenant task management API.
//
// This application showcases:
// - JWT-based stateless authentication with bcrypt password storage
// - Per-user task CRUD with filtering, search and pagination
// - GORM with SQLite for persistence
// - Optional Redis-backed sliding window rate limiting on auth endpoints
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/taskboard/modules/api"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/ratelimit"
	"github.com/example/taskboard/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Taskboard - Task Management API ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	authModule := auth.NewModule()
	taskModule := task.NewModule()
	apiModule := api.NewModule()

	// Register modules (dependencies before dependents)
	app.Register(authModule)
	app.Register(taskModule)

	// The rate limiter is optional: it only runs when Redis is
	// configured.
	if os.Getenv("REDIS_ADDR") != "" {
		rateLimitModule := ratelimit.NewModule()
		apiModule.SetRateLimitModule(rateLimitModule)
		app.Register(rateLimitModule)
	} else {
		log.Println("REDIS_ADDR not set, auth endpoint rate limiting disabled")
	}

	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber")
	log.Println("  - Auth: JWT (HS256) + bcrypt")
	log.Println("  - Storage: GORM + SQLite")
	log.Println("")
	log.Println("REST API Endpoints:")
	log.Println("  GET    /health                - Health check")
	log.Println("  POST   /api/v1/auth/register  - Create an account")
	log.Println("  POST   /api/v1/auth/login     - Obtain an access token")
	log.Println("  POST   /api/v1/auth/logout    - Discard the token (protected)")
	log.Println("  GET    /api/v1/profile        - Current user profile (protected)")
	log.Println("  PATCH  /api/v1/profile        - Update profile (protected)")
	log.Println("  POST   /api/v1/tasks          - Create a task (protected)")
	log.Println("  GET    /api/v1/tasks          - List tasks with filters (protected)")
	log.Println("  GET    /api/v1/tasks/:id      - Get a task (protected)")
	log.Println("  PATCH  /api/v1/tasks/:id      - Update a task (protected)")
	log.Println("  DELETE /api/v1/tasks/:id      - Delete a task (protected)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
