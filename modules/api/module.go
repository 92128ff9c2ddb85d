package api

import (
	"context"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/example/taskboard/domain/apperror"
	"github.com/example/taskboard/modules/auth"
	ratelimitmod "github.com/example/taskboard/modules/ratelimit"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port int `env:"API_PORT" envDefault:"3000"`
}

// APIModule is the HTTP surface. It depends on the auth and task
// modules and optionally on the rate limiter.
type APIModule struct {
	config          Config
	app             *fiber.App
	authContainer   mono.ServiceContainer
	taskContainer   mono.ServiceContainer
	authAdapter     auth.AuthPort
	rateLimitModule *ratelimitmod.Module
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	return &APIModule{}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from
// dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskContainer = container
	}
}

// SetRateLimitModule injects the optional auth-endpoint rate limiter.
func (m *APIModule) SetRateLimitModule(rlm *ratelimitmod.Module) {
	m.rateLimitModule = rlm
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskContainer == nil {
		return fmt.Errorf("task dependency not set")
	}
	if err := env.Parse(&m.config); err != nil {
		return fmt.Errorf("failed to parse api config: %w", err)
	}

	m.app = fiber.New(fiber.Config{
		AppName:               "taskboard",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		addr := fmt.Sprintf(":%d", m.config.Port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.config.Port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.config.Port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.taskContainer)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := m.app.Group("/api/v1")

	// Public auth routes, rate limited when the limiter is configured.
	authRoutes := v1.Group("/auth")
	if m.rateLimitModule != nil {
		limit := m.rateLimitModule.IPRateLimit()
		authRoutes.Post("/register", limit, handlers.Register)
		authRoutes.Post("/login", limit, handlers.Login)
	} else {
		authRoutes.Post("/register", handlers.Register)
		authRoutes.Post("/login", handlers.Login)
	}

	// Protected routes behind the authorization gate.
	protected := v1.Group("", AuthMiddleware(m.authAdapter))
	protected.Post("/auth/logout", handlers.Logout)
	protected.Get("/profile", handlers.GetProfile)
	protected.Patch("/profile", handlers.UpdateProfile)
	protected.Post("/tasks", handlers.CreateTask)
	protected.Get("/tasks", handlers.ListTasks)
	protected.Get("/tasks/:id", handlers.GetTask)
	protected.Patch("/tasks/:id", handlers.UpdateTask)
	protected.Delete("/tasks/:id", handlers.DeleteTask)
}

// errorHandler converts uncaught Fiber errors into the envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	appErr := apperror.New(apperror.CodeInternal, code, "Internal server error")
	if code != fiber.StatusInternalServerError {
		appErr.Message = err.Error()
	}
	return respondError(c, appErr)
}
