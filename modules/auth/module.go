package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/taskboard/domain/apperror"
	domain "github.com/example/taskboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides account and token services.
type AuthModule struct {
	config  Config
	db      *gorm.DB
	service *AccountService
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule() *AuthModule {
	return &AuthModule{}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start loads configuration, opens the database and builds the account
// service. A missing JWT_SECRET fails here and aborts startup.
func (m *AuthModule) Start(_ context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	m.config = cfg

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher(cfg.BcryptCost)
	tokens := NewTokenService(cfg.TokenConfig())
	m.service = NewAccountService(repo, hasher, tokens)

	log.Printf("[auth] Module started (database: %s, token ttl: %s)", cfg.DBPath, cfg.TokenTTL)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
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

// RegisterServices registers the auth request-reply services.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"register", func() error {
			return helper.RegisterTypedRequestReplyService(container, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		}},
		{"login", func() error {
			return helper.RegisterTypedRequestReplyService(container, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		}},
		{"logout", func() error {
			return helper.RegisterTypedRequestReplyService(container, "logout", json.Unmarshal, json.Marshal, m.handleLogout)
		}},
		{"validate-token", func() error {
			return helper.RegisterTypedRequestReplyService(container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken)
		}},
		{"get-profile", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-profile", json.Unmarshal, json.Marshal, m.handleGetProfile)
		}},
		{"update-profile", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-profile", json.Unmarshal, json.Marshal, m.handleUpdateProfile)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, logout, validate-token, get-profile, update-profile")
	return nil
}

// handleRegister handles account registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return RegisterResponse{Error: appErr}, nil
		}
		return RegisterResponse{}, err
	}

	public := user.Public()
	return RegisterResponse{User: &public}, nil
}

// handleLogin handles login and token issuance.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, user, err := m.service.Login(ctx, req)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return LoginResponse{Error: appErr}, nil
		}
		return LoginResponse{}, err
	}

	public := user.Public()
	return LoginResponse{AccessToken: token, User: &public}, nil
}

// handleLogout acknowledges a logout. Tokens are stateless, so there is
// no server-side session to invalidate; clients discard their token.
func (m *AuthModule) handleLogout(_ context.Context, _ LogoutRequest, _ *mono.Msg) (LogoutResponse, error) {
	return LogoutResponse{Message: "Logged out successfully"}, nil
}

// handleValidateToken verifies a bearer token for the authorization gate.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, appErr := m.service.ValidateToken(ctx, req.Token)
	if appErr != nil {
		return ValidateTokenResponse{Valid: false, Error: appErr}, nil
	}
	return ValidateTokenResponse{Valid: true, Claims: claims}, nil
}

// handleGetProfile returns the authenticated account's profile.
func (m *AuthModule) handleGetProfile(ctx context.Context, req GetProfileRequest, _ *mono.Msg) (ProfileResponse, error) {
	user, err := m.service.GetProfile(ctx, req.UserID)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return ProfileResponse{Error: appErr}, nil
		}
		return ProfileResponse{}, err
	}

	profile := user.Profile()
	return ProfileResponse{Profile: &profile}, nil
}

// handleUpdateProfile applies a partial profile update.
func (m *AuthModule) handleUpdateProfile(ctx context.Context, req UpdateProfileRequest, _ *mono.Msg) (ProfileResponse, error) {
	user, err := m.service.UpdateProfile(ctx, req)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return ProfileResponse{Error: appErr}, nil
		}
		return ProfileResponse{}, err
	}

	profile := user.Profile()
	return ProfileResponse{Profile: &profile}, nil
}
