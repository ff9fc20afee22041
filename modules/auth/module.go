package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/product-manager/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Config holds the auth module settings.
type Config struct {
	SigningKey     []byte
	PasswordScheme string
}

// AuthModule provides authentication services.
type AuthModule struct {
	cfg     Config
	storage *storage.PluginModule
	service *AuthService
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)
var _ mono.UsePluginModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(cfg Config, logger types.Logger) *AuthModule {
	return &AuthModule{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// SetPlugin receives the storage plugin from the framework.
func (m *AuthModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != storage.PluginAlias {
		return
	}
	p, ok := plugin.(*storage.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for storage",
			"alias", alias,
			"expected", "*storage.PluginModule")
		return
	}
	m.storage = p
}

// Start initializes the auth module.
func (m *AuthModule) Start(_ context.Context) error {
	if m.storage == nil || m.storage.DB() == nil {
		return fmt.Errorf("required plugin '%s' not registered", storage.PluginAlias)
	}

	issuer, err := NewTokenIssuer(m.cfg.SigningKey)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	matcher, err := NewCredentialMatcher(m.cfg.PasswordScheme)
	if err != nil {
		return err
	}

	m.service = NewAuthService(NewUserRepository(m.storage.DB()), matcher, issuer)

	m.logger.Info("Auth module started", "password_scheme", m.cfg.PasswordScheme)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	m.logger.Info("Auth module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceAuthenticate,
		json.Unmarshal,
		json.Marshal,
		m.handleAuthenticate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAuthenticate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceValidateToken,
		json.Unmarshal,
		json.Marshal,
		m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceValidateToken, err)
	}

	m.logger.Info("Registered services",
		"services", []string{ServiceAuthenticate, ServiceValidateToken})
	return nil
}

// handleAuthenticate handles login requests.
func (m *AuthModule) handleAuthenticate(ctx context.Context, req AuthenticateRequest, _ *mono.Msg) (AuthenticateResponse, error) {
	token, err := m.service.Authenticate(ctx, req.UserName, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			m.logger.Error("Authentication failed", "error", err)
		}
		return AuthenticateResponse{}, err
	}

	return AuthenticateResponse{Token: token}, nil
}

// handleValidateToken handles token validation.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		return ValidateTokenResponse{
			Valid: false,
			Error: err.Error(),
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:     true,
		GivenName: claims.GivenName,
		Surname:   claims.Surname,
	}, nil
}
