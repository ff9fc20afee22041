package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/product-manager/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names registered by the auth module.
const (
	ServiceAuthenticate  = "authenticate"
	ServiceValidateToken = "validate-token"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	Authenticate(ctx context.Context, userName, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Authenticate exchanges credentials for a session token.
func (a *AuthAdapter) Authenticate(ctx context.Context, userName, password string) (string, error) {
	req := AuthenticateRequest{UserName: userName, Password: password}
	var resp AuthenticateResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAuthenticate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", mapServiceError(err)
	}

	return resp.Token, nil
}

// ValidateToken validates a session token and returns its claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceValidateToken,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		GivenName: resp.GivenName,
		Surname:   resp.Surname,
	}, nil
}

// mapServiceError converts service errors back to sentinel errors.
// Errors lose their type when sent over NATS, so the message is matched.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), ErrInvalidCredentials.Error()) {
		return ErrInvalidCredentials
	}

	return fmt.Errorf("authenticate request failed: %w", err)
}
