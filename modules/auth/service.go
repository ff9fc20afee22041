package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/product-manager/domain/user"
)

// ErrInvalidCredentials is returned when login credentials are invalid.
// Unknown usernames and wrong passwords are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles authentication business logic.
type AuthService struct {
	repo    *UserRepository
	matcher CredentialMatcher
	issuer  *TokenIssuer
}

// Compile-time interface check.
var _ AuthPort = (*AuthService)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, matcher CredentialMatcher, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		repo:    repo,
		matcher: matcher,
		issuer:  issuer,
	}
}

// Authenticate verifies the credentials and returns a signed session token.
func (s *AuthService) Authenticate(ctx context.Context, userName, password string) (string, error) {
	user, err := s.repo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	// Some collations compare case-insensitively; usernames must match verbatim.
	if user.UserName != userName || !s.matcher.Match(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// ValidateToken verifies a session token and returns its claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		GivenName: claims.GivenName,
		Surname:   claims.Surname,
	}, nil
}
