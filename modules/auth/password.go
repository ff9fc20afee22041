package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/example/product-manager/config"
	"golang.org/x/crypto/bcrypt"
)

// CredentialMatcher compares a stored credential with the one supplied at login.
type CredentialMatcher interface {
	Match(stored, supplied string) bool
}

// PlaintextMatcher compares passwords verbatim and case-sensitively.
// Stored credentials are plaintext under this scheme.
type PlaintextMatcher struct{}

// Match reports whether supplied equals stored.
func (PlaintextMatcher) Match(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptMatcher verifies supplied passwords against stored bcrypt hashes.
// Hashes are produced when users are provisioned outside the service.
type BcryptMatcher struct{}

// NewBcryptMatcher creates a new BcryptMatcher.
func NewBcryptMatcher() *BcryptMatcher {
	return &BcryptMatcher{}
}

// Match reports whether supplied hashes to stored.
func (m *BcryptMatcher) Match(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewCredentialMatcher returns the matcher for a PASSWORD_SCHEME value.
func NewCredentialMatcher(scheme string) (CredentialMatcher, error) {
	switch scheme {
	case "", config.PasswordSchemePlain:
		return PlaintextMatcher{}, nil
	case config.PasswordSchemeBcrypt:
		return NewBcryptMatcher(), nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}
