package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlaintextMatcher_Match(t *testing.T) {
	matcher := PlaintextMatcher{}

	tests := []struct {
		name     string
		stored   string
		supplied string
		want     bool
	}{
		{
			name:     "exact match",
			stored:   "secret",
			supplied: "secret",
			want:     true,
		},
		{
			name:     "different case",
			stored:   "secret",
			supplied: "Secret",
			want:     false,
		},
		{
			name:     "trailing space",
			stored:   "secret",
			supplied: "secret ",
			want:     false,
		},
		{
			name:     "prefix",
			stored:   "secret",
			supplied: "sec",
			want:     false,
		},
		{
			name:     "empty supplied",
			stored:   "secret",
			supplied: "",
			want:     false,
		},
		{
			name:     "unicode",
			stored:   "lösenord",
			supplied: "lösenord",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.Match(tt.stored, tt.supplied); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.stored, tt.supplied, got, tt.want)
			}
		})
	}
}

// hashPassword produces a bcrypt hash the way provisioning tools store one.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword() error = %v", err)
	}
	return string(hash)
}

func TestBcryptMatcher_Match(t *testing.T) {
	matcher := NewBcryptMatcher()

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "simple password",
			password: "password123",
		},
		{
			name:     "complex password",
			password: "P@ssw0rd!#$%^&*()",
		},
		{
			name:     "unicode password",
			password: "密码123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := hashPassword(t, tt.password)

			if len(hash) != 60 {
				t.Errorf("len(hash) = %d, want 60", len(hash))
			}

			if !matcher.Match(hash, tt.password) {
				t.Error("Match() returned false for correct password")
			}
			if matcher.Match(hash, tt.password+"x") {
				t.Error("Match() returned true for wrong password")
			}
		})
	}
}

func TestBcryptMatcher_InvalidHash(t *testing.T) {
	matcher := NewBcryptMatcher()

	if matcher.Match("not-a-bcrypt-hash", "not-a-bcrypt-hash") {
		t.Error("Match() should return false when stored value is not a hash")
	}
}

func TestNewCredentialMatcher(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
		check   func(CredentialMatcher) bool
	}{
		{scheme: "", check: func(m CredentialMatcher) bool { _, ok := m.(PlaintextMatcher); return ok }},
		{scheme: "plain", check: func(m CredentialMatcher) bool { _, ok := m.(PlaintextMatcher); return ok }},
		{scheme: "bcrypt", check: func(m CredentialMatcher) bool { _, ok := m.(*BcryptMatcher); return ok }},
		{scheme: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			m, err := NewCredentialMatcher(tt.scheme)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unsupported scheme")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCredentialMatcher() error = %v", err)
			}
			if !tt.check(m) {
				t.Errorf("NewCredentialMatcher(%q) returned %T", tt.scheme, m)
			}
		})
	}
}
