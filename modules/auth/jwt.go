package auth

import (
	"errors"
	"time"

	domain "github.com/example/product-manager/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptySigningKey is returned when the issuer is built without a key.
	ErrEmptySigningKey = errors.New("signing key is empty")
)

// TokenClaims represents the claims embedded in a session token.
// No expiry, issuer or audience is set.
type TokenClaims struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"family_name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens with a symmetric key.
type TokenIssuer struct {
	key []byte
}

// NewTokenIssuer creates a new TokenIssuer with the given key.
func NewTokenIssuer(key []byte) (*TokenIssuer, error) {
	if len(key) == 0 {
		return nil, ErrEmptySigningKey
	}
	return &TokenIssuer{
		key: key,
	}, nil
}

// Issue generates a signed token carrying the user's display-name claims.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	claims := TokenClaims{
		GivenName: user.FirstName,
		Surname:   user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.key)
}

// Validate verifies the token signature and returns its claims.
// exp and nbf are only enforced when present in the token.
func (i *TokenIssuer) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
