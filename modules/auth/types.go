package auth

// AuthenticateRequest represents a login request.
type AuthenticateRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// AuthenticateResponse carries the issued session token.
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid     bool   `json:"valid"`
	GivenName string `json:"givenName,omitempty"`
	Surname   string `json:"surname,omitempty"`
	Error     string `json:"error,omitempty"`
}
