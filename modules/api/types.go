package api

// AuthenticateRequest represents a login request.
type AuthenticateRequest struct {
	UserName string `json:"userName" validate:"required,notblank,max=50"`
	Password string `json:"password" validate:"required,notblank,max=50"`
}

// TokenResponse carries the session token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProductRequest is the body of product create and update requests.
// Price must fit a decimal(18,2) column exactly.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=50"`
	Sku         string   `json:"sku" validate:"required,notblank,max=20"`
	Description string   `json:"description" validate:"required,notblank,max=50"`
	Image       string   `json:"image" validate:"required,notblank,max=50"`
	Price       *float64 `json:"price" validate:"required,gt=-1e16,lt=1e16,cents"`
}

// ProductResponse represents a stored product.
type ProductResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Sku         string  `json:"sku"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
