package api

import (
	"errors"

	"github.com/example/product-manager/modules/auth"
	"github.com/example/product-manager/modules/product"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth      auth.AuthPort
	products  product.ProductPort
	validator *requestValidator
	logger    types.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, products product.ProductPort, logger types.Logger) *Handlers {
	return &Handlers{
		auth:      authPort,
		products:  products,
		validator: newRequestValidator(),
		logger:    logger,
	}
}

// Authenticate exchanges a username and password for a session token.
func (h *Handlers) Authenticate(c *fiber.Ctx) error {
	var req AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if fields := h.validator.Struct(&req); fields != nil {
		return writeValidationError(c, fields)
	}

	token, err := h.auth.Authenticate(c.UserContext(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return writeError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid username or password")
		}
		return h.internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{Token: token})
}

// internalError logs err and answers with a generic 500 so store details
// never reach the client.
func (h *Handlers) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error("Request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
		"error", err)
	return writeError(c, fiber.StatusInternalServerError, "internal_error", "An internal error occurred")
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func writeValidationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_failed",
		Message: "Request validation failed",
		Fields:  fields,
	})
}
