package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/product-manager/modules/auth"
	"github.com/example/product-manager/modules/product"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr               string
	CORSAllowedOrigins string
}

// APIModule is the HTTP API module.
type APIModule struct {
	cfg            Config
	app            *fiber.App
	authAdapter    auth.AuthPort
	productAdapter product.ProductPort
	logger         types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config, logger types.Logger) *APIModule {
	return &APIModule{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "product"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "product":
		m.productAdapter = product.NewProductAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return errors.New("auth dependency not set")
	}
	if m.productAdapter == nil {
		return errors.New("product dependency not set")
	}

	m.app = newApp(m.cfg, m.authAdapter, m.productAdapter, prometheus.NewRegistry(), m.logger)

	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "addr", m.cfg.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.cfg.Addr,
		},
	}
}

// newApp builds the Fiber application with its middleware and routes.
func newApp(cfg Config, authPort auth.AuthPort, products product.ProductPort, reg *prometheus.Registry, log types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	origins := cfg.CORSAllowedOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))
	app.Use(newHTTPMetrics(reg).Middleware())

	handlers := NewHandlers(authPort, products, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})
	app.Get("/metrics", metricsHandler(reg))

	app.Post("/auth", handlers.Authenticate)

	protected := app.Group("/products", AuthMiddleware(authPort))
	protected.Get("/", handlers.ListProducts)
	protected.Get("/:sku", handlers.GetProduct)
	protected.Post("/", handlers.CreateProduct)
	protected.Put("/:sku", handlers.UpdateProduct)
	protected.Delete("/:sku", handlers.DeleteProduct)

	return app
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   fmt.Sprintf("http_%d", code),
		Message: message,
	})
}
