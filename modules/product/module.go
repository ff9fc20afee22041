package product

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

// Module owns the product catalogue and exposes it as request-reply services.
type Module struct {
	storage *storage.PluginModule
	service *Service
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)
var _ mono.UsePluginModule = (*Module)(nil)

// NewModule creates a new product Module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "product"
}

// SetPlugin receives the storage plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
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

// Start wires the service to the shared database.
func (m *Module) Start(_ context.Context) error {
	if m.storage == nil || m.storage.DB() == nil {
		return fmt.Errorf("required plugin '%s' not registered", storage.PluginAlias)
	}

	m.service = NewService(NewRepository(m.storage.DB()))
	m.logger.Info("Product module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Product module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
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
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceList, json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceList, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGet, json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGet, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreate, json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdate, json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDelete, json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDelete, err)
	}

	m.logger.Info("Registered services",
		"services", []string{ServiceList, ServiceGet, ServiceCreate, ServiceUpdate, ServiceDelete})
	return nil
}

func (m *Module) handleList(ctx context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products, err := m.service.List(ctx, req.Name)
	if err != nil {
		m.logger.Error("Failed to list products", "error", err)
		return ListProductsResponse{}, err
	}
	return ListProductsResponse{Products: products}, nil
}

func (m *Module) handleGet(ctx context.Context, req GetProductRequest, _ *mono.Msg) (ProductData, error) {
	p, err := m.service.Get(ctx, req.Sku)
	if err != nil {
		m.logUnexpected("Failed to get product", req.Sku, err)
		return ProductData{}, err
	}
	return *p, nil
}

func (m *Module) handleCreate(ctx context.Context, req CreateProductRequest, _ *mono.Msg) (ProductData, error) {
	p, err := m.service.Create(ctx, req.Product)
	if err != nil {
		m.logUnexpected("Failed to create product", req.Product.Sku, err)
		return ProductData{}, err
	}
	m.logger.Info("Product created", "sku", p.Sku, "id", p.ID)
	return *p, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateProductRequest, _ *mono.Msg) (UpdateProductResponse, error) {
	if err := m.service.Update(ctx, req.Sku, req.Product); err != nil {
		m.logUnexpected("Failed to update product", req.Sku, err)
		return UpdateProductResponse{}, err
	}
	return UpdateProductResponse{Updated: true}, nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteProductRequest, _ *mono.Msg) (DeleteProductResponse, error) {
	if err := m.service.Delete(ctx, req.Sku); err != nil {
		m.logUnexpected("Failed to delete product", req.Sku, err)
		return DeleteProductResponse{}, err
	}
	m.logger.Info("Product deleted", "sku", req.Sku)
	return DeleteProductResponse{Deleted: true}, nil
}

// logUnexpected logs errors that are not part of the normal request outcomes.
func (m *Module) logUnexpected(msg, sku string, err error) {
	if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrSKUExists) || errors.Is(err, ErrSKUMismatch) {
		return
	}
	m.logger.Error(msg, "sku", sku, "error", err)
}
