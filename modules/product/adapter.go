package product

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names registered by the product module.
const (
	ServiceList   = "list-products"
	ServiceGet    = "get-product"
	ServiceCreate = "create-product"
	ServiceUpdate = "update-product"
	ServiceDelete = "delete-product"
)

// ProductPort defines the product operations other modules depend on.
type ProductPort interface {
	List(ctx context.Context, name string) ([]ProductData, error)
	Get(ctx context.Context, sku string) (*ProductData, error)
	Create(ctx context.Context, fields ProductFields) (*ProductData, error)
	Update(ctx context.Context, sku string, fields ProductFields) error
	Delete(ctx context.Context, sku string) error
}

// productAdapter implements ProductPort using the service container.
type productAdapter struct {
	container mono.ServiceContainer
}

// NewProductAdapter creates a new adapter for the product services.
func NewProductAdapter(container mono.ServiceContainer) ProductPort {
	return &productAdapter{container: container}
}

// List returns products, optionally filtered by exact name.
func (a *productAdapter) List(ctx context.Context, name string) ([]ProductData, error) {
	req := ListProductsRequest{Name: name}
	var resp ListProductsResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, ServiceList, json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, mapServiceError(ServiceList, err)
	}

	if resp.Products == nil {
		resp.Products = []ProductData{}
	}
	return resp.Products, nil
}

// Get returns the product with the given SKU.
func (a *productAdapter) Get(ctx context.Context, sku string) (*ProductData, error) {
	req := GetProductRequest{Sku: sku}
	var resp ProductData

	if err := helper.CallRequestReplyService(
		ctx, a.container, ServiceGet, json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, mapServiceError(ServiceGet, err)
	}
	return &resp, nil
}

// Create inserts a new product.
func (a *productAdapter) Create(ctx context.Context, fields ProductFields) (*ProductData, error) {
	req := CreateProductRequest{Product: fields}
	var resp ProductData

	if err := helper.CallRequestReplyService(
		ctx, a.container, ServiceCreate, json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, mapServiceError(ServiceCreate, err)
	}
	return &resp, nil
}

// Update replaces the product with the given SKU.
func (a *productAdapter) Update(ctx context.Context, sku string, fields ProductFields) error {
	req := UpdateProductRequest{Sku: sku, Product: fields}
	var resp UpdateProductResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, ServiceUpdate, json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return mapServiceError(ServiceUpdate, err)
	}
	return nil
}

// Delete removes the product with the given SKU.
func (a *productAdapter) Delete(ctx context.Context, sku string) error {
	req := DeleteProductRequest{Sku: sku}
	var resp DeleteProductResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, ServiceDelete, json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return mapServiceError(ServiceDelete, err)
	}
	return nil
}

// mapServiceError converts service errors back to sentinel errors
// by checking the error message content. This is necessary because
// errors lose their type information when sent over NATS.
func mapServiceError(service string, err error) error {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, ErrProductNotFound.Error()):
		return ErrProductNotFound
	case strings.Contains(errMsg, ErrSKUExists.Error()):
		return ErrSKUExists
	case strings.Contains(errMsg, ErrSKUMismatch.Error()):
		return ErrSKUMismatch
	default:
		return fmt.Errorf("%s request failed: %w", service, err)
	}
}
