package product

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/product-manager/domain/product"
)

// ErrSKUMismatch is returned when an update targets one SKU but carries another.
var ErrSKUMismatch = errors.New("sku in path does not match sku in body")

// Service implements the product operations on top of the repository.
// Each operation issues at most one write statement.
type Service struct {
	repo *Repository
}

// Compile-time interface check.
var _ ProductPort = (*Service)(nil)

// NewService creates a new product service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns all products, filtered by exact name when name is non-empty.
func (s *Service) List(ctx context.Context, name string) ([]ProductData, error) {
	products, err := s.repo.List(ctx, name)
	if err != nil {
		return nil, err
	}

	result := make([]ProductData, 0, len(products))
	for _, p := range products {
		result = append(result, toProductData(p))
	}
	return result, nil
}

// Get returns the product with the given SKU.
func (s *Service) Get(ctx context.Context, sku string) (*ProductData, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	data := toProductData(p)
	return &data, nil
}

// Create inserts a product after checking that its SKU is free. The unique
// index still guards the window between the check and the insert.
func (s *Service) Create(ctx context.Context, fields ProductFields) (*ProductData, error) {
	exists, err := s.repo.SKUExists(ctx, fields.Sku)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSKUExists
	}

	p := &domain.Product{}
	fields.apply(p)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	data := toProductData(p)
	return &data, nil
}

// Update replaces every mutable field of the product with the given SKU.
func (s *Service) Update(ctx context.Context, sku string, fields ProductFields) error {
	if sku != fields.Sku {
		return ErrSKUMismatch
	}

	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}

	fields.apply(p)

	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to save product %s: %w", sku, err)
	}
	return nil
}

// Delete removes the product with the given SKU.
func (s *Service) Delete(ctx context.Context, sku string) error {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}
