package product

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/product-manager/domain/product"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when no product has the requested SKU.
	ErrProductNotFound = errors.New("product not found")
	// ErrSKUExists is returned when a product with the same SKU already exists.
	ErrSKUExists = errors.New("product with this sku already exists")
)

// Repository provides access to product storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all products, or those whose name equals name when it is non-empty.
func (r *Repository) List(ctx context.Context, name string) ([]*domain.Product, error) {
	var products []*domain.Product
	query := r.db.WithContext(ctx).Order("id")
	if name != "" {
		query = query.Where("name = ?", name)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindBySKU retrieves a product by its SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// SKUExists checks if a product with the given SKU exists.
func (r *Repository) SKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new product. The store assigns the ID.
func (r *Repository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSKUExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the product identified by its ID.
// RowsAffected is not checked: MySQL reports 0 for an unchanged row.
func (r *Repository) Update(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"sku":         product.Sku,
			"description": product.Description,
			"image":       product.Image,
			"price":       product.Price,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSKUExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes the product with the given ID.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
