package product

import (
	domain "github.com/example/product-manager/domain/product"
)

// ProductFields holds the client-supplied fields of a product.
type ProductFields struct {
	Name        string  `json:"name"`
	Sku         string  `json:"sku"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// ProductData is the transport projection of a stored product.
type ProductData struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Sku         string  `json:"sku"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// ListProductsRequest is the request for listing products.
type ListProductsRequest struct {
	Name string `json:"name,omitempty"`
}

// ListProductsResponse is the response containing a list of products.
type ListProductsResponse struct {
	Products []ProductData `json:"products"`
}

// GetProductRequest is the request for getting a product.
type GetProductRequest struct {
	Sku string `json:"sku"`
}

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	Product ProductFields `json:"product"`
}

// UpdateProductRequest is the request for replacing a product.
type UpdateProductRequest struct {
	Sku     string        `json:"sku"`
	Product ProductFields `json:"product"`
}

// UpdateProductResponse is the response after replacing a product.
type UpdateProductResponse struct {
	Updated bool `json:"updated"`
}

// DeleteProductRequest is the request for deleting a product.
type DeleteProductRequest struct {
	Sku string `json:"sku"`
}

// DeleteProductResponse is the response after deleting a product.
type DeleteProductResponse struct {
	Deleted bool `json:"deleted"`
}

// toProductData converts a Product entity to its transport projection.
func toProductData(p *domain.Product) ProductData {
	return ProductData{
		ID:          p.ID,
		Name:        p.Name,
		Sku:         p.Sku,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
	}
}

// apply copies the mutable fields onto the entity.
func (f ProductFields) apply(p *domain.Product) {
	p.Name = f.Name
	p.Sku = f.Sku
	p.Description = f.Description
	p.Image = f.Image
	p.Price = f.Price
}
