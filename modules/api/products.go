package api

import (
	"errors"
	"net/url"

	"github.com/example/product-manager/modules/product"
	"github.com/gofiber/fiber/v2"
)

// ListProducts returns every product, or those whose name equals ?name=.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext(), c.Query("name"))
	if err != nil {
		return h.internalError(c, err)
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetProduct returns the product with the SKU in the path.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	sku, err := skuParam(c)
	if err != nil {
		return err
	}

	p, err := h.products.Get(c.UserContext(), sku)
	if err != nil {
		return h.handleProductError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toProductResponse(*p))
}

// CreateProduct stores a new product.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	req, ok, err := h.parseProduct(c)
	if !ok {
		return err
	}

	p, err := h.products.Create(c.UserContext(), req.fields())
	if err != nil {
		return h.handleProductError(c, err)
	}

	c.Location("/products/" + url.PathEscape(p.Sku))
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(*p))
}

// UpdateProduct replaces the product with the SKU in the path. The body must
// carry the same SKU.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	req, ok, err := h.parseProduct(c)
	if !ok {
		return err
	}

	sku, err := skuParam(c)
	if err != nil {
		return err
	}
	if req.Sku != sku {
		return writeError(c, fiber.StatusBadRequest, "bad_request", product.ErrSKUMismatch.Error())
	}

	if err := h.products.Update(c.UserContext(), sku, req.fields()); err != nil {
		return h.handleProductError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteProduct removes the product with the SKU in the path.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	sku, err := skuParam(c)
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.UserContext(), sku); err != nil {
		return h.handleProductError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProduct decodes and validates a product body. When ok is false the
// error response has already been written and err is its result.
func (h *Handlers) parseProduct(c *fiber.Ctx) (req ProductRequest, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, false, writeError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if fields := h.validator.Struct(&req); fields != nil {
		return req, false, writeValidationError(c, fields)
	}
	return req, true, nil
}

// skuParam returns the unescaped :sku path segment. Routing runs on the
// escaped path, so an encoded "/" stays inside the segment.
func skuParam(c *fiber.Ctx) (string, error) {
	sku, err := url.PathUnescape(c.Params("sku"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid SKU in path")
	}
	return sku, nil
}

func (h *Handlers) handleProductError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return writeError(c, fiber.StatusNotFound, "not_found", "Product not found")
	case errors.Is(err, product.ErrSKUExists):
		return writeError(c, fiber.StatusBadRequest, "bad_request", "Product with this SKU already exists")
	case errors.Is(err, product.ErrSKUMismatch):
		return writeError(c, fiber.StatusBadRequest, "bad_request", product.ErrSKUMismatch.Error())
	default:
		return h.internalError(c, err)
	}
}

func (r ProductRequest) fields() product.ProductFields {
	f := product.ProductFields{
		Name:        r.Name,
		Sku:         r.Sku,
		Description: r.Description,
		Image:       r.Image,
	}
	if r.Price != nil {
		f.Price = *r.Price
	}
	return f
}

func toProductResponse(p product.ProductData) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Sku:         p.Sku,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
	}
}
