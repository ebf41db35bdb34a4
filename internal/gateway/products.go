package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
)

// ImageFile is an uploaded product image forwarded to the backend.
type ImageFile struct {
	Name    string
	Content []byte
}

// ProductInput carries the product form fields for create and update. Images
// are sent as repeated multipart file parts; an update with no images omits
// the file parts entirely and the backend keeps the stored ones.
type ProductInput struct {
	Title       string
	Description string
	Category    string
	Fragrance   string
	Size        string
	Price       float64
	Stock       int
	Images      []ImageFile
}

// ProductPage is one server page of the catalog.
type ProductPage struct {
	Items      []domain.Product
	TotalPages int
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, page, limit int) (ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/product/?"+q.Encode(), "", nil)
	if err != nil {
		return ProductPage{}, err
	}

	var env envelope[[]domain.Product]
	if err := c.doJSON(ctx, req, "products.list", &env); err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Items: env.Data, TotalPages: env.TotalPages}, nil
}

// CreateProduct submits a new product as multipart form data.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) error {
	body, contentType, err := buildProductForm(in, "products.create")
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/product/create", contentType, body)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, "products.create", nil)
}

// UpdateProduct saves edited product fields. When no replacement images were
// chosen the request carries no file parts.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	body, contentType, err := buildProductForm(in, "products.update")
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/product/"+id, contentType, body)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, "products.update", nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/product/"+id, "", nil)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, "products.delete", nil)
}

// buildProductForm writes the scalar fields as named parts and every image
// under the repeated field "images".
func buildProductForm(in ProductInput, endpoint string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"fragrance":   in.Fragrance,
		"size":        in.Size,
		"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(in.Stock),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("%s: write field %s: %w", endpoint, name, err)
		}
	}

	for _, img := range in.Images {
		part, err := w.CreateFormFile("images", img.Name)
		if err != nil {
			return nil, "", fmt.Errorf("%s: create image part: %w", endpoint, err)
		}
		if _, err := part.Write(img.Content); err != nil {
			return nil, "", fmt.Errorf("%s: write image %s: %w", endpoint, img.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%s: finalize form: %w", endpoint, err)
	}
	return &buf, w.FormDataContentType(), nil
}
