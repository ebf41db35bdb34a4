package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/catalog"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/gateway"
	apperrors "github.com/mahenabeywickrama/bovita-candles-fe/pkg/errors"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/logger"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/validator"
)

// maxUploadBytes caps a product form submission, images included.
const maxUploadBytes = 20 << 20

type productForm struct {
	Title       string  `validate:"required,max=120"`
	Description string  `validate:"required,max=2000"`
	Category    string  `validate:"required"`
	Fragrance   string  `validate:"max=80"`
	Size        string  `validate:"required,max=40"`
	Price       float64 `validate:"gte=0"`
	Stock       int     `validate:"gte=0"`
}

// adminProductsView feeds the admin product list template.
type adminProductsView struct {
	Products  []domain.Product
	Page      int
	PageLinks []pageLink
}

// productFormView feeds the create and edit forms.
type productFormView struct {
	Product    domain.Product
	Categories []string
	Errors     map[string]string
	IsEdit     bool
}

// AdminProducts lists products one backend page at a time.
func (h *Handlers) AdminProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	result, err := h.apiFor(r).ListProducts(r.Context(), page, catalog.AdminPageSize)
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	links := make([]pageLink, 0, result.TotalPages)
	for n := 1; n <= result.TotalPages; n++ {
		links = append(links, pageLink{
			N:       n,
			URL:     "/admin/products?page=" + strconv.Itoa(n),
			Current: n == page,
		})
	}

	h.renderer.Render(w, r, http.StatusOK, "admin_products", h.page(w, r, "Manage Products", adminProductsView{
		Products:  result.Items,
		Page:      page,
		PageLinks: links,
	}))
}

// NewProductPage shows the empty product form.
func (h *Handlers) NewProductPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "admin_product_form", h.page(w, r, "New Product", productFormView{
		Categories: domain.Categories(),
	}))
}

// CreateProduct validates the submission locally, requires at least one
// image, and forwards everything as multipart form data. The catalog snapshot
// is invalidated so the storefront sees the new product.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, images, err := h.parseProductForm(r)
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	fieldErrors := validateProductForm(form)
	if len(images) == 0 {
		fieldErrors["Images"] = "at least one image is required"
	}
	if len(fieldErrors) > 0 {
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, "admin_product_form", h.page(w, r, "New Product", productFormView{
			Product:    formProduct(form),
			Categories: domain.Categories(),
			Errors:     fieldErrors,
		}))
		return
	}

	err = h.apiFor(r).CreateProduct(r.Context(), gateway.ProductInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Fragrance:   form.Fragrance,
		Size:        form.Size,
		Price:       form.Price,
		Stock:       form.Stock,
		Images:      images,
	})
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	h.catalog.Invalidate()
	logger.WithContext(r.Context(), h.logger).Info("product created", slog.String("title", form.Title))
	SetFlash(w, "success", "Product created.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// EditProductPage shows the form pre-filled from the catalog snapshot.
func (h *Handlers) EditProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := h.findProduct(r, chi.URLParam(r, "id"))
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "admin_product_form", h.page(w, r, "Edit Product", productFormView{
		Product:    product,
		Categories: domain.Categories(),
		IsEdit:     true,
	}))
}

// UpdateProduct saves the edited fields. When the admin picked no replacement
// images, the update carries no file parts and the backend keeps the stored
// ones.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, images, err := h.parseProductForm(r)
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	if fieldErrors := validateProductForm(form); len(fieldErrors) > 0 {
		product := formProduct(form)
		product.ID = id
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, "admin_product_form", h.page(w, r, "Edit Product", productFormView{
			Product:    product,
			Categories: domain.Categories(),
			Errors:     fieldErrors,
			IsEdit:     true,
		}))
		return
	}

	err = h.apiFor(r).UpdateProduct(r.Context(), id, gateway.ProductInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Fragrance:   form.Fragrance,
		Size:        form.Size,
		Price:       form.Price,
		Stock:       form.Stock,
		Images:      images,
	})
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}

	h.catalog.Invalidate()
	SetFlash(w, "success", "Product updated.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// DeleteProduct is a two-step flow. The first submission renders a
// confirmation page without touching the backend; only a confirmed
// resubmission deletes. Cancel returns to the list with nothing deleted.
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, apperrors.InvalidInput("malformed form submission"), PrincipalFrom(r.Context()))
		return
	}

	switch r.PostFormValue("confirm") {
	case "yes":
		if err := h.apiFor(r).DeleteProduct(r.Context(), id); err != nil {
			h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
			return
		}
		h.catalog.Invalidate()
		logger.WithContext(r.Context(), h.logger).Info("product deleted", slog.String("product_id", id))
		SetFlash(w, "success", "Product deleted.")
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)

	case "no":
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)

	default:
		product, err := h.findProduct(r, id)
		if err != nil {
			h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
			return
		}
		h.renderer.Render(w, r, http.StatusOK, "admin_product_delete", h.page(w, r, "Delete Product", product))
	}
}

// findProduct locates a product by ID in the catalog snapshot.
func (h *Handlers) findProduct(r *http.Request, id string) (domain.Product, error) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", id)
}

// parseProductForm reads the multipart submission and buffers the uploads.
func (h *Handlers) parseProductForm(r *http.Request) (productForm, []gateway.ImageFile, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return productForm{}, nil, apperrors.InvalidInput("malformed product form")
	}

	price, _ := strconv.ParseFloat(r.PostFormValue("price"), 64)
	stock, _ := strconv.Atoi(r.PostFormValue("stock"))
	form := productForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		Fragrance:   r.PostFormValue("fragrance"),
		Size:        r.PostFormValue("size"),
		Price:       price,
		Stock:       stock,
	}

	var images []gateway.ImageFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			f, err := header.Open()
			if err != nil {
				return productForm{}, nil, apperrors.InvalidInput("unreadable image upload")
			}
			content, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return productForm{}, nil, apperrors.InvalidInput("unreadable image upload")
			}
			images = append(images, gateway.ImageFile{Name: header.Filename, Content: content})
		}
	}
	return form, images, nil
}

func validateProductForm(form productForm) map[string]string {
	fieldErrors := map[string]string{}
	if err := validator.Validate(form); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			fieldErrors = vErr.Fields()
		} else {
			fieldErrors["Form"] = err.Error()
		}
	}
	if form.Category != "" && !domain.IsValidCategory(form.Category) {
		fieldErrors["Category"] = "is not a known category"
	}
	return fieldErrors
}

func formProduct(form productForm) domain.Product {
	return domain.Product{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Fragrance:   form.Fragrance,
		Size:        form.Size,
		Price:       form.Price,
		Stock:       form.Stock,
	}
}
