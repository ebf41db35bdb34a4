package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/catalog"
	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
)

const filterCookie = "bovita_filters"

// featuredCount is how many products the home page showcases.
const featuredCount = 4

// Home shows the landing page with a handful of featured products. A catalog
// fetch failure degrades to an empty showcase instead of an error page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	var featured []domain.Product
	if products, err := h.catalog.Products(r.Context()); err == nil {
		if len(products) > featuredCount {
			products = products[:featuredCount]
		}
		featured = products
	}
	h.renderer.Render(w, r, http.StatusOK, "home", h.page(w, r, "Bovita Candles", featured))
}

// productsView feeds the catalog page template.
type productsView struct {
	View       catalog.View
	Query      filterQuery
	Categories []string
	SortKeys   []string
	PageLinks  []pageLink
	PrevURL    string
	NextURL    string
}

type filterQuery struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	Sort     string
}

type pageLink struct {
	N       int
	URL     string
	Current bool
}

// Products renders the filterable catalog. The whole catalog is fetched once
// and filtered locally; changing any filter resets the visitor to page one.
func (h *Handlers) Products(w http.ResponseWriter, r *http.Request) {
	query := filterQuery{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		MinPrice: r.URL.Query().Get("min_price"),
		MaxPrice: r.URL.Query().Get("max_price"),
		Sort:     r.URL.Query().Get("sort"),
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filters := catalog.DefaultFilters()
	filters.Search = query.Search
	filters.Category = query.Category
	filters.MinPrice = catalog.ParseBound(query.MinPrice)
	filters.MaxPrice = catalog.ParseBound(query.MaxPrice)
	if domain.IsValidSortKey(query.Sort) {
		filters.SortKey = query.Sort
	}
	filters.Page = page

	if prev, ok := h.lastFilters(r); ok && !filters.PredicateEquals(prev) {
		filters.Page = 1
	}
	h.rememberFilters(w, filters)

	products, err := h.catalog.Products(r.Context())
	if err != nil {
		h.renderer.RenderError(w, r, err, PrincipalFrom(r.Context()))
		return
	}
	view := catalog.ComputeView(products, filters)

	h.renderer.Render(w, r, http.StatusOK, "products", h.page(w, r, "Shop Candles", productsView{
		View:       view,
		Query:      query,
		Categories: domain.FilterCategories(),
		SortKeys:   domain.SortKeys(),
		PageLinks:  buildPageLinks(query, view),
		PrevURL:    pageURL(query, view.Page-1),
		NextURL:    pageURL(query, view.Page+1),
	}))
}

// lastFilters recalls the previously applied predicate from its cookie.
func (h *Handlers) lastFilters(r *http.Request) (catalog.Filters, bool) {
	c, err := r.Cookie(filterCookie)
	if err != nil {
		return catalog.Filters{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return catalog.Filters{}, false
	}
	var f catalog.Filters
	if err := json.Unmarshal(payload, &f); err != nil {
		return catalog.Filters{}, false
	}
	return f, true
}

func (h *Handlers) rememberFilters(w http.ResponseWriter, f catalog.Filters) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     filterCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/products",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pageURL builds a catalog link that keeps the predicate and swaps the page.
func pageURL(q filterQuery, page int) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.MinPrice != "" {
		v.Set("min_price", q.MinPrice)
	}
	if q.MaxPrice != "" {
		v.Set("max_price", q.MaxPrice)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	v.Set("page", strconv.Itoa(page))
	return "/products?" + v.Encode()
}

func buildPageLinks(q filterQuery, view catalog.View) []pageLink {
	links := make([]pageLink, 0, view.TotalPages)
	for n := 1; n <= view.TotalPages; n++ {
		links = append(links, pageLink{N: n, URL: pageURL(q, n), Current: n == view.Page})
	}
	return links
}
