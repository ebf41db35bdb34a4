package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
	"github.com/mahenabeywickrama/bovita-candles-fe/pkg/pagination"
)

// Page sizes. The public catalog paginates locally over the filtered set;
// the admin catalog paginates server-side instead.
const (
	PublicPageSize = 12
	AdminPageSize  = 10
)

// Filters holds every input that shapes the catalog view.
type Filters struct {
	Search   string
	Category string // ALL or a product category
	MinPrice *float64
	MaxPrice *float64
	SortKey  string
	Page     int
	PageSize int
}

// DefaultFilters returns the unfiltered public catalog view.
func DefaultFilters() Filters {
	return Filters{
		Category: domain.CategoryAll,
		SortKey:  domain.SortDefault,
		Page:     1,
		PageSize: PublicPageSize,
	}
}

// ParseBound converts a raw form value into an optional price bound.
// Non-numeric or empty input is treated as an absent bound.
func ParseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// PredicateEquals reports whether two filter sets select and order the same
// result, ignoring the page cursor. When this returns false the page must
// reset to 1: the old cursor may point past the end of the new result set.
func (f Filters) PredicateEquals(o Filters) bool {
	return f.Search == o.Search &&
		f.Category == o.Category &&
		boundEquals(f.MinPrice, o.MinPrice) &&
		boundEquals(f.MaxPrice, o.MaxPrice) &&
		f.SortKey == o.SortKey
}

func boundEquals(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// View is the derived, filtered/sorted/paginated subset of products.
type View struct {
	Items      []domain.Product
	Page       int
	TotalPages int
	TotalCount int
}

// titleCollator orders titles the way a storefront visitor expects,
// not by raw byte value.
var titleCollator = collate.New(language.English, collate.Loose)

// ComputeView applies the catalog pipeline to a raw product page in fixed
// order: text search, category, price bounds, sort, then local pagination.
// The order matters: each step operates on the output of the previous one.
func ComputeView(raw []domain.Product, f Filters) View {
	filtered := make([]domain.Product, 0, len(raw))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range raw {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if f.Category != "" && f.Category != domain.CategoryAll && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	// Stable: products with equal keys keep their input order.
	switch f.SortKey {
	case domain.SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case domain.SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case domain.SortNameAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return titleCollator.CompareString(filtered[i].Title, filtered[j].Title) < 0
		})
	case domain.SortNameDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return titleCollator.CompareString(filtered[i].Title, filtered[j].Title) > 0
		})
	}

	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = PublicPageSize
	}
	totalPages := pagination.TotalPages(len(filtered), pageSize)

	// A cursor past the end of a shrunk result set resets to page 1,
	// same rule as a predicate change. Never a silent out-of-range slice.
	page := f.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	return View{
		Items:      pagination.Slice(filtered, page, pageSize),
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(filtered),
	}
}
