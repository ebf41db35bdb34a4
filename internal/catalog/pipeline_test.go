package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
)

func product(id, title, category string, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    title,
		Category: category,
		Price:    price,
	}
}

// fixture: 15 products, 5 in category JAR priced 10..50.
func fixtureProducts() []domain.Product {
	var out []domain.Product
	for i, price := range []float64{10, 20, 30, 40, 50} {
		out = append(out, product(fmt.Sprintf("jar-%d", i), fmt.Sprintf("Amber Jar %d", i), domain.CategoryJar, price))
	}
	for i := 0; i < 5; i++ {
		out = append(out, product(fmt.Sprintf("normal-%d", i), fmt.Sprintf("Classic Stick %d", i), domain.CategoryNormal, float64(5+i)))
	}
	for i := 0; i < 5; i++ {
		out = append(out, product(fmt.Sprintf("lux-%d", i), fmt.Sprintf("Velvet Luxe %d", i), domain.CategoryLuxury, float64(100+i*10)))
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }

func TestComputeView_NoFilters(t *testing.T) {
	raw := fixtureProducts()
	view := ComputeView(raw, DefaultFilters())

	assert.Len(t, view.Items, 12)
	assert.Equal(t, 15, view.TotalCount)
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 1, view.Page)
}

func TestComputeView_CategoryAndPriceBounds(t *testing.T) {
	f := DefaultFilters()
	f.Category = domain.CategoryJar
	f.MinPrice = floatPtr(15)
	f.MaxPrice = floatPtr(45)
	f.SortKey = domain.SortPriceLow

	view := ComputeView(fixtureProducts(), f)

	require.Len(t, view.Items, 3)
	assert.Equal(t, []float64{20, 30, 40}, []float64{
		view.Items[0].Price, view.Items[1].Price, view.Items[2].Price,
	})
	assert.Equal(t, 1, view.TotalPages)
}

func TestComputeView_PriceBoundsInclusive(t *testing.T) {
	f := DefaultFilters()
	f.Category = domain.CategoryJar
	f.MinPrice = floatPtr(10)
	f.MaxPrice = floatPtr(50)

	view := ComputeView(fixtureProducts(), f)
	assert.Equal(t, 5, view.TotalCount)
}

func TestComputeView_SearchCaseInsensitive(t *testing.T) {
	f := DefaultFilters()
	f.Search = "aMbEr"

	view := ComputeView(fixtureProducts(), f)
	assert.Equal(t, 5, view.TotalCount)
	for _, p := range view.Items {
		assert.Contains(t, p.Title, "Amber")
	}
}

func TestComputeView_WhitespaceSearchIsNoop(t *testing.T) {
	f := DefaultFilters()
	f.Search = "   "

	view := ComputeView(fixtureProducts(), f)
	assert.Equal(t, 15, view.TotalCount)
}

func TestComputeView_OutputNeverExceedsInput(t *testing.T) {
	raw := fixtureProducts()
	filters := []Filters{
		{Category: domain.CategoryAll, Page: 1, PageSize: 12},
		{Search: "jar", Category: domain.CategoryAll, Page: 1, PageSize: 12},
		{Category: domain.CategoryLuxury, MinPrice: floatPtr(100), Page: 1, PageSize: 12},
		{Category: domain.CategoryNormal, MaxPrice: floatPtr(7), SortKey: domain.SortPriceHigh, Page: 1, PageSize: 12},
	}

	for _, f := range filters {
		view := ComputeView(raw, f)
		assert.LessOrEqual(t, len(view.Items), len(raw))
		assert.LessOrEqual(t, view.TotalCount, len(raw))

		// Every surviving item satisfies all active predicates.
		for _, p := range view.Items {
			if f.Category != domain.CategoryAll && f.Category != "" {
				assert.Equal(t, f.Category, p.Category)
			}
			if f.MinPrice != nil {
				assert.GreaterOrEqual(t, p.Price, *f.MinPrice)
			}
			if f.MaxPrice != nil {
				assert.LessOrEqual(t, p.Price, *f.MaxPrice)
			}
		}
	}
}

func TestComputeView_TotalPagesNeverZero(t *testing.T) {
	f := DefaultFilters()
	f.Search = "no such product"

	view := ComputeView(fixtureProducts(), f)
	assert.Equal(t, 0, view.TotalCount)
	assert.Equal(t, 1, view.TotalPages)
	assert.Empty(t, view.Items)
}

func TestComputeView_PagePastEndResetsToOne(t *testing.T) {
	f := DefaultFilters()
	f.Category = domain.CategoryJar
	f.Page = 9

	view := ComputeView(fixtureProducts(), f)
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Items, 5)
}

func TestComputeView_SortIdempotent(t *testing.T) {
	f := DefaultFilters()
	f.SortKey = domain.SortNameAsc
	f.PageSize = 100

	once := ComputeView(fixtureProducts(), f)
	twice := ComputeView(once.Items, f)
	assert.Equal(t, once.Items, twice.Items)
}

func TestComputeView_SortStable(t *testing.T) {
	raw := []domain.Product{
		product("a", "First", domain.CategoryJar, 10),
		product("b", "Second", domain.CategoryJar, 10),
		product("c", "Third", domain.CategoryJar, 10),
	}

	f := DefaultFilters()
	f.SortKey = domain.SortPriceLow

	view := ComputeView(raw, f)
	require.Len(t, view.Items, 3)
	assert.Equal(t, "a", view.Items[0].ID)
	assert.Equal(t, "b", view.Items[1].ID)
	assert.Equal(t, "c", view.Items[2].ID)
}

func TestComputeView_SortNameDesc(t *testing.T) {
	raw := []domain.Product{
		product("a", "Amber", domain.CategoryJar, 10),
		product("z", "Zest", domain.CategoryJar, 20),
		product("m", "Moss", domain.CategoryJar, 30),
	}

	f := DefaultFilters()
	f.SortKey = domain.SortNameDesc

	view := ComputeView(raw, f)
	require.Len(t, view.Items, 3)
	assert.Equal(t, "Zest", view.Items[0].Title)
	assert.Equal(t, "Moss", view.Items[1].Title)
	assert.Equal(t, "Amber", view.Items[2].Title)
}

func TestComputeView_LocalPaginationWindows(t *testing.T) {
	f := DefaultFilters()
	f.Page = 2

	view := ComputeView(fixtureProducts(), f)
	assert.Len(t, view.Items, 3) // 15 items, page size 12
	assert.Equal(t, 2, view.Page)
}

func TestParseBound(t *testing.T) {
	assert.Nil(t, ParseBound(""))
	assert.Nil(t, ParseBound("   "))
	assert.Nil(t, ParseBound("abc"))

	b := ParseBound("12.5")
	require.NotNil(t, b)
	assert.Equal(t, 12.5, *b)

	b = ParseBound(" 40 ")
	require.NotNil(t, b)
	assert.Equal(t, 40.0, *b)
}

func TestPredicateEquals(t *testing.T) {
	a := DefaultFilters()
	b := DefaultFilters()
	assert.True(t, a.PredicateEquals(b))

	// The page cursor is not part of the predicate.
	b.Page = 3
	assert.True(t, a.PredicateEquals(b))

	b = DefaultFilters()
	b.Search = "amber"
	assert.False(t, a.PredicateEquals(b))

	b = DefaultFilters()
	b.MinPrice = floatPtr(10)
	assert.False(t, a.PredicateEquals(b))

	a.MinPrice = floatPtr(10)
	assert.True(t, a.PredicateEquals(b))

	b.SortKey = domain.SortPriceHigh
	assert.False(t, a.PredicateEquals(b))
}
