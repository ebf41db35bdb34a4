package domain

// Product category constants.
const (
	CategoryAll    = "ALL"
	CategoryJar    = "JAR"
	CategoryNormal = "NORMAL"
	CategoryLuxury = "LUXURY"
)

// Sort key constants for the catalog view.
const (
	SortDefault   = "default"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// Product represents a product in the catalog. The server is authoritative;
// the client only ever holds a transient page of these.
type Product struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Fragrance   string   `json:"fragrance,omitempty"`
	Size        string   `json:"size"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	ImageURLs   []string `json:"imageUrls"`
}

// PrimaryImage returns the first image URL, or empty if none.
func (p Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}

// Categories returns the set of product categories, without the ALL sentinel.
func Categories() []string {
	return []string{CategoryJar, CategoryNormal, CategoryLuxury}
}

// FilterCategories returns the categories offered by the filter bar,
// the ALL sentinel first.
func FilterCategories() []string {
	return append([]string{CategoryAll}, Categories()...)
}

// IsValidCategory checks whether the given category is a real product
// category. The ALL sentinel is not one.
func IsValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// SortKeys returns the sort keys offered by the catalog view.
func SortKeys() []string {
	return []string{SortDefault, SortPriceLow, SortPriceHigh, SortNameAsc, SortNameDesc}
}

// IsValidSortKey checks whether the given sort key is known. The empty
// string is valid and means no sorting.
func IsValidSortKey(key string) bool {
	if key == "" {
		return true
	}
	for _, k := range SortKeys() {
		if k == key {
			return true
		}
	}
	return false
}
