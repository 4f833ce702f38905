package enums

import "fmt"

// MerchCategory is the merchandise category enum in Postgres.
type MerchCategory string

const (
	MerchCategoryClothing    MerchCategory = "clothing"
	MerchCategoryAccessories MerchCategory = "accessories"
)

var validMerchCategories = []MerchCategory{
	MerchCategoryClothing,
	MerchCategoryAccessories,
}

// String implements fmt.Stringer.
func (m MerchCategory) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MerchCategory.
func (m MerchCategory) IsValid() bool {
	for _, candidate := range validMerchCategories {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMerchCategory converts raw input into a MerchCategory.
func ParseMerchCategory(value string) (MerchCategory, error) {
	for _, candidate := range validMerchCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid merch category %q", value)
}
