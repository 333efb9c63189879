package enums

import "fmt"

// OrderGroupSort classifies a subscription round's pricing basis.
type OrderGroupSort string

const (
	// OrderGroupSortSale rounds sell units at the sale price.
	OrderGroupSortSale OrderGroupSort = "sale"
	// OrderGroupSortLevy rounds collect an assessed levy instead of a sale price.
	OrderGroupSortLevy OrderGroupSort = "levy"
)

var validOrderGroupSorts = []OrderGroupSort{
	OrderGroupSortSale,
	OrderGroupSortLevy,
}

// String implements fmt.Stringer.
func (s OrderGroupSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderGroupSort.
func (s OrderGroupSort) IsValid() bool {
	for _, candidate := range validOrderGroupSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// AccountD2 returns the mid-level ledger account code for the sort.
func (s OrderGroupSort) AccountD2() ProjectAccountD2 {
	if s == OrderGroupSortLevy {
		return AccountD2Levy
	}
	return AccountD2Sale
}

// IntakeD3 returns the detail-level intake account code for the sort.
func (s OrderGroupSort) IntakeD3() ProjectAccountD3 {
	if s == OrderGroupSortLevy {
		return AccountD3LevyIntake
	}
	return AccountD3SaleIntake
}

// ParseOrderGroupSort converts raw input into an OrderGroupSort.
func ParseOrderGroupSort(value string) (OrderGroupSort, error) {
	for _, candidate := range validOrderGroupSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order group sort %q", value)
}
