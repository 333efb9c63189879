package enums

import "fmt"

// PaySort names the kind of an installment payment stage.
type PaySort string

const (
	PaySortDown   PaySort = "down_payment"
	PaySortMiddle PaySort = "middle_payment"
	PaySortRemain PaySort = "remainder"
)

var validPaySorts = []PaySort{
	PaySortDown,
	PaySortMiddle,
	PaySortRemain,
}

// String implements fmt.Stringer.
func (p PaySort) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaySort.
func (p PaySort) IsValid() bool {
	for _, candidate := range validPaySorts {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaySort converts raw input into a PaySort.
func ParsePaySort(value string) (PaySort, error) {
	for _, candidate := range validPaySorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pay sort %q", value)
}
