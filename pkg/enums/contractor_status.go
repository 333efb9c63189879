package enums

import "fmt"

// ContractorStatus tracks where a buyer stands in the sales pipeline.
type ContractorStatus string

const (
	ContractorStatusSubscribed  ContractorStatus = "subscribed"
	ContractorStatusContracted  ContractorStatus = "contracted"
	ContractorStatusTransferred ContractorStatus = "transferred"
	ContractorStatusReleased    ContractorStatus = "released"
)

var validContractorStatuses = []ContractorStatus{
	ContractorStatusSubscribed,
	ContractorStatusContracted,
	ContractorStatusTransferred,
	ContractorStatusReleased,
}

// String implements fmt.Stringer.
func (c ContractorStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ContractorStatus.
func (c ContractorStatus) IsValid() bool {
	for _, candidate := range validContractorStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContractorStatus converts raw input into a ContractorStatus.
func ParseContractorStatus(value string) (ContractorStatus, error) {
	for _, candidate := range validContractorStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contractor status %q", value)
}
