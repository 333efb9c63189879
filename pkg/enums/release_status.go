package enums

import "fmt"

// ReleaseStatus is an ordered code describing how far a termination case has
// progressed. Values at or beyond ReleaseStatusCompleted are terminal.
type ReleaseStatus int

const (
	ReleaseStatusRequested ReleaseStatus = iota + 1
	ReleaseStatusInReview
	ReleaseStatusRefundPending
	ReleaseStatusCompleted
	ReleaseStatusDisqualified
)

// IsTerminal reports whether the status has crossed the processing-complete
// threshold after which termination side effects must not be re-run.
func (s ReleaseStatus) IsTerminal() bool {
	return s >= ReleaseStatusCompleted
}

// IsValid reports whether the value is a known ReleaseStatus.
func (s ReleaseStatus) IsValid() bool {
	return s >= ReleaseStatusRequested && s <= ReleaseStatusDisqualified
}

// String implements fmt.Stringer.
func (s ReleaseStatus) String() string {
	switch s {
	case ReleaseStatusRequested:
		return "requested"
	case ReleaseStatusInReview:
		return "in_review"
	case ReleaseStatusRefundPending:
		return "refund_pending"
	case ReleaseStatusCompleted:
		return "completed"
	case ReleaseStatusDisqualified:
		return "disqualified"
	default:
		return fmt.Sprintf("release_status(%d)", int(s))
	}
}
