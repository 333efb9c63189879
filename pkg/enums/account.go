package enums

// AccountSort splits cash-book rows into deposits and withdrawals.
type AccountSort int

const (
	AccountSortDeposit    AccountSort = 1
	AccountSortWithdrawal AccountSort = 2
)

// IsValid reports whether the value is a known AccountSort.
func (a AccountSort) IsValid() bool {
	return a == AccountSortDeposit || a == AccountSortWithdrawal
}

// ProjectAccountD2 is the mid-level project ledger account code.
type ProjectAccountD2 int

const (
	AccountD2Sale ProjectAccountD2 = 1
	AccountD2Levy ProjectAccountD2 = 2
)

// ProjectAccountD3 is the detail-level project ledger account code. Intake
// and refund codes come in adjacent pairs: refund = intake + 1.
type ProjectAccountD3 int

const (
	AccountD3SaleIntake ProjectAccountD3 = 1
	AccountD3SaleRefund ProjectAccountD3 = 2
	AccountD3LevyIntake ProjectAccountD3 = 4
	AccountD3LevyRefund ProjectAccountD3 = 5
)

// IntakeAccountD3Codes lists the detail codes that count toward a contract's
// paid total.
var IntakeAccountD3Codes = []ProjectAccountD3{AccountD3SaleIntake, AccountD3LevyIntake}

// IsIntake reports whether the code classifies money received.
func (d ProjectAccountD3) IsIntake() bool {
	return d == AccountD3SaleIntake || d == AccountD3LevyIntake
}

// Refund returns the paired refund code for an intake code.
func (d ProjectAccountD3) Refund() ProjectAccountD3 {
	return d + 1
}
