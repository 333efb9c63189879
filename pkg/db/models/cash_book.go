package models

import (
	"time"

	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
)

// ProjectCashBook is one ledger line of project cash flow. Payment rows
// carry a contract reference, an intake account code and usually an
// installment order; a release flips the account code to its refund pair.
type ProjectCashBook struct {
	ID                 uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID          uuid.UUID              `gorm:"column:project_id;type:uuid;not null"`
	Sort               enums.AccountSort      `gorm:"column:sort;not null;default:1"`
	ProjectAccountD2   enums.ProjectAccountD2 `gorm:"column:project_account_d2;not null"`
	ProjectAccountD3   enums.ProjectAccountD3 `gorm:"column:project_account_d3;not null"`
	ContractID         *uuid.UUID             `gorm:"column:contract_id;type:uuid;index"`
	InstallmentOrderID *uuid.UUID             `gorm:"column:installment_order_id;type:uuid"`
	RefundContractorID *uuid.UUID             `gorm:"column:refund_contractor_id;type:uuid"`
	BankAccountID      *uuid.UUID             `gorm:"column:bank_account_id;type:uuid"`
	Content            string                 `gorm:"column:content"`
	Trader             string                 `gorm:"column:trader"`
	Income             int64                  `gorm:"column:income;not null;default:0"`
	Outlay             int64                  `gorm:"column:outlay;not null;default:0"`
	Note               string                 `gorm:"column:note;not null;default:''"`
	DealDate           time.Time              `gorm:"column:deal_date;not null"`
	CreatedAt          time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
