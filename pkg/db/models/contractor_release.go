package models

import (
	"time"

	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
)

// ContractorRelease is a termination/disqualification case for a contractor.
// Once Status reaches a terminal value the side effects (unit unbinding,
// refund reclassification, serial rewrite) have been applied and must not
// run again.
type ContractorRelease struct {
	ID                     uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID              uuid.UUID           `gorm:"column:project_id;type:uuid;not null"`
	ContractorID           uuid.UUID           `gorm:"column:contractor_id;type:uuid;not null"`
	Status                 enums.ReleaseStatus `gorm:"column:status;not null;default:1"`
	RefundAmount           int64               `gorm:"column:refund_amount;not null;default:0"`
	RefundAccountBank      string              `gorm:"column:refund_account_bank"`
	RefundAccountNumber    string              `gorm:"column:refund_account_number"`
	RefundAccountDepositor string              `gorm:"column:refund_account_depositor"`
	RequestDate            time.Time           `gorm:"column:request_date;not null"`
	CompletionDate         *time.Time          `gorm:"column:completion_date"`
	Note                   string              `gorm:"column:note;not null;default:''"`
	CreatedAt              time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
