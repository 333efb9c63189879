package models

import (
	"time"

	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentPaymentOrder is one scheduled payment stage of a project.
// PayCode orders stages project-wide; several rows may share a PayCode when
// one stage collects two separately-booked items (PayTime disambiguates).
type InstallmentPaymentOrder struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID    uuid.UUID           `gorm:"column:project_id;type:uuid;not null"`
	PaySort      enums.PaySort       `gorm:"column:pay_sort;type:text;not null;default:'down_payment'"`
	PayCode      int                 `gorm:"column:pay_code;not null"`
	PayTime      int                 `gorm:"column:pay_time;not null"`
	PayRatio     decimal.NullDecimal `gorm:"column:pay_ratio;type:numeric(7,4)"`
	PayName      string              `gorm:"column:pay_name;not null"`
	AliasName    string              `gorm:"column:alias_name"`
	PayDueDate   *time.Time          `gorm:"column:pay_due_date"`
	ExtraDueDate *time.Time          `gorm:"column:extra_due_date"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OverDueRule is a per-project late-fee band. Nil term bounds mean an open
// interval on that side.
type OverDueRule struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID       `gorm:"column:project_id;type:uuid;not null"`
	TermStart *int            `gorm:"column:term_start"`
	TermEnd   *int            `gorm:"column:term_end"`
	RateYear  decimal.Decimal `gorm:"column:rate_year;type:numeric(4,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
