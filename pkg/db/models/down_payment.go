package models

import (
	"time"

	"github.com/google/uuid"
)

// DownPayment overrides the ratio-derived down-payment amount with a fixed
// per-installment amount for a (order group, unit type) pair.
type DownPayment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID      uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	OrderGroupID   uuid.UUID `gorm:"column:order_group_id;type:uuid;not null"`
	UnitTypeID     uuid.UUID `gorm:"column:unit_type_id;type:uuid;not null"`
	NumberPayments int       `gorm:"column:number_payments;not null"`
	PaymentAmount  int64     `gorm:"column:payment_amount;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
