package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectIncBudget is the income-budget row per (order group, unit type);
// its average price is the mid-specificity pricing tier.
type ProjectIncBudget struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID    uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	OrderGroupID uuid.UUID `gorm:"column:order_group_id;type:uuid;not null"`
	UnitTypeID   uuid.UUID `gorm:"column:unit_type_id;type:uuid;not null"`
	ItemName     string    `gorm:"column:item_name"`
	AveragePrice int64     `gorm:"column:average_price;not null;default:0"`
	Quantity     int       `gorm:"column:quantity;not null;default:0"`
	BudgetAmount int64     `gorm:"column:budget_amount;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
