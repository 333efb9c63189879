package models

import (
	"time"

	"github.com/google/uuid"
)

// SalesPriceByGT is the most specific price override, keyed by order group,
// unit type and floor type. Breakdown fields may be null even when a row
// matches.
type SalesPriceByGT struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID       uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	OrderGroupID    uuid.UUID `gorm:"column:order_group_id;type:uuid;not null"`
	UnitTypeID      uuid.UUID `gorm:"column:unit_type_id;type:uuid;not null"`
	UnitFloorTypeID uuid.UUID `gorm:"column:unit_floor_type_id;type:uuid;not null"`
	PriceBuild      *int64    `gorm:"column:price_build"`
	PriceLand       *int64    `gorm:"column:price_land"`
	PriceTax        *int64    `gorm:"column:price_tax"`
	Price           int64     `gorm:"column:price;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
