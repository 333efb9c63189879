package models

import (
	"time"

	"github.com/google/uuid"
)

// UnitType is a unit category (floor plan) within a project. AveragePrice is
// the last-resort pricing tier when no override row matches.
type UnitType struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID    uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	Name         string    `gorm:"column:name;not null"`
	Color        string    `gorm:"column:color"`
	ActualArea   *float64  `gorm:"column:actual_area"`
	SupplyArea   *float64  `gorm:"column:supply_area"`
	ContractArea *float64  `gorm:"column:contract_area"`
	AveragePrice int64     `gorm:"column:average_price;not null;default:0"`
	NumUnit      int       `gorm:"column:num_unit;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// UnitFloorType classifies floors for floor-specific pricing (e.g. low,
// standard, royal).
type UnitFloorType struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID `gorm:"column:project_id;type:uuid;not null"`
	SortNo    int       `gorm:"column:sort_no;not null;default:0"`
	AliasName string    `gorm:"column:alias_name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
