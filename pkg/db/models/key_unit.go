package models

import (
	"time"

	"github.com/google/uuid"
)

// KeyUnit is the abstract inventory slot a contract binds to. ContractID is
// nil while the slot sits in available inventory; at most one active
// contract may hold a key unit at a time.
type KeyUnit struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID  uuid.UUID  `gorm:"column:project_id;type:uuid;not null"`
	UnitTypeID uuid.UUID  `gorm:"column:unit_type_id;type:uuid;not null"`
	UnitCode   string     `gorm:"column:unit_code;not null"`
	ContractID *uuid.UUID `gorm:"column:contract_id;type:uuid;uniqueIndex"`
	HouseUnit  *HouseUnit `gorm:"foreignKey:KeyUnitID"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
