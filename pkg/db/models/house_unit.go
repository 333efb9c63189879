package models

import (
	"time"

	"github.com/google/uuid"
)

// HouseUnit is the concrete building/floor assignment. KeyUnitID is nil
// until a contract picks the physical unit; a house unit references at most
// one key unit at a time.
type HouseUnit struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID      uuid.UUID  `gorm:"column:project_id;type:uuid;not null"`
	UnitTypeID     uuid.UUID  `gorm:"column:unit_type_id;type:uuid;not null"`
	FloorTypeID    uuid.UUID  `gorm:"column:floor_type_id;type:uuid;not null"`
	BuildingNumber string     `gorm:"column:building_number;not null"`
	RoomNumber     string     `gorm:"column:room_number;not null"`
	FloorNo        int        `gorm:"column:floor_no;not null;default:0"`
	KeyUnitID      *uuid.UUID `gorm:"column:key_unit_id;type:uuid;uniqueIndex"`
	IsHold         bool       `gorm:"column:is_hold;not null;default:false"`
	HoldReason     *string    `gorm:"column:hold_reason"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
