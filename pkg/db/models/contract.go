package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract binds a buyer to a key unit within an order group. SerialNumber
// is derived from the bound units and order group and is rewritten when the
// contract is terminated.
type Contract struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID    uuid.UUID  `gorm:"column:project_id;type:uuid;not null"`
	OrderGroupID uuid.UUID  `gorm:"column:order_group_id;type:uuid;not null"`
	UnitTypeID   uuid.UUID  `gorm:"column:unit_type_id;type:uuid;not null"`
	SerialNumber string     `gorm:"column:serial_number;not null;uniqueIndex"`
	Activation   bool       `gorm:"column:activation;not null;default:true"`
	IsSupCont    bool       `gorm:"column:is_sup_cont;not null;default:false"`
	SupContDate  *time.Time `gorm:"column:sup_cont_date"`

	KeyUnit       *KeyUnit       `gorm:"foreignKey:ContractID"`
	ContractPrice *ContractPrice `gorm:"foreignKey:ContractID"`
	Contractor    *Contractor    `gorm:"foreignKey:ContractID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
