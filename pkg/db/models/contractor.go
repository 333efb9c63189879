package models

import (
	"time"

	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
)

// Contractor is the person (or entity) behind a contract. Qualification
// tracks registration standing; Status follows the subscription-to-release
// lifecycle.
type Contractor struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContractID      uuid.UUID              `gorm:"column:contract_id;type:uuid;not null;uniqueIndex"`
	Name            string                 `gorm:"column:name;not null"`
	BirthDate       *time.Time             `gorm:"column:birth_date"`
	Gender          *string                `gorm:"column:gender"`
	Qualification   string                 `gorm:"column:qualification;not null;default:'1'"`
	IsRegisted      bool                   `gorm:"column:is_registed;not null;default:false"`
	Status          enums.ContractorStatus `gorm:"column:status;type:text;not null;default:'subscribed'"`
	IsActive        bool                   `gorm:"column:is_active;not null;default:true"`
	ReservationDate *time.Time             `gorm:"column:reservation_date"`
	ContractDate    *time.Time             `gorm:"column:contract_date"`
	Note            string                 `gorm:"column:note;not null;default:''"`

	Address  *ContractorAddress  `gorm:"foreignKey:ContractorID"`
	Contacts []ContractorContact `gorm:"foreignKey:ContractorID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ContractorAddress keeps the registered and postal addresses for a
// contractor.
type ContractorAddress struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContractorID uuid.UUID `gorm:"column:contractor_id;type:uuid;not null;uniqueIndex"`
	IDZipcode    string    `gorm:"column:id_zipcode"`
	IDAddress1   string    `gorm:"column:id_address1"`
	IDAddress2   string    `gorm:"column:id_address2"`
	IDAddress3   string    `gorm:"column:id_address3"`
	DMZipcode    string    `gorm:"column:dm_zipcode"`
	DMAddress1   string    `gorm:"column:dm_address1"`
	DMAddress2   string    `gorm:"column:dm_address2"`
	DMAddress3   string    `gorm:"column:dm_address3"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ContractorContact is a phone/email record for a contractor.
type ContractorContact struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContractorID uuid.UUID `gorm:"column:contractor_id;type:uuid;not null"`
	Cell         string    `gorm:"column:cell"`
	Home         string    `gorm:"column:home"`
	Other        string    `gorm:"column:other"`
	Email        string    `gorm:"column:email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
