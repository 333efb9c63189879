package models

import (
	"time"

	"github.com/google/uuid"
)

// Succession transfers a contract's rights from the current contractor to a
// buyer. The seller is marked transferred while the case is pending;
// approval finalizes the handover.
type Succession struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContractID   uuid.UUID  `gorm:"column:contract_id;type:uuid;not null"`
	SellerID     uuid.UUID  `gorm:"column:seller_id;type:uuid;not null"`
	BuyerID      uuid.UUID  `gorm:"column:buyer_id;type:uuid;not null"`
	ApplyDate    time.Time  `gorm:"column:apply_date;not null"`
	TradingDate  time.Time  `gorm:"column:trading_date;not null"`
	ApprovalDate *time.Time `gorm:"column:approval_date"`
	IsApproval   bool       `gorm:"column:is_approval;not null;default:false"`
	Note         string     `gorm:"column:note;not null;default:''"`

	Buyer *SuccessionBuyer `gorm:"foreignKey:ID;references:BuyerID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SuccessionBuyer holds the incoming buyer's identity and contact details
// until the succession is approved.
type SuccessionBuyer struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	BirthDate *time.Time `gorm:"column:birth_date"`
	Gender    *string    `gorm:"column:gender"`

	IDZipcode  string `gorm:"column:id_zipcode"`
	IDAddress1 string `gorm:"column:id_address1"`
	IDAddress2 string `gorm:"column:id_address2"`
	IDAddress3 string `gorm:"column:id_address3"`
	DMZipcode  string `gorm:"column:dm_zipcode"`
	DMAddress1 string `gorm:"column:dm_address1"`
	DMAddress2 string `gorm:"column:dm_address2"`
	DMAddress3 string `gorm:"column:dm_address3"`

	Cell  string `gorm:"column:cell"`
	Home  string `gorm:"column:home"`
	Other string `gorm:"column:other"`
	Email string `gorm:"column:email"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
