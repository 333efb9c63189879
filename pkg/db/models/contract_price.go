package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractPrice is the price snapshot taken when a contract is created or
// its units rebound. IsCachePrice marks values that fell back to an average
// tier rather than a floor-specific table row.
type ContractPrice struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ContractID   uuid.UUID `gorm:"column:contract_id;type:uuid;not null;uniqueIndex"`
	Price        int64     `gorm:"column:price;not null"`
	PriceBuild   *int64    `gorm:"column:price_build"`
	PriceLand    *int64    `gorm:"column:price_land"`
	PriceTax     *int64    `gorm:"column:price_tax"`
	DownPay      int64     `gorm:"column:down_pay;not null;default:0"`
	MiddlePay    int64     `gorm:"column:middle_pay;not null;default:0"`
	RemainPay    int64     `gorm:"column:remain_pay;not null;default:0"`
	IsCachePrice bool      `gorm:"column:is_cache_price;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
