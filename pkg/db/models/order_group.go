package models

import (
	"time"

	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
)

// OrderGroup is a named subscription round within a project. Its sort
// decides whether contracts in the round are priced as sales or levies,
// which in turn picks the ledger account pair for their payments.
type OrderGroup struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID   uuid.UUID            `gorm:"column:project_id;type:uuid;not null"`
	OrderNumber int                  `gorm:"column:order_number;not null"`
	Sort        enums.OrderGroupSort `gorm:"column:sort;type:text;not null;default:'sale'"`
	Name        string               `gorm:"column:name;not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
