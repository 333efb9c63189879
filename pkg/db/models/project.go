package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a development under management; it owns order groups, unit
// types, price tables and the installment schedule.
type Project struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Kind      string     `gorm:"column:kind"`
	StartYear int        `gorm:"column:start_year"`
	Address   *string    `gorm:"column:address"`
	AreaUsage *string    `gorm:"column:area_usage"`
	BuildSize *string    `gorm:"column:build_size"`
	NumUnits  int        `gorm:"column:num_units;not null;default:0"`
	OpenDate  *time.Time `gorm:"column:open_date"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
