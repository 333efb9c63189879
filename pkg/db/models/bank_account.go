package models

import (
	"time"

	"github.com/google/uuid"
)

// BankCode is a lookup row for bank institutions.
type BankCode struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code string    `gorm:"column:code;not null;uniqueIndex"`
	Name string    `gorm:"column:name;not null"`
}

// ProjectBankAccount is a project-owned deposit account that ledger lines
// can reference.
type ProjectBankAccount struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID  uuid.UUID  `gorm:"column:project_id;type:uuid;not null"`
	BankCodeID uuid.UUID  `gorm:"column:bank_code_id;type:uuid;not null"`
	Alias      string     `gorm:"column:alias;not null"`
	Number     string     `gorm:"column:number"`
	Holder     string     `gorm:"column:holder"`
	OpenDate   *time.Time `gorm:"column:open_date"`
	Note       string     `gorm:"column:note;not null;default:''"`
	IsHide     bool       `gorm:"column:is_hide;not null;default:false"`
	IsInactive bool       `gorm:"column:is_inactive;not null;default:false"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
