package installments

import (
	"context"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes the schedule reads used by amount derivation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListInstallmentOrders(ctx context.Context, projectID uuid.UUID) ([]models.InstallmentPaymentOrder, error)
	FindDownPayment(ctx context.Context, orderGroupID, unitTypeID uuid.UUID) (*models.DownPayment, error)
	ListOverdueRules(ctx context.Context, projectID uuid.UUID) ([]models.OverDueRule, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an installments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListInstallmentOrders(ctx context.Context, projectID uuid.UUID) ([]models.InstallmentPaymentOrder, error) {
	var orders []models.InstallmentPaymentOrder
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("pay_code ASC, pay_time ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindDownPayment(ctx context.Context, orderGroupID, unitTypeID uuid.UUID) (*models.DownPayment, error) {
	var row models.DownPayment
	err := r.db.WithContext(ctx).
		Where("order_group_id = ? AND unit_type_id = ?", orderGroupID, unitTypeID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListOverdueRules(ctx context.Context, projectID uuid.UUID) ([]models.OverDueRule, error) {
	var rules []models.OverDueRule
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("term_start ASC NULLS FIRST").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
