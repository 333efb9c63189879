package payments

import (
	"context"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes ledger reads scoped to a single contract.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	FindBoundHouseUnit(ctx context.Context, contractID uuid.UUID) (*models.HouseUnit, error)
	SumIntakeIncome(ctx context.Context, contractID uuid.UUID) (int64, error)
	ListPaymentOrders(ctx context.Context, projectID uuid.UUID) ([]models.InstallmentPaymentOrder, error)
	ListIntakePayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *repository) FindBoundHouseUnit(ctx context.Context, contractID uuid.UUID) (*models.HouseUnit, error) {
	var unit models.HouseUnit
	err := r.db.WithContext(ctx).
		Joins("JOIN key_units ON key_units.id = house_units.key_unit_id").
		Where("key_units.contract_id = ?", contractID).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *repository) SumIntakeIncome(ctx context.Context, contractID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectCashBook{}).
		Select("COALESCE(SUM(income), 0)").
		Where("contract_id = ?", contractID).
		Where("sort = ?", enums.AccountSortDeposit).
		Where("project_account_d3 IN ?", enums.IntakeAccountD3Codes).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) ListPaymentOrders(ctx context.Context, projectID uuid.UUID) ([]models.InstallmentPaymentOrder, error) {
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

func (r *repository) ListIntakePayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error) {
	var rows []models.ProjectCashBook
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Where("project_account_d3 IN ?", enums.IntakeAccountD3Codes).
		Order("deal_date ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
