package pricing

import (
	"context"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes the reads used by the tiered price lookup.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSalesPrice(ctx context.Context, orderGroupID, unitTypeID, floorTypeID uuid.UUID) (*models.SalesPriceByGT, error)
	FindIncBudget(ctx context.Context, orderGroupID, unitTypeID uuid.UUID) (*models.ProjectIncBudget, error)
	FindUnitType(ctx context.Context, unitTypeID uuid.UUID) (*models.UnitType, error)
	FindHouseUnit(ctx context.Context, houseUnitID uuid.UUID) (*models.HouseUnit, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindSalesPrice(ctx context.Context, orderGroupID, unitTypeID, floorTypeID uuid.UUID) (*models.SalesPriceByGT, error) {
	var row models.SalesPriceByGT
	err := r.db.WithContext(ctx).
		Where("order_group_id = ? AND unit_type_id = ? AND unit_floor_type_id = ?", orderGroupID, unitTypeID, floorTypeID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindIncBudget(ctx context.Context, orderGroupID, unitTypeID uuid.UUID) (*models.ProjectIncBudget, error) {
	var row models.ProjectIncBudget
	err := r.db.WithContext(ctx).
		Where("order_group_id = ? AND unit_type_id = ?", orderGroupID, unitTypeID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindUnitType(ctx context.Context, unitTypeID uuid.UUID) (*models.UnitType, error) {
	var row models.UnitType
	err := r.db.WithContext(ctx).
		Where("id = ?", unitTypeID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindHouseUnit(ctx context.Context, houseUnitID uuid.UUID) (*models.HouseUnit, error) {
	var row models.HouseUnit
	err := r.db.WithContext(ctx).
		Where("id = ?", houseUnitID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
