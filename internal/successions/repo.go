package successions

import (
	"context"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes the persistence surface of ownership transfers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateSuccession(ctx context.Context, succession *models.Succession) (*models.Succession, error)
	FindSuccession(ctx context.Context, id uuid.UUID) (*models.Succession, error)
	SaveSuccession(ctx context.Context, succession *models.Succession) error
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Succession, error)

	CreateBuyer(ctx context.Context, buyer *models.SuccessionBuyer) (*models.SuccessionBuyer, error)
	SaveBuyer(ctx context.Context, buyer *models.SuccessionBuyer) error

	FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	FindContractorByContract(ctx context.Context, contractID uuid.UUID) (*models.Contractor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a successions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSuccession(ctx context.Context, succession *models.Succession) (*models.Succession, error) {
	if err := r.db.WithContext(ctx).Create(succession).Error; err != nil {
		return nil, err
	}
	return succession, nil
}

func (r *repository) FindSuccession(ctx context.Context, id uuid.UUID) (*models.Succession, error) {
	var succession models.Succession
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("id = ?", id).
		First(&succession).Error
	if err != nil {
		return nil, err
	}
	return &succession, nil
}

func (r *repository) SaveSuccession(ctx context.Context, succession *models.Succession) error {
	return r.db.WithContext(ctx).
		Model(&models.Succession{}).
		Where("id = ?", succession.ID).
		Updates(map[string]any{
			"apply_date":    succession.ApplyDate,
			"trading_date":  succession.TradingDate,
			"approval_date": succession.ApprovalDate,
			"is_approval":   succession.IsApproval,
			"note":          succession.Note,
		}).Error
}

func (r *repository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Succession, error) {
	var rows []models.Succession
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("contract_id = ?", contractID).
		Order("apply_date DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CreateBuyer(ctx context.Context, buyer *models.SuccessionBuyer) (*models.SuccessionBuyer, error) {
	if err := r.db.WithContext(ctx).Create(buyer).Error; err != nil {
		return nil, err
	}
	return buyer, nil
}

func (r *repository) SaveBuyer(ctx context.Context, buyer *models.SuccessionBuyer) error {
	return r.db.WithContext(ctx).
		Model(&models.SuccessionBuyer{}).
		Where("id = ?", buyer.ID).
		Updates(map[string]any{
			"name":        buyer.Name,
			"birth_date":  buyer.BirthDate,
			"gender":      buyer.Gender,
			"id_zipcode":  buyer.IDZipcode,
			"id_address1": buyer.IDAddress1,
			"id_address2": buyer.IDAddress2,
			"id_address3": buyer.IDAddress3,
			"dm_zipcode":  buyer.DMZipcode,
			"dm_address1": buyer.DMAddress1,
			"dm_address2": buyer.DMAddress2,
			"dm_address3": buyer.DMAddress3,
			"cell":        buyer.Cell,
			"home":        buyer.Home,
			"other":       buyer.Other,
			"email":       buyer.Email,
		}).Error
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

func (r *repository) FindContractorByContract(ctx context.Context, contractID uuid.UUID) (*models.Contractor, error) {
	var contractor models.Contractor
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		First(&contractor).Error
	if err != nil {
		return nil, err
	}
	return &contractor, nil
}
