package releases

import (
	"context"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes the persistence surface of termination processing.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateRelease(ctx context.Context, release *models.ContractorRelease) (*models.ContractorRelease, error)
	FindRelease(ctx context.Context, id uuid.UUID) (*models.ContractorRelease, error)
	FindReleaseForUpdate(ctx context.Context, id uuid.UUID) (*models.ContractorRelease, error)
	SaveRelease(ctx context.Context, release *models.ContractorRelease) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ContractorRelease, error)

	FindContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	SaveContractor(ctx context.Context, contractor *models.Contractor) error
	FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	SaveContract(ctx context.Context, contract *models.Contract) error

	FindKeyUnitByContract(ctx context.Context, contractID uuid.UUID) (*models.KeyUnit, error)
	SetKeyUnitContract(ctx context.Context, keyUnitID uuid.UUID, contractID *uuid.UUID) error
	FindHouseUnitByKeyUnit(ctx context.Context, keyUnitID uuid.UUID) (*models.HouseUnit, error)
	SetHouseUnitKeyUnit(ctx context.Context, houseUnitID uuid.UUID, keyUnitID *uuid.UUID) error

	ListDepositPayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error)
	SaveCashBook(ctx context.Context, row *models.ProjectCashBook) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a releases repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateRelease(ctx context.Context, release *models.ContractorRelease) (*models.ContractorRelease, error) {
	if err := r.db.WithContext(ctx).Create(release).Error; err != nil {
		return nil, err
	}
	return release, nil
}

func (r *repository) FindRelease(ctx context.Context, id uuid.UUID) (*models.ContractorRelease, error) {
	var release models.ContractorRelease
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&release).Error
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func (r *repository) FindReleaseForUpdate(ctx context.Context, id uuid.UUID) (*models.ContractorRelease, error) {
	var release models.ContractorRelease
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&release).Error
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func (r *repository) SaveRelease(ctx context.Context, release *models.ContractorRelease) error {
	return r.db.WithContext(ctx).
		Model(&models.ContractorRelease{}).
		Where("id = ?", release.ID).
		Updates(map[string]any{
			"status":                   release.Status,
			"refund_amount":            release.RefundAmount,
			"refund_account_bank":      release.RefundAccountBank,
			"refund_account_number":    release.RefundAccountNumber,
			"refund_account_depositor": release.RefundAccountDepositor,
			"completion_date":          release.CompletionDate,
			"note":                     release.Note,
		}).Error
}

func (r *repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ContractorRelease, error) {
	var rows []models.ContractorRelease
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("request_date DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	var contractor models.Contractor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&contractor).Error
	if err != nil {
		return nil, err
	}
	return &contractor, nil
}

func (r *repository) SaveContractor(ctx context.Context, contractor *models.Contractor) error {
	return r.db.WithContext(ctx).
		Model(&models.Contractor{}).
		Where("id = ?", contractor.ID).
		Updates(map[string]any{
			"is_registed": contractor.IsRegisted,
			"is_active":   contractor.IsActive,
			"status":      contractor.Status,
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

func (r *repository) SaveContract(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ?", contract.ID).
		Updates(map[string]any{
			"serial_number": contract.SerialNumber,
			"activation":    contract.Activation,
		}).Error
}

func (r *repository) FindKeyUnitByContract(ctx context.Context, contractID uuid.UUID) (*models.KeyUnit, error) {
	var unit models.KeyUnit
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *repository) SetKeyUnitContract(ctx context.Context, keyUnitID uuid.UUID, contractID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.KeyUnit{}).
		Where("id = ?", keyUnitID).
		Update("contract_id", contractID).Error
}

func (r *repository) FindHouseUnitByKeyUnit(ctx context.Context, keyUnitID uuid.UUID) (*models.HouseUnit, error) {
	var unit models.HouseUnit
	err := r.db.WithContext(ctx).
		Where("key_unit_id = ?", keyUnitID).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *repository) SetHouseUnitKeyUnit(ctx context.Context, houseUnitID uuid.UUID, keyUnitID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.HouseUnit{}).
		Where("id = ?", houseUnitID).
		Update("key_unit_id", keyUnitID).Error
}

func (r *repository) ListDepositPayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error) {
	var rows []models.ProjectCashBook
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Where("sort = ?", enums.AccountSortDeposit).
		Order("deal_date ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SaveCashBook(ctx context.Context, row *models.ProjectCashBook) error {
	return r.db.WithContext(ctx).
		Model(&models.ProjectCashBook{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"project_account_d3":   row.ProjectAccountD3,
			"refund_contractor_id": row.RefundContractorID,
			"note":                 row.Note,
		}).Error
}
