package contracts

import (
	"context"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes the contract aggregate's persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error)
	FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	SaveContract(ctx context.Context, contract *models.Contract) error
	ListContracts(ctx context.Context, projectID uuid.UUID, params pagination.Params, filters ListFilters) (*ContractList, error)
	ListActiveContracts(ctx context.Context, projectID uuid.UUID) ([]models.Contract, error)

	FindKeyUnitForUpdate(ctx context.Context, id uuid.UUID) (*models.KeyUnit, error)
	FindKeyUnitByContract(ctx context.Context, contractID uuid.UUID) (*models.KeyUnit, error)
	SetKeyUnitContract(ctx context.Context, keyUnitID uuid.UUID, contractID *uuid.UUID) error

	FindHouseUnitForUpdate(ctx context.Context, id uuid.UUID) (*models.HouseUnit, error)
	FindHouseUnitByKeyUnit(ctx context.Context, keyUnitID uuid.UUID) (*models.HouseUnit, error)
	SetHouseUnitKeyUnit(ctx context.Context, houseUnitID uuid.UUID, keyUnitID *uuid.UUID) error

	FindContractPrice(ctx context.Context, contractID uuid.UUID) (*models.ContractPrice, error)
	CreateContractPrice(ctx context.Context, price *models.ContractPrice) error
	SaveContractPrice(ctx context.Context, price *models.ContractPrice) error

	CreateContractor(ctx context.Context, contractor *models.Contractor) error
	FindContractorByContract(ctx context.Context, contractID uuid.UUID) (*models.Contractor, error)
	SaveContractor(ctx context.Context, contractor *models.Contractor) error

	CreateContractorAddress(ctx context.Context, address *models.ContractorAddress) error
	FindAddressByContractor(ctx context.Context, contractorID uuid.UUID) (*models.ContractorAddress, error)
	SaveContractorAddress(ctx context.Context, address *models.ContractorAddress) error

	CreateContractorContact(ctx context.Context, contact *models.ContractorContact) error
	FindContactByContractor(ctx context.Context, contractorID uuid.UUID) (*models.ContractorContact, error)
	SaveContractorContact(ctx context.Context, contact *models.ContractorContact) error

	FindOrderGroup(ctx context.Context, id uuid.UUID) (*models.OrderGroup, error)
	CreateCashBook(ctx context.Context, row *models.ProjectCashBook) error
	FindCashBook(ctx context.Context, id uuid.UUID) (*models.ProjectCashBook, error)
	SaveCashBook(ctx context.Context, row *models.ProjectCashBook) error

	SummarizeByUnitType(ctx context.Context, projectID uuid.UUID) ([]TypeSummary, error)
	SummarizeByOrderGroup(ctx context.Context, projectID uuid.UUID) ([]GroupSummary, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contracts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error) {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *repository) FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("KeyUnit").
		Preload("KeyUnit.HouseUnit").
		Preload("ContractPrice").
		Preload("Contractor").
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
			"order_group_id": contract.OrderGroupID,
			"unit_type_id":   contract.UnitTypeID,
			"serial_number":  contract.SerialNumber,
			"activation":     contract.Activation,
			"is_sup_cont":    contract.IsSupCont,
			"sup_cont_date":  contract.SupContDate,
		}).Error
}

func (r *repository) ListContracts(ctx context.Context, projectID uuid.UUID, params pagination.Params, filters ListFilters) (*ContractList, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Preload("KeyUnit").
		Preload("ContractPrice").
		Preload("Contractor").
		Where("contracts.project_id = ?", projectID)

	if filters.OrderGroupID != nil {
		query = query.Where("contracts.order_group_id = ?", *filters.OrderGroupID)
	}
	if filters.UnitTypeID != nil {
		query = query.Where("contracts.unit_type_id = ?", *filters.UnitTypeID)
	}
	if filters.ActiveOnly {
		query = query.Where("contracts.activation = ?", true)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.
			Joins("LEFT JOIN contractors ON contractors.contract_id = contracts.id").
			Where("contracts.serial_number LIKE ? OR contractors.name LIKE ?", like, like)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(contracts.created_at < ?) OR (contracts.created_at = ? AND contracts.id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Contract
	err = query.
		Order("contracts.created_at DESC, contracts.id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &ContractList{Contracts: rows}
	if len(rows) > limit {
		list.Contracts = rows[:limit]
		last := list.Contracts[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) ListActiveContracts(ctx context.Context, projectID uuid.UUID) ([]models.Contract, error) {
	var rows []models.Contract
	err := r.db.WithContext(ctx).
		Preload("KeyUnit").
		Preload("KeyUnit.HouseUnit").
		Preload("ContractPrice").
		Where("project_id = ? AND activation = ?", projectID, true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindKeyUnitForUpdate(ctx context.Context, id uuid.UUID) (*models.KeyUnit, error) {
	var unit models.KeyUnit
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
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

func (r *repository) FindHouseUnitForUpdate(ctx context.Context, id uuid.UUID) (*models.HouseUnit, error) {
	var unit models.HouseUnit
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
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

func (r *repository) FindContractPrice(ctx context.Context, contractID uuid.UUID) (*models.ContractPrice, error) {
	var price models.ContractPrice
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		First(&price).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *repository) CreateContractPrice(ctx context.Context, price *models.ContractPrice) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *repository) SaveContractPrice(ctx context.Context, price *models.ContractPrice) error {
	return r.db.WithContext(ctx).
		Model(&models.ContractPrice{}).
		Where("id = ?", price.ID).
		Updates(map[string]any{
			"price":          price.Price,
			"price_build":    price.PriceBuild,
			"price_land":     price.PriceLand,
			"price_tax":      price.PriceTax,
			"down_pay":       price.DownPay,
			"middle_pay":     price.MiddlePay,
			"remain_pay":     price.RemainPay,
			"is_cache_price": price.IsCachePrice,
		}).Error
}

func (r *repository) CreateContractor(ctx context.Context, contractor *models.Contractor) error {
	return r.db.WithContext(ctx).Create(contractor).Error
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

func (r *repository) SaveContractor(ctx context.Context, contractor *models.Contractor) error {
	return r.db.WithContext(ctx).
		Model(&models.Contractor{}).
		Where("id = ?", contractor.ID).
		Updates(map[string]any{
			"name":             contractor.Name,
			"birth_date":       contractor.BirthDate,
			"gender":           contractor.Gender,
			"qualification":    contractor.Qualification,
			"is_registed":      contractor.IsRegisted,
			"status":           contractor.Status,
			"is_active":        contractor.IsActive,
			"reservation_date": contractor.ReservationDate,
			"contract_date":    contractor.ContractDate,
			"note":             contractor.Note,
		}).Error
}

func (r *repository) CreateContractorAddress(ctx context.Context, address *models.ContractorAddress) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *repository) FindAddressByContractor(ctx context.Context, contractorID uuid.UUID) (*models.ContractorAddress, error) {
	var address models.ContractorAddress
	err := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repository) SaveContractorAddress(ctx context.Context, address *models.ContractorAddress) error {
	return r.db.WithContext(ctx).
		Model(&models.ContractorAddress{}).
		Where("id = ?", address.ID).
		Updates(map[string]any{
			"id_zipcode":  address.IDZipcode,
			"id_address1": address.IDAddress1,
			"id_address2": address.IDAddress2,
			"id_address3": address.IDAddress3,
			"dm_zipcode":  address.DMZipcode,
			"dm_address1": address.DMAddress1,
			"dm_address2": address.DMAddress2,
			"dm_address3": address.DMAddress3,
		}).Error
}

func (r *repository) CreateContractorContact(ctx context.Context, contact *models.ContractorContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) FindContactByContractor(ctx context.Context, contractorID uuid.UUID) (*models.ContractorContact, error) {
	var contact models.ContractorContact
	err := r.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Order("created_at ASC").
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *repository) SaveContractorContact(ctx context.Context, contact *models.ContractorContact) error {
	return r.db.WithContext(ctx).
		Model(&models.ContractorContact{}).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"cell":  contact.Cell,
			"home":  contact.Home,
			"other": contact.Other,
			"email": contact.Email,
		}).Error
}

func (r *repository) FindOrderGroup(ctx context.Context, id uuid.UUID) (*models.OrderGroup, error) {
	var group models.OrderGroup
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) CreateCashBook(ctx context.Context, row *models.ProjectCashBook) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindCashBook(ctx context.Context, id uuid.UUID) (*models.ProjectCashBook, error) {
	var row models.ProjectCashBook
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) SaveCashBook(ctx context.Context, row *models.ProjectCashBook) error {
	return r.db.WithContext(ctx).
		Model(&models.ProjectCashBook{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"project_account_d2":   row.ProjectAccountD2,
			"project_account_d3":   row.ProjectAccountD3,
			"installment_order_id": row.InstallmentOrderID,
			"bank_account_id":      row.BankAccountID,
			"content":              row.Content,
			"trader":               row.Trader,
			"income":               row.Income,
			"deal_date":            row.DealDate,
		}).Error
}

func (r *repository) SummarizeByUnitType(ctx context.Context, projectID uuid.UUID) ([]TypeSummary, error) {
	var rows []TypeSummary
	err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Select("unit_type_id, COUNT(*) AS contract_count").
		Where("project_id = ? AND activation = ?", projectID, true).
		Group("unit_type_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) SummarizeByOrderGroup(ctx context.Context, projectID uuid.UUID) ([]GroupSummary, error) {
	var rows []GroupSummary
	err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Select("order_group_id, unit_type_id, COUNT(*) AS contract_count").
		Where("project_id = ? AND activation = ?", projectID, true).
		Group("order_group_id").
		Group("unit_type_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
