package contracts

import (
	"context"
	"fmt"

	"github.com/estatelab/estate-backend/internal/installments"
	"github.com/estatelab/estate-backend/internal/pricing"
	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/estatelab/estate-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PriceResolver performs the tiered price lookup for a contract context.
type PriceResolver interface {
	Resolve(ctx context.Context, input pricing.ResolveInput) (*pricing.Resolution, error)
}

// ScheduleComputer derives installment amounts from a resolved price.
type ScheduleComputer interface {
	Compute(ctx context.Context, input installments.ComputeInput) (*installments.Schedule, error)
}

// LedgerReader answers payment questions for contract read models.
type LedgerReader interface {
	TotalPaid(ctx context.Context, contractID uuid.UUID) (int64, error)
	LastReachedOrder(ctx context.Context, contractID uuid.UUID) (*models.InstallmentPaymentOrder, error)
}

// Service owns the contract lifecycle: registration, modification with unit
// rebinding, listings and project-wide price recalculation.
type Service interface {
	Create(ctx context.Context, cmd CreateContractCommand) (*models.Contract, error)
	Update(ctx context.Context, cmd UpdateContractCommand) (*models.Contract, error)
	Detail(ctx context.Context, contractID uuid.UUID) (*ContractDetail, error)
	List(ctx context.Context, projectID uuid.UUID, params pagination.Params, filters ListFilters) (*ContractList, error)
	RecalculateProjectPrices(ctx context.Context, projectID uuid.UUID) (int, error)
	SummarizeByUnitType(ctx context.Context, projectID uuid.UUID) ([]TypeSummary, error)
	SummarizeByOrderGroup(ctx context.Context, projectID uuid.UUID) ([]GroupSummary, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	pricer    PriceResolver
	scheduler ScheduleComputer
	ledger    LedgerReader
}

// NewService builds a contracts service with the required dependencies.
func NewService(repo Repository, tx txRunner, pricer PriceResolver, scheduler ScheduleComputer, ledger LedgerReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contracts repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("price resolver required")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("schedule computer required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger reader required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		pricer:    pricer,
		scheduler: scheduler,
		ledger:    ledger,
	}, nil
}

func (s *service) Create(ctx context.Context, cmd CreateContractCommand) (*models.Contract, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	var created *models.Contract
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		keyUnit, err := repo.FindKeyUnitForUpdate(ctx, cmd.KeyUnitID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "key unit not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load key unit")
		}
		if keyUnit.ContractID != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "key unit already bound to a contract")
		}

		contract := &models.Contract{
			ID:           uuid.New(),
			ProjectID:    cmd.ProjectID,
			OrderGroupID: cmd.OrderGroupID,
			UnitTypeID:   cmd.UnitTypeID,
			SerialNumber: cmd.SerialNumber,
			Activation:   true,
			IsSupCont:    cmd.IsSupCont,
			SupContDate:  cmd.SupContDate,
		}
		if _, err := repo.CreateContract(ctx, contract); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract")
		}

		if err := repo.SetKeyUnitContract(ctx, keyUnit.ID, &contract.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind key unit")
		}

		var houseUnit *models.HouseUnit
		if cmd.HouseUnitID != nil {
			houseUnit, err = repo.FindHouseUnitForUpdate(ctx, *cmd.HouseUnitID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "house unit not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load house unit")
			}
			if houseUnit.KeyUnitID != nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "house unit already assigned")
			}
			if err := repo.SetHouseUnitKeyUnit(ctx, houseUnit.ID, &keyUnit.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind house unit")
			}
		}

		price, err := s.snapshotPrice(ctx, contract, houseUnit)
		if err != nil {
			return err
		}
		if err := repo.CreateContractPrice(ctx, price); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract price")
		}

		contractor := &models.Contractor{
			ID:              uuid.New(),
			ContractID:      contract.ID,
			Name:            cmd.Contractor.Name,
			BirthDate:       cmd.Contractor.BirthDate,
			Gender:          cmd.Contractor.Gender,
			IsRegisted:      cmd.Contractor.IsRegisted,
			Status:          cmd.Contractor.Status,
			IsActive:        true,
			ReservationDate: cmd.Contractor.ReservationDate,
			ContractDate:    cmd.Contractor.ContractDate,
			Note:            cmd.Contractor.Note,
		}
		if err := repo.CreateContractor(ctx, contractor); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor")
		}

		address := &models.ContractorAddress{
			ID:           uuid.New(),
			ContractorID: contractor.ID,
			IDZipcode:    cmd.Address.IDZipcode,
			IDAddress1:   cmd.Address.IDAddress1,
			IDAddress2:   cmd.Address.IDAddress2,
			IDAddress3:   cmd.Address.IDAddress3,
			DMZipcode:    cmd.Address.DMZipcode,
			DMAddress1:   cmd.Address.DMAddress1,
			DMAddress2:   cmd.Address.DMAddress2,
			DMAddress3:   cmd.Address.DMAddress3,
		}
		if err := repo.CreateContractorAddress(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor address")
		}

		contact := &models.ContractorContact{
			ID:           uuid.New(),
			ContractorID: contractor.ID,
			Cell:         cmd.Contact.Cell,
			Home:         cmd.Contact.Home,
			Other:        cmd.Contact.Other,
			Email:        cmd.Contact.Email,
		}
		if err := repo.CreateContractorContact(ctx, contact); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor contact")
		}

		if cmd.FirstPayment != nil {
			if err := s.bookFirstPayment(ctx, repo, contract, contractor.Name, *cmd.FirstPayment); err != nil {
				return err
			}
		}

		created = contract
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, cmd UpdateContractCommand) (*models.Contract, error) {
	if err := validateUpdate(cmd); err != nil {
		return nil, err
	}

	var updated *models.Contract
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		contract, err := repo.FindContract(ctx, cmd.ContractID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
		}

		contract.OrderGroupID = cmd.OrderGroupID
		contract.UnitTypeID = cmd.UnitTypeID
		if err := repo.SaveContract(ctx, contract); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contract")
		}

		houseUnit, sameUnit, err := s.rebindUnits(ctx, repo, contract, cmd)
		if err != nil {
			return err
		}

		existingPrice, err := repo.FindContractPrice(ctx, contract.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract price")
		}

		// an unchanged bound unit keeps its original snapshot
		if existingPrice == nil || !sameUnit {
			price, err := s.snapshotPrice(ctx, contract, houseUnit)
			if err != nil {
				return err
			}
			if existingPrice == nil {
				if err := repo.CreateContractPrice(ctx, price); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract price")
				}
			} else {
				existingPrice.Price = price.Price
				existingPrice.PriceBuild = price.PriceBuild
				existingPrice.PriceLand = price.PriceLand
				existingPrice.PriceTax = price.PriceTax
				existingPrice.DownPay = price.DownPay
				existingPrice.MiddlePay = price.MiddlePay
				existingPrice.RemainPay = price.RemainPay
				existingPrice.IsCachePrice = price.IsCachePrice
				if err := repo.SaveContractPrice(ctx, existingPrice); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contract price")
				}
			}
		}

		if err := s.updateContractorRecords(ctx, repo, contract.ID, cmd); err != nil {
			return err
		}

		if cmd.Payment != nil {
			if err := s.applyPayment(ctx, repo, contract, cmd.Contractor.Name, *cmd.Payment); err != nil {
				return err
			}
		}

		updated = contract
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// rebindUnits applies the unit-change matrix: releasing a superseded house
// unit and key unit before binding the requested ones. It reports whether
// nothing about the binding changed at all, in which case the caller skips
// the price snapshot. A key unit change always forces a new snapshot even
// when the house unit is kept, since the order group may differ.
func (s *service) rebindUnits(ctx context.Context, repo Repository, contract *models.Contract, cmd UpdateContractCommand) (*models.HouseUnit, bool, error) {
	currentKeyUnit, err := repo.FindKeyUnitByContract(ctx, contract.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bound key unit")
	}

	var requestedHouse *models.HouseUnit
	if cmd.HouseUnitID != nil {
		requestedHouse, err = repo.FindHouseUnitForUpdate(ctx, *cmd.HouseUnitID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, "house unit not found")
			}
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load house unit")
		}
	}

	if currentKeyUnit == nil || currentKeyUnit.ID != cmd.KeyUnitID {
		newKeyUnit, err := repo.FindKeyUnitForUpdate(ctx, cmd.KeyUnitID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, "key unit not found")
			}
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load key unit")
		}
		if newKeyUnit.ContractID != nil && *newKeyUnit.ContractID != contract.ID {
			return nil, false, pkgerrors.New(pkgerrors.CodeConflict, "key unit already bound to a contract")
		}

		if currentKeyUnit != nil {
			oldHouse, err := repo.FindHouseUnitByKeyUnit(ctx, currentKeyUnit.ID)
			if err != nil && err != gorm.ErrRecordNotFound {
				return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bound house unit")
			}
			// the requested house unit gets rebound below, so only release
			// a unit that is actually being dropped
			if oldHouse != nil && (cmd.HouseUnitID == nil || oldHouse.ID != *cmd.HouseUnitID) {
				if err := repo.SetHouseUnitKeyUnit(ctx, oldHouse.ID, nil); err != nil {
					return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release house unit")
				}
			}
			if err := repo.SetKeyUnitContract(ctx, currentKeyUnit.ID, nil); err != nil {
				return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release key unit")
			}
		}

		if err := repo.SetKeyUnitContract(ctx, newKeyUnit.ID, &contract.ID); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind key unit")
		}
		if requestedHouse != nil {
			if err := repo.SetHouseUnitKeyUnit(ctx, requestedHouse.ID, &newKeyUnit.ID); err != nil {
				return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind house unit")
			}
		}
		return requestedHouse, false, nil
	}

	// key unit unchanged: reconcile the house unit only
	oldHouse, err := repo.FindHouseUnitByKeyUnit(ctx, currentKeyUnit.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bound house unit")
	}
	if oldHouse != nil {
		if cmd.HouseUnitID != nil && oldHouse.ID == *cmd.HouseUnitID {
			return oldHouse, true, nil
		}
		if err := repo.SetHouseUnitKeyUnit(ctx, oldHouse.ID, nil); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release house unit")
		}
	}
	if requestedHouse != nil {
		if err := repo.SetHouseUnitKeyUnit(ctx, requestedHouse.ID, &currentKeyUnit.ID); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind house unit")
		}
	}
	return requestedHouse, false, nil
}

func (s *service) updateContractorRecords(ctx context.Context, repo Repository, contractID uuid.UUID, cmd UpdateContractCommand) error {
	contractor, err := repo.FindContractorByContract(ctx, contractID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contractor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor")
	}

	contractor.Name = cmd.Contractor.Name
	contractor.BirthDate = cmd.Contractor.BirthDate
	contractor.Gender = cmd.Contractor.Gender
	contractor.IsRegisted = cmd.Contractor.IsRegisted
	contractor.Status = cmd.Contractor.Status
	contractor.ReservationDate = cmd.Contractor.ReservationDate
	contractor.ContractDate = cmd.Contractor.ContractDate
	contractor.Note = cmd.Contractor.Note
	if err := repo.SaveContractor(ctx, contractor); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contractor")
	}

	address, err := repo.FindAddressByContractor(ctx, contractor.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor address")
	}
	if address == nil {
		address = &models.ContractorAddress{ID: uuid.New(), ContractorID: contractor.ID}
	}
	address.IDZipcode = cmd.Address.IDZipcode
	address.IDAddress1 = cmd.Address.IDAddress1
	address.IDAddress2 = cmd.Address.IDAddress2
	address.IDAddress3 = cmd.Address.IDAddress3
	address.DMZipcode = cmd.Address.DMZipcode
	address.DMAddress1 = cmd.Address.DMAddress1
	address.DMAddress2 = cmd.Address.DMAddress2
	address.DMAddress3 = cmd.Address.DMAddress3
	if err == gorm.ErrRecordNotFound {
		if err := repo.CreateContractorAddress(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor address")
		}
	} else if err := repo.SaveContractorAddress(ctx, address); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contractor address")
	}

	contact, err := repo.FindContactByContractor(ctx, contractor.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor contact")
	}
	if contact == nil {
		contact = &models.ContractorContact{ID: uuid.New(), ContractorID: contractor.ID}
	}
	contact.Cell = cmd.Contact.Cell
	contact.Home = cmd.Contact.Home
	contact.Other = cmd.Contact.Other
	contact.Email = cmd.Contact.Email
	if err == gorm.ErrRecordNotFound {
		if err := repo.CreateContractorContact(ctx, contact); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor contact")
		}
	} else if err := repo.SaveContractorContact(ctx, contact); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contractor contact")
	}
	return nil
}

// snapshotPrice resolves the contract's price and installment amounts into a
// fresh ContractPrice row.
func (s *service) snapshotPrice(ctx context.Context, contract *models.Contract, houseUnit *models.HouseUnit) (*models.ContractPrice, error) {
	var floorTypeID *uuid.UUID
	if houseUnit != nil {
		floorTypeID = &houseUnit.FloorTypeID
	}

	resolution, err := s.pricer.Resolve(ctx, pricing.ResolveInput{
		OrderGroupID: contract.OrderGroupID,
		UnitTypeID:   contract.UnitTypeID,
		FloorTypeID:  floorTypeID,
	})
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduler.Compute(ctx, installments.ComputeInput{
		ProjectID:    contract.ProjectID,
		OrderGroupID: contract.OrderGroupID,
		UnitTypeID:   contract.UnitTypeID,
		Price:        resolution.Price,
	})
	if err != nil {
		return nil, err
	}

	return &models.ContractPrice{
		ID:           uuid.New(),
		ContractID:   contract.ID,
		Price:        resolution.Price,
		PriceBuild:   resolution.PriceBuild,
		PriceLand:    resolution.PriceLand,
		PriceTax:     resolution.PriceTax,
		DownPay:      schedule.Down,
		MiddlePay:    schedule.Middle,
		RemainPay:    schedule.Remain,
		IsCachePrice: resolution.IsAverage(),
	}, nil
}

func (s *service) bookFirstPayment(ctx context.Context, repo Repository, contract *models.Contract, contractorName string, payment FirstPaymentInput) error {
	return s.applyPayment(ctx, repo, contract, contractorName, PaymentInput{
		InstallmentOrderID: payment.InstallmentOrderID,
		BankAccountID:      payment.BankAccountID,
		Income:             payment.Income,
		Trader:             payment.Trader,
		DealDate:           payment.DealDate,
	})
}

// applyPayment books an intake ledger row for the contract, or edits an
// existing row in place when the input names one. The account codes are
// derived from the contract's order group either way.
func (s *service) applyPayment(ctx context.Context, repo Repository, contract *models.Contract, contractorName string, payment PaymentInput) error {
	group, err := repo.FindOrderGroup(ctx, contract.OrderGroupID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order group not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order group")
	}

	content := fmt.Sprintf("%s[%s] payment received", contractorName, contract.SerialNumber)

	if payment.ID != nil {
		row, err := repo.FindCashBook(ctx, *payment.ID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "payment row not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment row")
		}
		if row.ContractID == nil || *row.ContractID != contract.ID {
			return pkgerrors.New(pkgerrors.CodeConflict, "payment row belongs to another contract")
		}
		row.ProjectAccountD2 = group.Sort.AccountD2()
		row.ProjectAccountD3 = group.Sort.IntakeD3()
		row.InstallmentOrderID = &payment.InstallmentOrderID
		row.BankAccountID = &payment.BankAccountID
		row.Content = content
		row.Trader = payment.Trader
		row.Income = payment.Income
		row.DealDate = payment.DealDate
		if err := repo.SaveCashBook(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payment row")
		}
		return nil
	}

	row := &models.ProjectCashBook{
		ID:                 uuid.New(),
		ProjectID:          contract.ProjectID,
		Sort:               enums.AccountSortDeposit,
		ProjectAccountD2:   group.Sort.AccountD2(),
		ProjectAccountD3:   group.Sort.IntakeD3(),
		ContractID:         &contract.ID,
		InstallmentOrderID: &payment.InstallmentOrderID,
		BankAccountID:      &payment.BankAccountID,
		Content:            content,
		Trader:             payment.Trader,
		Income:             payment.Income,
		DealDate:           payment.DealDate,
	}
	if err := repo.CreateCashBook(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "book payment")
	}
	return nil
}

func (s *service) Detail(ctx context.Context, contractID uuid.UUID) (*ContractDetail, error) {
	if contractID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}

	contract, err := s.repo.FindContract(ctx, contractID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}

	totalPaid, err := s.ledger.TotalPaid(ctx, contractID)
	if err != nil {
		return nil, err
	}
	lastOrder, err := s.ledger.LastReachedOrder(ctx, contractID)
	if err != nil {
		return nil, err
	}

	detail := &ContractDetail{
		Contract:      *contract,
		KeyUnit:       contract.KeyUnit,
		Price:         contract.ContractPrice,
		Contractor:    contract.Contractor,
		TotalPaid:     totalPaid,
		LastPaidOrder: lastOrder,
	}
	if contract.KeyUnit != nil {
		detail.HouseUnit = contract.KeyUnit.HouseUnit
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, projectID uuid.UUID, params pagination.Params, filters ListFilters) (*ContractList, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	list, err := s.repo.ListContracts(ctx, projectID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}
	return list, nil
}

// RecalculateProjectPrices re-snapshots the price and installment amounts of
// every active contract in the project, picking up edits to the price
// tables, budgets and schedule. It returns the number of contracts touched.
func (s *service) RecalculateProjectPrices(ctx context.Context, projectID uuid.UUID) (int, error) {
	if projectID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}

	touched := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		contracts, err := repo.ListActiveContracts(ctx, projectID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active contracts")
		}

		for i := range contracts {
			contract := contracts[i]
			var houseUnit *models.HouseUnit
			if contract.KeyUnit != nil {
				houseUnit = contract.KeyUnit.HouseUnit
			}

			price, err := s.snapshotPrice(ctx, &contract, houseUnit)
			if err != nil {
				return err
			}

			existing, err := repo.FindContractPrice(ctx, contract.ID)
			if err != nil && err != gorm.ErrRecordNotFound {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract price")
			}
			if existing == nil {
				if err := repo.CreateContractPrice(ctx, price); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract price")
				}
			} else {
				existing.Price = price.Price
				existing.PriceBuild = price.PriceBuild
				existing.PriceLand = price.PriceLand
				existing.PriceTax = price.PriceTax
				existing.DownPay = price.DownPay
				existing.MiddlePay = price.MiddlePay
				existing.RemainPay = price.RemainPay
				existing.IsCachePrice = price.IsCachePrice
				if err := repo.SaveContractPrice(ctx, existing); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contract price")
				}
			}
			touched++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return touched, nil
}

func (s *service) SummarizeByUnitType(ctx context.Context, projectID uuid.UUID) ([]TypeSummary, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	rows, err := s.repo.SummarizeByUnitType(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize by unit type")
	}
	return rows, nil
}

func (s *service) SummarizeByOrderGroup(ctx context.Context, projectID uuid.UUID) ([]GroupSummary, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	rows, err := s.repo.SummarizeByOrderGroup(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize by order group")
	}
	return rows, nil
}

func validateCreate(cmd CreateContractCommand) error {
	switch {
	case cmd.ProjectID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	case cmd.OrderGroupID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "order group id required")
	case cmd.UnitTypeID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "unit type id required")
	case cmd.KeyUnitID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "key unit id required")
	case cmd.SerialNumber == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "serial number required")
	case cmd.Contractor.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "contractor name required")
	case cmd.ActorID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	if !cmd.Contractor.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid contractor status")
	}
	if cmd.FirstPayment != nil {
		if cmd.FirstPayment.Income <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "first payment income must be positive")
		}
		if cmd.FirstPayment.InstallmentOrderID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "first payment installment order required")
		}
	}
	return nil
}

func validateUpdate(cmd UpdateContractCommand) error {
	switch {
	case cmd.ContractID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	case cmd.OrderGroupID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "order group id required")
	case cmd.UnitTypeID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "unit type id required")
	case cmd.KeyUnitID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "key unit id required")
	case cmd.Contractor.Name == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "contractor name required")
	case cmd.ActorID == uuid.Nil:
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	if !cmd.Contractor.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid contractor status")
	}
	if cmd.Payment != nil {
		if cmd.Payment.Income <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment income must be positive")
		}
		if cmd.Payment.InstallmentOrderID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment installment order required")
		}
	}
	return nil
}
