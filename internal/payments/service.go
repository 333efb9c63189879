package payments

import (
	"context"
	"fmt"

	"github.com/estatelab/estate-backend/internal/installments"
	"github.com/estatelab/estate-backend/internal/pricing"
	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceResolver performs the tiered price lookup for a contract context.
type PriceResolver interface {
	ResolveForHouseUnit(ctx context.Context, orderGroupID, unitTypeID uuid.UUID, houseUnitID *uuid.UUID) (*pricing.Resolution, error)
}

// ScheduleComputer derives installment amounts from a resolved price.
type ScheduleComputer interface {
	Compute(ctx context.Context, input installments.ComputeInput) (*installments.Schedule, error)
}

// Service answers ledger questions about a contract: how much has been
// collected and how far along the installment schedule the payments reach.
type Service interface {
	TotalPaid(ctx context.Context, contractID uuid.UUID) (int64, error)
	LastReachedOrder(ctx context.Context, contractID uuid.UUID) (*models.InstallmentPaymentOrder, error)
	ListPayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error)
}

type service struct {
	repo      Repository
	pricer    PriceResolver
	scheduler ScheduleComputer
}

// NewService builds a payments service with the required dependencies.
func NewService(repo Repository, pricer PriceResolver, scheduler ScheduleComputer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("price resolver required")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("schedule computer required")
	}
	return &service{repo: repo, pricer: pricer, scheduler: scheduler}, nil
}

// TotalPaid sums deposit income across the contract's intake ledger rows.
// Refund rows carry a refund account code and therefore drop out of the sum.
func (s *service) TotalPaid(ctx context.Context, contractID uuid.UUID) (int64, error) {
	if contractID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}
	total, err := s.repo.SumIntakeIncome(ctx, contractID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum contract income")
	}
	return total, nil
}

// LastReachedOrder walks the project's payment stages in order, accumulating
// the amount due per stage from the contract's resolved schedule, and returns
// the last stage the paid total still covers. Which stage individual ledger
// rows were tagged to does not matter; only the cumulative total does.
func (s *service) LastReachedOrder(ctx context.Context, contractID uuid.UUID) (*models.InstallmentPaymentOrder, error) {
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

	orders, err := s.repo.ListPaymentOrders(ctx, contract.ProjectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment orders")
	}
	if len(orders) == 0 {
		return nil, nil
	}

	totalPaid, err := s.repo.SumIntakeIncome(ctx, contractID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum contract income")
	}

	var houseUnitID *uuid.UUID
	houseUnit, err := s.repo.FindBoundHouseUnit(ctx, contractID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bound house unit")
	}
	if houseUnit != nil {
		houseUnitID = &houseUnit.ID
	}

	resolution, err := s.pricer.ResolveForHouseUnit(ctx, contract.OrderGroupID, contract.UnitTypeID, houseUnitID)
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

	var dueAmt int64
	var reached *models.InstallmentPaymentOrder
	for i := range orders {
		switch orders[i].PaySort {
		case enums.PaySortDown:
			dueAmt += schedule.Down
		case enums.PaySortMiddle:
			dueAmt += schedule.Middle
		default:
			dueAmt += schedule.Remain
		}
		if totalPaid < dueAmt {
			break
		}
		reached = &orders[i]
	}
	return reached, nil
}

// ListPayments returns the contract's intake ledger rows in payment order.
func (s *service) ListPayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error) {
	if contractID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}
	rows, err := s.repo.ListIntakePayments(ctx, contractID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contract payments")
	}
	return rows, nil
}
