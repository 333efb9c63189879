package payments

import (
	"context"
	"testing"

	"github.com/estatelab/estate-backend/internal/installments"
	"github.com/estatelab/estate-backend/internal/pricing"
	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	contract  *models.Contract
	houseUnit *models.HouseUnit
	total     int64
	orders    []models.InstallmentPaymentOrder
	payments  []models.ProjectCashBook
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	if s.contract == nil || s.contract.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.contract, nil
}

func (s *stubRepo) FindBoundHouseUnit(ctx context.Context, contractID uuid.UUID) (*models.HouseUnit, error) {
	if s.houseUnit == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.houseUnit, nil
}

func (s *stubRepo) SumIntakeIncome(ctx context.Context, contractID uuid.UUID) (int64, error) {
	return s.total, nil
}

func (s *stubRepo) ListPaymentOrders(ctx context.Context, projectID uuid.UUID) ([]models.InstallmentPaymentOrder, error) {
	return s.orders, nil
}

func (s *stubRepo) ListIntakePayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error) {
	return s.payments, nil
}

type stubPricer struct {
	resolution  *pricing.Resolution
	houseUnitID *uuid.UUID
}

func (s *stubPricer) ResolveForHouseUnit(ctx context.Context, orderGroupID, unitTypeID uuid.UUID, houseUnitID *uuid.UUID) (*pricing.Resolution, error) {
	s.houseUnitID = houseUnitID
	if s.resolution != nil {
		return s.resolution, nil
	}
	return &pricing.Resolution{Source: pricing.SourceNone}, nil
}

type stubScheduler struct {
	schedule *installments.Schedule
}

func (s *stubScheduler) Compute(ctx context.Context, input installments.ComputeInput) (*installments.Schedule, error) {
	if s.schedule != nil {
		return s.schedule, nil
	}
	return &installments.Schedule{}, nil
}

func stageOrder(sort enums.PaySort, code int) models.InstallmentPaymentOrder {
	return models.InstallmentPaymentOrder{
		ID:      uuid.New(),
		PaySort: sort,
		PayCode: code,
		PayTime: code,
		PayName: "stage",
	}
}

func newTestService(t *testing.T, repo *stubRepo, schedule *installments.Schedule) Service {
	t.Helper()

	svc, err := NewService(repo, &stubPricer{}, &stubScheduler{schedule: schedule})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestTotalPaidRequiresContractID(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, nil)

	_, err := svc.TotalPaid(context.Background(), uuid.Nil)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLastReachedOrderUnknownContract(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, nil)

	_, err := svc.LastReachedOrder(context.Background(), uuid.New())
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLastReachedOrderNilWithoutOrders(t *testing.T) {
	contract := &models.Contract{ID: uuid.New(), ProjectID: uuid.New()}
	svc := newTestService(t, &stubRepo{contract: contract, total: 50_000_000}, nil)

	order, err := svc.LastReachedOrder(context.Background(), contract.ID)
	if err != nil {
		t.Fatalf("no payment orders must not error: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil order, got %+v", order)
	}
}

func TestLastReachedOrderAccumulatesDuePerStage(t *testing.T) {
	contract := &models.Contract{ID: uuid.New(), ProjectID: uuid.New()}
	repo := &stubRepo{
		contract: contract,
		total:    40_000_000,
		orders: []models.InstallmentPaymentOrder{
			stageOrder(enums.PaySortDown, 1),
			stageOrder(enums.PaySortMiddle, 2),
			stageOrder(enums.PaySortMiddle, 3),
			stageOrder(enums.PaySortRemain, 6),
		},
	}
	schedule := &installments.Schedule{Down: 20_000_000, Middle: 10_000_000, Remain: 60_000_000}
	svc := newTestService(t, repo, schedule)

	order, err := svc.LastReachedOrder(context.Background(), contract.ID)
	if err != nil {
		t.Fatalf("last reached order: %v", err)
	}
	if order == nil || order.PayCode != 3 {
		t.Fatalf("40M covers down plus two middles, got %+v", order)
	}
}

func TestLastReachedOrderStopsAtFirstUncoveredStage(t *testing.T) {
	contract := &models.Contract{ID: uuid.New(), ProjectID: uuid.New()}
	repo := &stubRepo{
		contract: contract,
		total:    25_000_000,
		orders: []models.InstallmentPaymentOrder{
			stageOrder(enums.PaySortDown, 1),
			stageOrder(enums.PaySortMiddle, 2),
			stageOrder(enums.PaySortMiddle, 3),
		},
	}
	schedule := &installments.Schedule{Down: 20_000_000, Middle: 10_000_000}
	svc := newTestService(t, repo, schedule)

	order, err := svc.LastReachedOrder(context.Background(), contract.ID)
	if err != nil {
		t.Fatalf("last reached order: %v", err)
	}
	if order == nil || order.PayCode != 1 {
		t.Fatalf("25M covers the down payment only, got %+v", order)
	}
}

func TestLastReachedOrderIgnoresLedgerStageTags(t *testing.T) {
	contract := &models.Contract{ID: uuid.New(), ProjectID: uuid.New()}
	repo := &stubRepo{
		contract: contract,
		total:    1,
		orders: []models.InstallmentPaymentOrder{
			stageOrder(enums.PaySortDown, 1),
			stageOrder(enums.PaySortRemain, 6),
		},
	}
	schedule := &installments.Schedule{Down: 10_000_000, Remain: 90_000_000}
	svc := newTestService(t, repo, schedule)

	// A token payment booked against the remainder stage does not make
	// the contract remainder-paid; the cumulative total decides.
	order, err := svc.LastReachedOrder(context.Background(), contract.ID)
	if err != nil {
		t.Fatalf("last reached order: %v", err)
	}
	if order != nil {
		t.Fatalf("1 won covers no stage, got %+v", order)
	}
}

func TestLastReachedOrderPricesThroughBoundUnit(t *testing.T) {
	contract := &models.Contract{ID: uuid.New(), ProjectID: uuid.New()}
	unit := &models.HouseUnit{ID: uuid.New(), FloorTypeID: uuid.New()}
	repo := &stubRepo{
		contract:  contract,
		houseUnit: unit,
		total:     20_000_000,
		orders:    []models.InstallmentPaymentOrder{stageOrder(enums.PaySortDown, 1)},
	}
	pricer := &stubPricer{}
	svc, err := NewService(repo, pricer, &stubScheduler{schedule: &installments.Schedule{Down: 20_000_000}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	order, err := svc.LastReachedOrder(context.Background(), contract.ID)
	if err != nil {
		t.Fatalf("last reached order: %v", err)
	}
	if order == nil || order.PayCode != 1 {
		t.Fatalf("expected the down stage, got %+v", order)
	}
	if pricer.houseUnitID == nil || *pricer.houseUnitID != unit.ID {
		t.Fatalf("price lookup must go through the bound house unit")
	}
}
