package installments

import (
	"context"
	"testing"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRepo struct {
	orders      []models.InstallmentPaymentOrder
	downPayment *models.DownPayment
	rules       []models.OverDueRule
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) ListInstallmentOrders(ctx context.Context, projectID uuid.UUID) ([]models.InstallmentPaymentOrder, error) {
	return s.orders, nil
}

func (s *stubRepo) FindDownPayment(ctx context.Context, orderGroupID, unitTypeID uuid.UUID) (*models.DownPayment, error) {
	if s.downPayment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.downPayment, nil
}

func (s *stubRepo) ListOverdueRules(ctx context.Context, projectID uuid.UUID) ([]models.OverDueRule, error) {
	return s.rules, nil
}

func order(sort enums.PaySort, code int) models.InstallmentPaymentOrder {
	return models.InstallmentPaymentOrder{PaySort: sort, PayCode: code, PayTime: code}
}

func standardOrders() []models.InstallmentPaymentOrder {
	return []models.InstallmentPaymentOrder{
		order(enums.PaySortDown, 1),
		order(enums.PaySortMiddle, 2),
		order(enums.PaySortMiddle, 3),
		order(enums.PaySortMiddle, 4),
		order(enums.PaySortMiddle, 5),
		order(enums.PaySortRemain, 6),
	}
}

func TestComputeWithDefaultRatios(t *testing.T) {
	repo := &stubRepo{orders: standardOrders()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	sched, err := svc.Compute(context.Background(), ComputeInput{
		ProjectID:    uuid.New(),
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
		Price:        100_000_000,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if sched.Down != 10_000_000 {
		t.Fatalf("expected down 10,000,000, got %d", sched.Down)
	}
	if sched.Middle != 10_000_000 {
		t.Fatalf("expected middle 10,000,000, got %d", sched.Middle)
	}
	// remainder follows the down amount, not the residual of the price
	if sched.Remain != 1_000_000 {
		t.Fatalf("expected remain 1,000,000, got %d", sched.Remain)
	}
	if sched.DownOverride {
		t.Fatalf("no fixed down payment configured")
	}
	if sched.MiddleCount != 4 {
		t.Fatalf("expected 4 middle stages, got %d", sched.MiddleCount)
	}
}

func TestComputeWithFixedDownPayment(t *testing.T) {
	repo := &stubRepo{
		orders: standardOrders(),
		downPayment: &models.DownPayment{
			NumberPayments: 1,
			PaymentAmount:  15_000_000,
		},
	}
	svc, _ := NewService(repo)

	sched, err := svc.Compute(context.Background(), ComputeInput{
		ProjectID:    uuid.New(),
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
		Price:        100_000_000,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if sched.Down != 15_000_000 {
		t.Fatalf("expected fixed down 15,000,000, got %d", sched.Down)
	}
	// 100M - 100M*0.1*4 middles - 15M*1 down
	if sched.Remain != 45_000_000 {
		t.Fatalf("expected remain 45,000,000, got %d", sched.Remain)
	}
	if sched.Middle != 10_000_000 {
		t.Fatalf("middle stays ratio-derived, got %d", sched.Middle)
	}
	if !sched.DownOverride {
		t.Fatalf("override flag not set")
	}
}

func TestComputeRespectsStageRatios(t *testing.T) {
	orders := standardOrders()
	orders[0].PayRatio = decimal.NewNullDecimal(decimal.NewFromInt(20))
	repo := &stubRepo{orders: orders}
	svc, _ := NewService(repo)

	sched, err := svc.Compute(context.Background(), ComputeInput{
		ProjectID: uuid.New(),
		Price:     100_000_000,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if sched.Down != 20_000_000 {
		t.Fatalf("expected 20%% down, got %d", sched.Down)
	}
	// remainder ratio still defaults to 10% of the down amount
	if sched.Remain != 2_000_000 {
		t.Fatalf("expected remain 2,000,000, got %d", sched.Remain)
	}
}

func TestComputeCountsDistinctPayCodes(t *testing.T) {
	orders := standardOrders()
	// two rows booked separately under the same stage
	extra := order(enums.PaySortMiddle, 2)
	extra.PayTime = 99
	orders = append(orders, extra)
	repo := &stubRepo{
		orders:      orders,
		downPayment: &models.DownPayment{NumberPayments: 1, PaymentAmount: 15_000_000},
	}
	svc, _ := NewService(repo)

	sched, err := svc.Compute(context.Background(), ComputeInput{
		ProjectID:    uuid.New(),
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
		Price:        100_000_000,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if sched.MiddleCount != 4 {
		t.Fatalf("duplicate pay_code must not inflate the count, got %d", sched.MiddleCount)
	}
	if sched.Remain != 45_000_000 {
		t.Fatalf("expected remain unchanged at 45,000,000, got %d", sched.Remain)
	}
}

func TestComputeZeroPrice(t *testing.T) {
	repo := &stubRepo{orders: standardOrders()}
	svc, _ := NewService(repo)

	sched, err := svc.Compute(context.Background(), ComputeInput{
		ProjectID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if sched.Down != 0 || sched.Middle != 0 || sched.Remain != 0 {
		t.Fatalf("zero price must produce zero amounts: %+v", sched)
	}
}

func TestAmountForMapsPaySort(t *testing.T) {
	sched := &Schedule{Down: 1, Middle: 2, Remain: 3}
	if got := sched.AmountFor(order(enums.PaySortDown, 1)); got != 1 {
		t.Fatalf("down: got %d", got)
	}
	if got := sched.AmountFor(order(enums.PaySortMiddle, 2)); got != 2 {
		t.Fatalf("middle: got %d", got)
	}
	if got := sched.AmountFor(order(enums.PaySortRemain, 3)); got != 3 {
		t.Fatalf("remain: got %d", got)
	}
}

func intPtr(v int) *int { return &v }

func TestOverdueRuleForMatchesBand(t *testing.T) {
	projectID := uuid.New()
	repo := &stubRepo{
		rules: []models.OverDueRule{
			{TermStart: nil, TermEnd: intPtr(30), RateYear: decimal.NewFromInt(5)},
			{TermStart: intPtr(31), TermEnd: intPtr(90), RateYear: decimal.NewFromInt(8)},
			{TermStart: intPtr(91), TermEnd: nil, RateYear: decimal.NewFromInt(10)},
		},
	}
	svc, _ := NewService(repo)

	rule, err := svc.OverdueRuleFor(context.Background(), projectID, 45)
	if err != nil {
		t.Fatalf("overdue rule: %v", err)
	}
	if rule == nil || !rule.RateYear.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected the 8%% band, got %+v", rule)
	}

	rule, err = svc.OverdueRuleFor(context.Background(), projectID, 400)
	if err != nil {
		t.Fatalf("overdue rule: %v", err)
	}
	if rule == nil || !rule.RateYear.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("open-ended band must match large day counts, got %+v", rule)
	}
}

func TestOverdueRuleForNoMatch(t *testing.T) {
	repo := &stubRepo{
		rules: []models.OverDueRule{
			{TermStart: intPtr(10), TermEnd: intPtr(30), RateYear: decimal.NewFromInt(5)},
		},
	}
	svc, _ := NewService(repo)

	rule, err := svc.OverdueRuleFor(context.Background(), uuid.New(), 5)
	if err != nil {
		t.Fatalf("overdue rule: %v", err)
	}
	if rule != nil {
		t.Fatalf("expected no band, got %+v", rule)
	}
}
