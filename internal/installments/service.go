package installments

import (
	"context"
	"fmt"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var defaultRatio = decimal.NewFromFloat(0.1)

// Service derives per-stage payment amounts and late-fee rules for a
// project's installment schedule.
type Service interface {
	Compute(ctx context.Context, input ComputeInput) (*Schedule, error)
	OverdueRuleFor(ctx context.Context, projectID uuid.UUID, daysLate int) (*models.OverDueRule, error)
}

type service struct {
	repo Repository
}

// ComputeInput identifies the contract context and the resolved price the
// schedule is derived from.
type ComputeInput struct {
	ProjectID    uuid.UUID
	OrderGroupID uuid.UUID
	UnitTypeID   uuid.UUID
	Price        int64
}

// Schedule carries the per-occurrence amount for each payment sort plus the
// stage counts the amounts were derived from.
//
// Down and Remain are totals across their occurrences only when a fixed
// down-payment row overrides the ratios; Middle is always per occurrence.
type Schedule struct {
	Down   int64
	Middle int64
	Remain int64

	DownCount    int
	MiddleCount  int
	RemainCount  int
	DownOverride bool
}

// AmountFor returns the scheduled amount for a single installment order.
func (s *Schedule) AmountFor(order models.InstallmentPaymentOrder) int64 {
	switch order.PaySort {
	case enums.PaySortDown:
		return s.Down
	case enums.PaySortMiddle:
		return s.Middle
	case enums.PaySortRemain:
		return s.Remain
	default:
		return 0
	}
}

// NewService builds an installments service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("installments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Compute(ctx context.Context, input ComputeInput) (*Schedule, error) {
	if input.ProjectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	orders, err := s.repo.ListInstallmentOrders(ctx, input.ProjectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load installment orders")
	}

	var downs, middles, remains []models.InstallmentPaymentOrder
	for _, order := range orders {
		switch order.PaySort {
		case enums.PaySortDown:
			downs = append(downs, order)
		case enums.PaySortMiddle:
			middles = append(middles, order)
		case enums.PaySortRemain:
			remains = append(remains, order)
		}
	}

	downNum := distinctPayCodes(downs)
	middleNum := distinctPayCodes(middles)
	remainNum := distinctPayCodes(remains)

	downRatio := ratioOf(downs)
	middleRatio := ratioOf(middles)
	remainRatio := ratioOf(remains)

	price := decimal.NewFromInt(input.Price)

	var down, remain decimal.Decimal
	override := false
	if input.OrderGroupID != uuid.Nil && input.UnitTypeID != uuid.Nil {
		fixed, err := s.repo.FindDownPayment(ctx, input.OrderGroupID, input.UnitTypeID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load down payment override")
		}
		if fixed != nil {
			override = true
			down = decimal.NewFromInt(fixed.PaymentAmount)
			remain = price.
				Sub(price.Mul(middleRatio).Mul(decimal.NewFromInt(int64(middleNum)))).
				Sub(down.Mul(decimal.NewFromInt(int64(downNum))))
		}
	}
	if !override {
		down = price.Mul(downRatio)
		remain = down.Mul(remainRatio)
	}

	middle := price.Mul(middleRatio)

	return &Schedule{
		Down:         down.Round(0).IntPart(),
		Middle:       middle.Round(0).IntPart(),
		Remain:       remain.Round(0).IntPart(),
		DownCount:    downNum,
		MiddleCount:  middleNum,
		RemainCount:  remainNum,
		DownOverride: override,
	}, nil
}

// OverdueRuleFor returns the late-fee band covering the given overdue day
// count, or nil when no band matches. Nil term bounds are open on that side.
func (s *service) OverdueRuleFor(ctx context.Context, projectID uuid.UUID, daysLate int) (*models.OverDueRule, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	rules, err := s.repo.ListOverdueRules(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load overdue rules")
	}
	for i := range rules {
		rule := rules[i]
		if rule.TermStart != nil && daysLate < *rule.TermStart {
			continue
		}
		if rule.TermEnd != nil && daysLate > *rule.TermEnd {
			continue
		}
		return &rule, nil
	}
	return nil, nil
}

// ratioOf returns the leading stage's ratio as a fraction, falling back to
// 10% when the sort has no rows or the first row carries no ratio.
func ratioOf(orders []models.InstallmentPaymentOrder) decimal.Decimal {
	if len(orders) == 0 {
		return defaultRatio
	}
	first := orders[0]
	if !first.PayRatio.Valid || first.PayRatio.Decimal.IsZero() {
		return defaultRatio
	}
	return first.PayRatio.Decimal.Div(decimal.NewFromInt(100))
}

func distinctPayCodes(orders []models.InstallmentPaymentOrder) int {
	seen := map[int]struct{}{}
	for _, order := range orders {
		seen[order.PayCode] = struct{}{}
	}
	return len(seen)
}
