package pricing

import (
	"context"
	"fmt"

	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source identifies which tier of the lookup produced a price.
type Source string

const (
	SourcePriceTable      Source = "price_table"
	SourceIncomeBudget    Source = "income_budget"
	SourceUnitTypeAverage Source = "unit_type_average"
	SourceNone            Source = "none"
)

// Service resolves contract prices through the tiered lookup.
type Service interface {
	Resolve(ctx context.Context, input ResolveInput) (*Resolution, error)
	ResolveForHouseUnit(ctx context.Context, orderGroupID, unitTypeID uuid.UUID, houseUnitID *uuid.UUID) (*Resolution, error)
}

type service struct {
	repo Repository
}

// ResolveInput identifies the contract context being priced. FloorTypeID is
// nil when no house unit has been bound yet, which skips the price-table
// tier entirely.
type ResolveInput struct {
	OrderGroupID uuid.UUID
	UnitTypeID   uuid.UUID
	FloorTypeID  *uuid.UUID
}

// Resolution is the outcome of a price lookup. Price is zero when no tier
// matched; a missing price is not an error.
type Resolution struct {
	Price      int64
	PriceBuild *int64
	PriceLand  *int64
	PriceTax   *int64
	Source     Source
}

// IsAverage reports whether the price fell back to an average tier rather
// than a floor-specific table row.
func (r *Resolution) IsAverage() bool {
	return r.Source != SourcePriceTable
}

// NewService builds a pricing service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Resolve(ctx context.Context, input ResolveInput) (*Resolution, error) {
	if input.OrderGroupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order group id required")
	}
	if input.UnitTypeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit type id required")
	}

	if input.FloorTypeID != nil && *input.FloorTypeID != uuid.Nil {
		row, err := s.repo.FindSalesPrice(ctx, input.OrderGroupID, input.UnitTypeID, *input.FloorTypeID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales price")
		}
		if row != nil {
			return &Resolution{
				Price:      row.Price,
				PriceBuild: row.PriceBuild,
				PriceLand:  row.PriceLand,
				PriceTax:   row.PriceTax,
				Source:     SourcePriceTable,
			}, nil
		}
	}

	budget, err := s.repo.FindIncBudget(ctx, input.OrderGroupID, input.UnitTypeID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load income budget")
	}
	if budget != nil {
		return &Resolution{Price: budget.AveragePrice, Source: SourceIncomeBudget}, nil
	}

	unitType, err := s.repo.FindUnitType(ctx, input.UnitTypeID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load unit type")
	}
	if unitType != nil {
		return &Resolution{Price: unitType.AveragePrice, Source: SourceUnitTypeAverage}, nil
	}

	return &Resolution{Price: 0, Source: SourceNone}, nil
}

// ResolveForHouseUnit resolves through the house unit's floor type when a
// unit is named, falling back to the average tiers otherwise.
func (s *service) ResolveForHouseUnit(ctx context.Context, orderGroupID, unitTypeID uuid.UUID, houseUnitID *uuid.UUID) (*Resolution, error) {
	input := ResolveInput{OrderGroupID: orderGroupID, UnitTypeID: unitTypeID}

	if houseUnitID != nil && *houseUnitID != uuid.Nil {
		unit, err := s.repo.FindHouseUnit(ctx, *houseUnitID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "house unit not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load house unit")
		}
		floorType := unit.FloorTypeID
		input.FloorTypeID = &floorType
	}

	return s.Resolve(ctx, input)
}
