package pricing

import (
	"context"
	"testing"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	salesPrice *models.SalesPriceByGT
	incBudget  *models.ProjectIncBudget
	unitType   *models.UnitType
	houseUnit  *models.HouseUnit
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindSalesPrice(ctx context.Context, orderGroupID, unitTypeID, floorTypeID uuid.UUID) (*models.SalesPriceByGT, error) {
	if s.salesPrice == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.salesPrice, nil
}

func (s *stubRepo) FindIncBudget(ctx context.Context, orderGroupID, unitTypeID uuid.UUID) (*models.ProjectIncBudget, error) {
	if s.incBudget == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.incBudget, nil
}

func (s *stubRepo) FindUnitType(ctx context.Context, unitTypeID uuid.UUID) (*models.UnitType, error) {
	if s.unitType == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.unitType, nil
}

func (s *stubRepo) FindHouseUnit(ctx context.Context, houseUnitID uuid.UUID) (*models.HouseUnit, error) {
	if s.houseUnit == nil || s.houseUnit.ID != houseUnitID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.houseUnit, nil
}

func ptrInt64(v int64) *int64 { return &v }

func TestResolvePrefersFloorSpecificRow(t *testing.T) {
	floorType := uuid.New()
	repo := &stubRepo{
		salesPrice: &models.SalesPriceByGT{
			Price:      120_000_000,
			PriceBuild: ptrInt64(70_000_000),
			PriceLand:  ptrInt64(40_000_000),
			PriceTax:   ptrInt64(10_000_000),
		},
		incBudget: &models.ProjectIncBudget{AveragePrice: 100_000_000},
		unitType:  &models.UnitType{AveragePrice: 90_000_000},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	res, err := svc.Resolve(context.Background(), ResolveInput{
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
		FloorTypeID:  &floorType,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Price != 120_000_000 {
		t.Fatalf("expected table price, got %d", res.Price)
	}
	if res.Source != SourcePriceTable {
		t.Fatalf("expected price_table source, got %s", res.Source)
	}
	if res.IsAverage() {
		t.Fatalf("table price must not be flagged as average")
	}
	if res.PriceBuild == nil || *res.PriceBuild != 70_000_000 {
		t.Fatalf("breakdown not carried through")
	}
}

func TestResolveFallsBackToIncomeBudget(t *testing.T) {
	floorType := uuid.New()
	repo := &stubRepo{
		incBudget: &models.ProjectIncBudget{AveragePrice: 100_000_000},
		unitType:  &models.UnitType{AveragePrice: 90_000_000},
	}
	svc, _ := NewService(repo)

	res, err := svc.Resolve(context.Background(), ResolveInput{
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
		FloorTypeID:  &floorType,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Price != 100_000_000 {
		t.Fatalf("expected budget average, got %d", res.Price)
	}
	if res.Source != SourceIncomeBudget {
		t.Fatalf("expected income_budget source, got %s", res.Source)
	}
	if !res.IsAverage() {
		t.Fatalf("budget average must be flagged as average")
	}
}

func TestResolveSkipsTableTierWithoutFloorType(t *testing.T) {
	repo := &stubRepo{
		salesPrice: &models.SalesPriceByGT{Price: 120_000_000},
		incBudget:  &models.ProjectIncBudget{AveragePrice: 100_000_000},
	}
	svc, _ := NewService(repo)

	res, err := svc.Resolve(context.Background(), ResolveInput{
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Source != SourceIncomeBudget {
		t.Fatalf("unbound contract must skip the table tier, got %s", res.Source)
	}
}

func TestResolveFallsBackToUnitTypeAverage(t *testing.T) {
	repo := &stubRepo{unitType: &models.UnitType{AveragePrice: 90_000_000}}
	svc, _ := NewService(repo)

	res, err := svc.Resolve(context.Background(), ResolveInput{
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Price != 90_000_000 || res.Source != SourceUnitTypeAverage {
		t.Fatalf("expected unit type average, got %d (%s)", res.Price, res.Source)
	}
}

func TestResolveForHouseUnitUsesFloorType(t *testing.T) {
	houseUnitID := uuid.New()
	repo := &stubRepo{
		salesPrice: &models.SalesPriceByGT{Price: 120_000_000},
		incBudget:  &models.ProjectIncBudget{AveragePrice: 100_000_000},
		houseUnit:  &models.HouseUnit{ID: houseUnitID, FloorTypeID: uuid.New()},
	}
	svc, _ := NewService(repo)

	res, err := svc.ResolveForHouseUnit(context.Background(), uuid.New(), uuid.New(), &houseUnitID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Source != SourcePriceTable {
		t.Fatalf("expected table tier via house unit floor type, got %s", res.Source)
	}
}

func TestResolveForHouseUnitWithoutUnitSkipsTable(t *testing.T) {
	repo := &stubRepo{
		salesPrice: &models.SalesPriceByGT{Price: 120_000_000},
		incBudget:  &models.ProjectIncBudget{AveragePrice: 100_000_000},
	}
	svc, _ := NewService(repo)

	res, err := svc.ResolveForHouseUnit(context.Background(), uuid.New(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Source != SourceIncomeBudget {
		t.Fatalf("expected budget tier without a unit, got %s", res.Source)
	}
}

func TestResolveZeroBudgetAverageIsStillTheAnswer(t *testing.T) {
	repo := &stubRepo{
		incBudget: &models.ProjectIncBudget{AveragePrice: 0},
		unitType:  &models.UnitType{AveragePrice: 90_000_000},
	}
	svc, _ := NewService(repo)

	res, err := svc.Resolve(context.Background(), ResolveInput{
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Price != 0 || res.Source != SourceIncomeBudget {
		t.Fatalf("found budget row must win even at zero, got %d (%s)", res.Price, res.Source)
	}
}

func TestResolveReturnsZeroWhenNothingMatches(t *testing.T) {
	svc, _ := NewService(&stubRepo{})

	res, err := svc.Resolve(context.Background(), ResolveInput{
		OrderGroupID: uuid.New(),
		UnitTypeID:   uuid.New(),
	})
	if err != nil {
		t.Fatalf("missing price data must not error: %v", err)
	}
	if res.Price != 0 || res.Source != SourceNone {
		t.Fatalf("expected zero price, got %d (%s)", res.Price, res.Source)
	}
}
