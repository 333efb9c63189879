package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/estatelab/estate-backend/internal/contracts"
	"github.com/estatelab/estate-backend/internal/installments"
	"github.com/estatelab/estate-backend/internal/pricing"
	"github.com/estatelab/estate-backend/internal/releases"
	"github.com/estatelab/estate-backend/internal/successions"
	"github.com/estatelab/estate-backend/pkg/config"
	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/logger"
	"github.com/estatelab/estate-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubContractsService struct {
	detail func(ctx context.Context, contractID uuid.UUID) (*contracts.ContractDetail, error)
	list   func(ctx context.Context, projectID uuid.UUID, params pagination.Params, filters contracts.ListFilters) (*contracts.ContractList, error)
}

// Create implements [contracts.Service].
func (s stubContractsService) Create(ctx context.Context, cmd contracts.CreateContractCommand) (*models.Contract, error) {
	panic("unimplemented")
}

// Update implements [contracts.Service].
func (s stubContractsService) Update(ctx context.Context, cmd contracts.UpdateContractCommand) (*models.Contract, error) {
	panic("unimplemented")
}

func (s stubContractsService) Detail(ctx context.Context, contractID uuid.UUID) (*contracts.ContractDetail, error) {
	if s.detail != nil {
		return s.detail(ctx, contractID)
	}
	return &contracts.ContractDetail{}, nil
}

func (s stubContractsService) List(ctx context.Context, projectID uuid.UUID, params pagination.Params, filters contracts.ListFilters) (*contracts.ContractList, error) {
	if s.list != nil {
		return s.list(ctx, projectID, params, filters)
	}
	return &contracts.ContractList{}, nil
}

func (s stubContractsService) RecalculateProjectPrices(ctx context.Context, projectID uuid.UUID) (int, error) {
	return 0, nil
}

// SummarizeByUnitType implements [contracts.Service].
func (s stubContractsService) SummarizeByUnitType(ctx context.Context, projectID uuid.UUID) ([]contracts.TypeSummary, error) {
	panic("unimplemented")
}

// SummarizeByOrderGroup implements [contracts.Service].
func (s stubContractsService) SummarizeByOrderGroup(ctx context.Context, projectID uuid.UUID) ([]contracts.GroupSummary, error) {
	panic("unimplemented")
}

type stubPricingService struct{}

func (stubPricingService) Resolve(ctx context.Context, input pricing.ResolveInput) (*pricing.Resolution, error) {
	return &pricing.Resolution{Source: pricing.SourceNone}, nil
}

func (stubPricingService) ResolveForHouseUnit(ctx context.Context, orderGroupID, unitTypeID uuid.UUID, houseUnitID *uuid.UUID) (*pricing.Resolution, error) {
	return &pricing.Resolution{Source: pricing.SourceNone}, nil
}

type stubInstallmentsService struct{}

func (stubInstallmentsService) Compute(ctx context.Context, input installments.ComputeInput) (*installments.Schedule, error) {
	return &installments.Schedule{}, nil
}

// OverdueRuleFor implements [installments.Service].
func (stubInstallmentsService) OverdueRuleFor(ctx context.Context, projectID uuid.UUID, daysLate int) (*models.OverDueRule, error) {
	panic("unimplemented")
}

type stubPaymentsService struct{}

func (stubPaymentsService) TotalPaid(ctx context.Context, contractID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubPaymentsService) LastReachedOrder(ctx context.Context, contractID uuid.UUID) (*models.InstallmentPaymentOrder, error) {
	return nil, nil
}

func (stubPaymentsService) ListPayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error) {
	return nil, nil
}

type stubReleasesService struct{}

// Create implements [releases.Service].
func (stubReleasesService) Create(ctx context.Context, cmd releases.CreateCommand) (*models.ContractorRelease, error) {
	panic("unimplemented")
}

// Process implements [releases.Service].
func (stubReleasesService) Process(ctx context.Context, cmd releases.ProcessCommand) (*models.ContractorRelease, error) {
	panic("unimplemented")
}

func (stubReleasesService) Detail(ctx context.Context, releaseID uuid.UUID) (*models.ContractorRelease, error) {
	return &models.ContractorRelease{}, nil
}

func (stubReleasesService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ContractorRelease, error) {
	return nil, nil
}

type stubSuccessionsService struct{}

// Create implements [successions.Service].
func (stubSuccessionsService) Create(ctx context.Context, cmd successions.CreateCommand) (*models.Succession, error) {
	panic("unimplemented")
}

// Update implements [successions.Service].
func (stubSuccessionsService) Update(ctx context.Context, cmd successions.UpdateCommand) (*models.Succession, error) {
	panic("unimplemented")
}

func (stubSuccessionsService) Detail(ctx context.Context, successionID uuid.UUID) (*models.Succession, error) {
	return &models.Succession{}, nil
}

func (stubSuccessionsService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Succession, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: "test", Port: "0"},
		Ledger: config.LedgerConfig{SerialNoteWidth: 13},
	}
}

func newTestRouter(cfg *config.Config, contractsSvc contracts.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{}, // db.Pinger
		nil,          // *redis.Client
		nil,          // *prometheus.Registry
		nil,          // *metrics.HTTPMetrics
		contractsSvc,
		stubPricingService{},
		stubInstallmentsService{},
		stubPaymentsService{},
		stubReleasesService{},
		stubSuccessionsService{},
	)
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestHealthReadyReportsStubDependencies(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}

func TestAPIGroupRejectsMissingActorHeader(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without actor header got %d", resp.Code)
	}
}

func TestAPIGroupRejectsMalformedActorHeader(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts/"+uuid.NewString(), nil)
	req.Header.Set("X-Actor-Id", "not-a-uuid")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed actor header got %d", resp.Code)
	}
}

func TestContractDetailReachesService(t *testing.T) {
	contractID := uuid.New()
	var seen uuid.UUID
	svc := stubContractsService{
		detail: func(ctx context.Context, id uuid.UUID) (*contracts.ContractDetail, error) {
			seen = id
			return &contracts.ContractDetail{}, nil
		},
	}
	router := newTestRouter(testConfig(), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts/"+contractID.String(), nil)
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for contract detail got %d", resp.Code)
	}
	if seen != contractID {
		t.Fatalf("expected service to receive %s got %s", contractID, seen)
	}
}

func TestContractListRequiresProjectID(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts", nil)
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without project_id got %d", resp.Code)
	}

	withProject := httptest.NewRequest(http.MethodGet, "/api/v1/contracts?project_id="+uuid.NewString(), nil)
	withProject.Header.Set("X-Actor-Id", uuid.NewString())
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, withProject)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for contract list got %d", resp.Code)
	}
}

func TestContractCreateRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestPricePreviewRequiresQueryParams(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+uuid.NewString()+"/price-preview", nil)
	missing.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, missing)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without order group got %d", resp.Code)
	}

	url := "/api/v1/projects/" + uuid.NewString() + "/price-preview?order_group=" + uuid.NewString() + "&unit_type=" + uuid.NewString()
	valid := httptest.NewRequest(http.MethodGet, url, nil)
	valid.Header.Set("X-Actor-Id", uuid.NewString())
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, valid)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for price preview got %d", resp.Code)
	}
}

func TestSuccessionListRequiresContractID(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/successions", nil)
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without contract_id got %d", resp.Code)
	}
}

func TestReleaseDetailReachesService(t *testing.T) {
	router := newTestRouter(testConfig(), stubContractsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/releases/"+uuid.NewString(), nil)
	req.Header.Set("X-Actor-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for release detail got %d", resp.Code)
	}
}
