package releases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type memRepo struct {
	releases   map[uuid.UUID]*models.ContractorRelease
	people     map[uuid.UUID]*models.Contractor
	contracts  map[uuid.UUID]*models.Contract
	keyUnits   map[uuid.UUID]*models.KeyUnit
	houseUnits map[uuid.UUID]*models.HouseUnit
	cashBooks  map[uuid.UUID]*models.ProjectCashBook
}

func newMemRepo() *memRepo {
	return &memRepo{
		releases:   map[uuid.UUID]*models.ContractorRelease{},
		people:     map[uuid.UUID]*models.Contractor{},
		contracts:  map[uuid.UUID]*models.Contract{},
		keyUnits:   map[uuid.UUID]*models.KeyUnit{},
		houseUnits: map[uuid.UUID]*models.HouseUnit{},
		cashBooks:  map[uuid.UUID]*models.ProjectCashBook{},
	}
}

func (m *memRepo) WithTx(tx *gorm.DB) Repository { return m }

func (m *memRepo) CreateRelease(ctx context.Context, release *models.ContractorRelease) (*models.ContractorRelease, error) {
	m.releases[release.ID] = release
	return release, nil
}

func (m *memRepo) FindRelease(ctx context.Context, id uuid.UUID) (*models.ContractorRelease, error) {
	release, ok := m.releases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *release
	return &clone, nil
}

func (m *memRepo) FindReleaseForUpdate(ctx context.Context, id uuid.UUID) (*models.ContractorRelease, error) {
	return m.FindRelease(ctx, id)
}

func (m *memRepo) SaveRelease(ctx context.Context, release *models.ContractorRelease) error {
	m.releases[release.ID] = release
	return nil
}

func (m *memRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ContractorRelease, error) {
	var rows []models.ContractorRelease
	for _, release := range m.releases {
		if release.ProjectID == projectID {
			rows = append(rows, *release)
		}
	}
	return rows, nil
}

func (m *memRepo) FindContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	contractor, ok := m.people[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *contractor
	return &clone, nil
}

func (m *memRepo) SaveContractor(ctx context.Context, contractor *models.Contractor) error {
	m.people[contractor.ID] = contractor
	return nil
}

func (m *memRepo) FindContract(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	contract, ok := m.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *contract
	return &clone, nil
}

func (m *memRepo) SaveContract(ctx context.Context, contract *models.Contract) error {
	m.contracts[contract.ID] = contract
	return nil
}

func (m *memRepo) FindKeyUnitByContract(ctx context.Context, contractID uuid.UUID) (*models.KeyUnit, error) {
	for _, unit := range m.keyUnits {
		if unit.ContractID != nil && *unit.ContractID == contractID {
			return unit, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) SetKeyUnitContract(ctx context.Context, keyUnitID uuid.UUID, contractID *uuid.UUID) error {
	m.keyUnits[keyUnitID].ContractID = contractID
	return nil
}

func (m *memRepo) FindHouseUnitByKeyUnit(ctx context.Context, keyUnitID uuid.UUID) (*models.HouseUnit, error) {
	for _, unit := range m.houseUnits {
		if unit.KeyUnitID != nil && *unit.KeyUnitID == keyUnitID {
			return unit, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) SetHouseUnitKeyUnit(ctx context.Context, houseUnitID uuid.UUID, keyUnitID *uuid.UUID) error {
	m.houseUnits[houseUnitID].KeyUnitID = keyUnitID
	return nil
}

func (m *memRepo) ListDepositPayments(ctx context.Context, contractID uuid.UUID) ([]models.ProjectCashBook, error) {
	var rows []models.ProjectCashBook
	for _, row := range m.cashBooks {
		if row.ContractID != nil && *row.ContractID == contractID && row.Sort == enums.AccountSortDeposit {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (m *memRepo) SaveCashBook(ctx context.Context, row *models.ProjectCashBook) error {
	stored := m.cashBooks[row.ID]
	stored.ProjectAccountD3 = row.ProjectAccountD3
	stored.RefundContractorID = row.RefundContractorID
	stored.Note = row.Note
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fixture struct {
	repo       *memRepo
	svc        Service
	release    *models.ContractorRelease
	contractor *models.Contractor
	contract   *models.Contract
	keyUnit    *models.KeyUnit
	houseUnit  *models.HouseUnit
	payment    *models.ProjectCashBook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemRepo()
	svc, err := NewService(repo, stubTx{}, 13)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	projectID := uuid.New()
	contract := &models.Contract{
		ID:           uuid.New(),
		ProjectID:    projectID,
		SerialNumber: "601-1203-0003",
		Activation:   true,
	}
	repo.contracts[contract.ID] = contract

	contractor := &models.Contractor{
		ID:         uuid.New(),
		ContractID: contract.ID,
		Name:       "Lee Jiyoung",
		IsRegisted: true,
		IsActive:   true,
		Status:     enums.ContractorStatusContracted,
	}
	repo.people[contractor.ID] = contractor

	keyUnit := &models.KeyUnit{ID: uuid.New(), ProjectID: projectID, ContractID: &contract.ID}
	repo.keyUnits[keyUnit.ID] = keyUnit

	houseUnit := &models.HouseUnit{ID: uuid.New(), ProjectID: projectID, KeyUnitID: &keyUnit.ID}
	repo.houseUnits[houseUnit.ID] = houseUnit

	payment := &models.ProjectCashBook{
		ID:               uuid.New(),
		ProjectID:        projectID,
		Sort:             enums.AccountSortDeposit,
		ProjectAccountD2: enums.AccountD2Sale,
		ProjectAccountD3: enums.AccountD3SaleIntake,
		ContractID:       &contract.ID,
		Income:           10_000_000,
		DealDate:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.cashBooks[payment.ID] = payment

	release := &models.ContractorRelease{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ContractorID: contractor.ID,
		Status:       enums.ReleaseStatusRequested,
		RequestDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.releases[release.ID] = release

	return &fixture{
		repo:       repo,
		svc:        svc,
		release:    release,
		contractor: contractor,
		contract:   contract,
		keyUnit:    keyUnit,
		houseUnit:  houseUnit,
		payment:    payment,
	}
}

func completeCommand(f *fixture) ProcessCommand {
	completion := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	return ProcessCommand{
		ReleaseID:      f.release.ID,
		Status:         enums.ReleaseStatusCompleted,
		RefundAmount:   10_000_000,
		CompletionDate: &completion,
		ActorID:        uuid.New(),
	}
}

func TestCreateOpensRequestedCase(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), CreateCommand{
		ProjectID:    f.release.ProjectID,
		ContractorID: f.contractor.ID,
		RefundAmount: 5_000_000,
		RefundBank:   "KB",
		RequestDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ActorID:      uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != enums.ReleaseStatusRequested {
		t.Fatalf("new case must start requested, got %v", created.Status)
	}
	if created.RefundAmount != 5_000_000 || created.RefundAccountBank != "KB" {
		t.Fatalf("refund fields not recorded: %+v", created)
	}

	// no side effects before finalization
	if !f.repo.contracts[f.contract.ID].Activation {
		t.Fatalf("contract must stay active on case open")
	}
}

func TestCreateRejectsReleasedContractor(t *testing.T) {
	f := newFixture(t)
	f.contractor.Status = enums.ContractorStatusReleased

	_, err := f.svc.Create(context.Background(), CreateCommand{
		ProjectID:    f.release.ProjectID,
		ContractorID: f.contractor.ID,
		RequestDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ActorID:      uuid.New(),
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCreateUnknownContractor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateCommand{
		ProjectID:    f.release.ProjectID,
		ContractorID: uuid.New(),
		RequestDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ActorID:      uuid.New(),
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProcessCompletionAppliesAllSideEffects(t *testing.T) {
	f := newFixture(t)

	release, err := f.svc.Process(context.Background(), completeCommand(f))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if release.Status != enums.ReleaseStatusCompleted {
		t.Fatalf("status not advanced: %v", release.Status)
	}

	contract := f.repo.contracts[f.contract.ID]
	if contract.Activation {
		t.Fatalf("contract still active")
	}
	if contract.SerialNumber != "601-1203-0003-terminated-2026-04-15" {
		t.Fatalf("serial not rewritten: %s", contract.SerialNumber)
	}

	if f.keyUnit.ContractID != nil {
		t.Fatalf("key unit not released")
	}
	if f.houseUnit.KeyUnitID != nil {
		t.Fatalf("house unit not released")
	}

	payment := f.repo.cashBooks[f.payment.ID]
	if payment.ProjectAccountD3 != enums.AccountD3SaleRefund {
		t.Fatalf("payment not reclassified: %v", payment.ProjectAccountD3)
	}
	if payment.RefundContractorID == nil || *payment.RefundContractorID != f.contractor.ID {
		t.Fatalf("refund contractor not recorded")
	}
	// note cites the serial truncated to the configured width
	if !strings.Contains(payment.Note, "601-1203-0003") {
		t.Fatalf("note missing serial reference: %s", payment.Note)
	}
	if !strings.Contains(payment.Note, "2026-04-15 Lee Jiyoung refund complete") {
		t.Fatalf("note missing completion details: %s", payment.Note)
	}

	contractor := f.repo.people[f.contractor.ID]
	if contractor.IsRegisted || contractor.IsActive {
		t.Fatalf("contractor not closed out: %+v", contractor)
	}
	if contractor.Status != enums.ContractorStatusReleased {
		t.Fatalf("contractor status not released: %v", contractor.Status)
	}
}

func TestProcessCompletionAppendsToExistingNote(t *testing.T) {
	f := newFixture(t)
	f.payment.Note = "wired from branch office"

	if _, err := f.svc.Process(context.Background(), completeCommand(f)); err != nil {
		t.Fatalf("process: %v", err)
	}

	note := f.repo.cashBooks[f.payment.ID].Note
	if !strings.HasPrefix(note, "wired from branch office, refund case") {
		t.Fatalf("existing note must be preserved with comma join: %s", note)
	}
}

func TestProcessIsIdempotentOnceTerminal(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Process(context.Background(), completeCommand(f)); err != nil {
		t.Fatalf("first process: %v", err)
	}
	serialAfterFirst := f.repo.contracts[f.contract.ID].SerialNumber
	noteAfterFirst := f.repo.cashBooks[f.payment.ID].Note

	// second finalize request must not re-run side effects
	cmd := completeCommand(f)
	cmd.Status = enums.ReleaseStatusDisqualified
	if _, err := f.svc.Process(context.Background(), cmd); err != nil {
		t.Fatalf("second process: %v", err)
	}

	if got := f.repo.contracts[f.contract.ID].SerialNumber; got != serialAfterFirst {
		t.Fatalf("serial rewritten twice: %s", got)
	}
	if got := f.repo.cashBooks[f.payment.ID].Note; got != noteAfterFirst {
		t.Fatalf("note appended twice: %s", got)
	}
	if f.repo.cashBooks[f.payment.ID].ProjectAccountD3 != enums.AccountD3SaleRefund {
		t.Fatalf("refund classification lost")
	}
}

func TestProcessNonTerminalSkipsSideEffects(t *testing.T) {
	f := newFixture(t)

	cmd := completeCommand(f)
	cmd.Status = enums.ReleaseStatusInReview
	cmd.CompletionDate = nil

	if _, err := f.svc.Process(context.Background(), cmd); err != nil {
		t.Fatalf("process: %v", err)
	}

	if !f.repo.contracts[f.contract.ID].Activation {
		t.Fatalf("contract must stay active before finalization")
	}
	if f.repo.cashBooks[f.payment.ID].ProjectAccountD3 != enums.AccountD3SaleIntake {
		t.Fatalf("payments must stay intake before finalization")
	}
	if f.repo.releases[f.release.ID].Status != enums.ReleaseStatusInReview {
		t.Fatalf("release status not saved")
	}
}

func TestProcessRequiresCompletionDateToFinalize(t *testing.T) {
	f := newFixture(t)

	cmd := completeCommand(f)
	cmd.CompletionDate = nil

	_, err := f.svc.Process(context.Background(), cmd)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProcessReleaseNotFound(t *testing.T) {
	f := newFixture(t)

	cmd := completeCommand(f)
	cmd.ReleaseID = uuid.New()

	_, err := f.svc.Process(context.Background(), cmd)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
