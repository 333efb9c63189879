package releases

import (
	"context"
	"fmt"
	"time"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns termination cases. Advancing a case to a terminal status
// applies the full set of side effects exactly once: the contract is
// deactivated and its serial rewritten, both units are released back to
// inventory, intake payments are reclassified as refunds and the contractor
// is closed out.
type Service interface {
	Create(ctx context.Context, cmd CreateCommand) (*models.ContractorRelease, error)
	Process(ctx context.Context, cmd ProcessCommand) (*models.ContractorRelease, error)
	Detail(ctx context.Context, releaseID uuid.UUID) (*models.ContractorRelease, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ContractorRelease, error)
}

// CreateCommand opens a release case. Cases always start at the requested
// status; advancing them goes through Process.
type CreateCommand struct {
	ProjectID    uuid.UUID
	ContractorID uuid.UUID
	RefundAmount int64
	RefundBank   string
	RefundNumber string
	RefundHolder string
	RequestDate  time.Time
	Note         string

	ActorID   uuid.UUID
	Timestamp time.Time
}

// ProcessCommand carries a release-case update.
type ProcessCommand struct {
	ReleaseID      uuid.UUID
	Status         enums.ReleaseStatus
	RefundAmount   int64
	RefundBank     string
	RefundNumber   string
	RefundHolder   string
	CompletionDate *time.Time
	Note           string

	ActorID   uuid.UUID
	Timestamp time.Time
}

type service struct {
	repo            Repository
	tx              txRunner
	serialNoteWidth int
}

// NewService builds a releases service. serialNoteWidth bounds how much of
// the (possibly rewritten) serial number is cited in refund notes.
func NewService(repo Repository, tx txRunner, serialNoteWidth int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("releases repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if serialNoteWidth <= 0 {
		serialNoteWidth = 13
	}
	return &service{repo: repo, tx: tx, serialNoteWidth: serialNoteWidth}, nil
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*models.ContractorRelease, error) {
	switch {
	case cmd.ProjectID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	case cmd.ContractorID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contractor id required")
	case cmd.RequestDate.IsZero():
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request date required")
	case cmd.ActorID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}

	var result *models.ContractorRelease
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		contractor, err := repo.FindContractor(ctx, cmd.ContractorID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "contractor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor")
		}
		if contractor.Status == enums.ContractorStatusReleased {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "contractor already released")
		}

		release := &models.ContractorRelease{
			ProjectID:              cmd.ProjectID,
			ContractorID:           cmd.ContractorID,
			Status:                 enums.ReleaseStatusRequested,
			RefundAmount:           cmd.RefundAmount,
			RefundAccountBank:      cmd.RefundBank,
			RefundAccountNumber:    cmd.RefundNumber,
			RefundAccountDepositor: cmd.RefundHolder,
			RequestDate:            cmd.RequestDate,
			Note:                   cmd.Note,
		}
		created, err := repo.CreateRelease(ctx, release)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create release")
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Process(ctx context.Context, cmd ProcessCommand) (*models.ContractorRelease, error) {
	if cmd.ReleaseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "release id required")
	}
	if !cmd.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid release status")
	}
	if cmd.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	if cmd.Status.IsTerminal() && cmd.CompletionDate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "completion date required to finalize a release")
	}

	var result *models.ContractorRelease
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		release, err := repo.FindReleaseForUpdate(ctx, cmd.ReleaseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "release not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load release")
		}

		alreadyDone := release.Status.IsTerminal()

		release.Status = cmd.Status
		release.RefundAmount = cmd.RefundAmount
		release.RefundAccountBank = cmd.RefundBank
		release.RefundAccountNumber = cmd.RefundNumber
		release.RefundAccountDepositor = cmd.RefundHolder
		release.CompletionDate = cmd.CompletionDate
		release.Note = cmd.Note

		if !alreadyDone && cmd.Status.IsTerminal() {
			if err := s.finalize(ctx, repo, release, *cmd.CompletionDate); err != nil {
				return err
			}
		}

		if err := repo.SaveRelease(ctx, release); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save release")
		}
		result = release
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// finalize applies the one-time termination side effects. The caller holds
// the row lock and has verified the case was not terminal before this call.
func (s *service) finalize(ctx context.Context, repo Repository, release *models.ContractorRelease, completionDate time.Time) error {
	contractor, err := repo.FindContractor(ctx, release.ContractorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contractor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor")
	}

	contract, err := repo.FindContract(ctx, contractor.ContractID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}

	dateStr := completionDate.Format("2006-01-02")

	contract.SerialNumber = fmt.Sprintf("%s-terminated-%s", contract.SerialNumber, dateStr)
	contract.Activation = false
	if err := repo.SaveContract(ctx, contract); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate contract")
	}

	keyUnit, err := repo.FindKeyUnitByContract(ctx, contract.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load key unit")
	}
	if keyUnit != nil {
		houseUnit, err := repo.FindHouseUnitByKeyUnit(ctx, keyUnit.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load house unit")
		}
		if err := repo.SetKeyUnitContract(ctx, keyUnit.ID, nil); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release key unit")
		}
		if houseUnit != nil {
			if err := repo.SetHouseUnitKeyUnit(ctx, houseUnit.ID, nil); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release house unit")
			}
		}
	}

	payments, err := repo.ListDepositPayments(ctx, contract.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contract payments")
	}

	serial := contract.SerialNumber
	if len(serial) > s.serialNoteWidth {
		serial = serial[:s.serialNoteWidth]
	}
	msg := fmt.Sprintf("refund case - %s (%s %s refund complete)", serial, dateStr, contractor.Name)

	for i := range payments {
		payment := &payments[i]
		if payment.ProjectAccountD3.IsIntake() {
			payment.ProjectAccountD3 = payment.ProjectAccountD3.Refund()
			payment.RefundContractorID = &contractor.ID
		}
		if payment.Note != "" {
			payment.Note = payment.Note + ", " + msg
		} else {
			payment.Note = msg
		}
		if err := repo.SaveCashBook(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reclassify payment")
		}
	}

	contractor.IsRegisted = false
	contractor.IsActive = false
	contractor.Status = enums.ContractorStatusReleased
	if err := repo.SaveContractor(ctx, contractor); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close out contractor")
	}
	return nil
}

func (s *service) Detail(ctx context.Context, releaseID uuid.UUID) (*models.ContractorRelease, error) {
	if releaseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "release id required")
	}
	release, err := s.repo.FindRelease(ctx, releaseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "release not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load release")
	}
	return release, nil
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ContractorRelease, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	rows, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list releases")
	}
	return rows, nil
}
