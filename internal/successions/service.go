package successions

import (
	"context"
	"fmt"
	"time"

	"github.com/estatelab/estate-backend/pkg/db/models"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records ownership transfers between the current contractor and an
// incoming buyer. A succession is bookkeeping only: it never rebinds units
// or touches the payment ledger.
type Service interface {
	Create(ctx context.Context, cmd CreateCommand) (*models.Succession, error)
	Update(ctx context.Context, cmd UpdateCommand) (*models.Succession, error)
	Detail(ctx context.Context, successionID uuid.UUID) (*models.Succession, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Succession, error)
}

// BuyerInput carries the incoming buyer's identity and contact details.
type BuyerInput struct {
	Name      string
	BirthDate *time.Time
	Gender    *string

	IDZipcode  string
	IDAddress1 string
	IDAddress2 string
	IDAddress3 string
	DMZipcode  string
	DMAddress1 string
	DMAddress2 string
	DMAddress3 string

	Cell  string
	Home  string
	Other string
	Email string
}

// CreateCommand opens a succession case on a contract. The seller is always
// the contract's current contractor.
type CreateCommand struct {
	ContractID  uuid.UUID
	Buyer       BuyerInput
	ApplyDate   time.Time
	TradingDate time.Time
	Note        string

	ActorID   uuid.UUID
	Timestamp time.Time
}

// UpdateCommand amends a succession case. Approval fields move together:
// IsApproval without an ApprovalDate is rejected.
type UpdateCommand struct {
	SuccessionID uuid.UUID
	Buyer        *BuyerInput
	ApplyDate    time.Time
	TradingDate  time.Time
	ApprovalDate *time.Time
	IsApproval   bool
	Note         string

	ActorID   uuid.UUID
	Timestamp time.Time
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a successions service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("successions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*models.Succession, error) {
	switch {
	case cmd.ContractID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	case cmd.Buyer.Name == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer name required")
	case cmd.ApplyDate.IsZero():
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "apply date required")
	case cmd.TradingDate.IsZero():
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trading date required")
	case cmd.ActorID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}

	var result *models.Succession
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindContract(ctx, cmd.ContractID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
		}

		seller, err := repo.FindContractorByContract(ctx, cmd.ContractID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "contractor not found for contract")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor")
		}

		buyer, err := repo.CreateBuyer(ctx, buyerModel(cmd.Buyer))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create buyer")
		}

		succession := &models.Succession{
			ContractID:  cmd.ContractID,
			SellerID:    seller.ID,
			BuyerID:     buyer.ID,
			ApplyDate:   cmd.ApplyDate,
			TradingDate: cmd.TradingDate,
			Note:        cmd.Note,
		}
		created, err := repo.CreateSuccession(ctx, succession)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create succession")
		}
		created.Buyer = buyer
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, cmd UpdateCommand) (*models.Succession, error) {
	switch {
	case cmd.SuccessionID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "succession id required")
	case cmd.ApplyDate.IsZero():
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "apply date required")
	case cmd.TradingDate.IsZero():
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "trading date required")
	case cmd.IsApproval && cmd.ApprovalDate == nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "approval date required to approve a succession")
	case cmd.ActorID == uuid.Nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}

	var result *models.Succession
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		succession, err := repo.FindSuccession(ctx, cmd.SuccessionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "succession not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load succession")
		}

		succession.ApplyDate = cmd.ApplyDate
		succession.TradingDate = cmd.TradingDate
		succession.ApprovalDate = cmd.ApprovalDate
		succession.IsApproval = cmd.IsApproval
		succession.Note = cmd.Note

		if cmd.Buyer != nil {
			updated := buyerModel(*cmd.Buyer)
			updated.ID = succession.BuyerID
			if err := repo.SaveBuyer(ctx, updated); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save buyer")
			}
			succession.Buyer = updated
		}

		if err := repo.SaveSuccession(ctx, succession); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save succession")
		}
		result = succession
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Detail(ctx context.Context, successionID uuid.UUID) (*models.Succession, error) {
	if successionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "succession id required")
	}
	succession, err := s.repo.FindSuccession(ctx, successionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "succession not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load succession")
	}
	return succession, nil
}

func (s *service) ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.Succession, error) {
	if contractID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}
	rows, err := s.repo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list successions")
	}
	return rows, nil
}

func buyerModel(input BuyerInput) *models.SuccessionBuyer {
	return &models.SuccessionBuyer{
		Name:       input.Name,
		BirthDate:  input.BirthDate,
		Gender:     input.Gender,
		IDZipcode:  input.IDZipcode,
		IDAddress1: input.IDAddress1,
		IDAddress2: input.IDAddress2,
		IDAddress3: input.IDAddress3,
		DMZipcode:  input.DMZipcode,
		DMAddress1: input.DMAddress1,
		DMAddress2: input.DMAddress2,
		DMAddress3: input.DMAddress3,
		Cell:       input.Cell,
		Home:       input.Home,
		Other:      input.Other,
		Email:      input.Email,
	}
}
