package contracts

import (
	"time"

	"github.com/estatelab/estate-backend/pkg/db/models"
	"github.com/estatelab/estate-backend/pkg/enums"
	"github.com/google/uuid"
)

// ContractorInput carries buyer fields supplied with a contract write.
type ContractorInput struct {
	Name            string
	BirthDate       *time.Time
	Gender          *string
	IsRegisted      bool
	Status          enums.ContractorStatus
	ReservationDate *time.Time
	ContractDate    *time.Time
	Note            string
}

// AddressInput carries the registered (id_*) and postal (dm_*) addresses.
type AddressInput struct {
	IDZipcode  string
	IDAddress1 string
	IDAddress2 string
	IDAddress3 string
	DMZipcode  string
	DMAddress1 string
	DMAddress2 string
	DMAddress3 string
}

// ContactInput carries the buyer's phone numbers and email.
type ContactInput struct {
	Cell  string
	Home  string
	Other string
	Email string
}

// FirstPaymentInput books the initial down-payment ledger row together with
// contract creation.
type FirstPaymentInput struct {
	InstallmentOrderID uuid.UUID
	BankAccountID      uuid.UUID
	Income             int64
	Trader             string
	DealDate           time.Time
}

// PaymentInput carries an intake ledger row supplied with a contract
// modification. A nil ID appends a new row; a set ID edits that row.
type PaymentInput struct {
	ID                 *uuid.UUID
	InstallmentOrderID uuid.UUID
	BankAccountID      uuid.UUID
	Income             int64
	Trader             string
	DealDate           time.Time
}

// CreateContractCommand captures everything needed to register a contract.
type CreateContractCommand struct {
	ProjectID    uuid.UUID
	OrderGroupID uuid.UUID
	UnitTypeID   uuid.UUID
	KeyUnitID    uuid.UUID
	HouseUnitID  *uuid.UUID
	SerialNumber string
	IsSupCont    bool
	SupContDate  *time.Time

	Contractor   ContractorInput
	Address      AddressInput
	Contact      ContactInput
	FirstPayment *FirstPaymentInput

	ActorID   uuid.UUID
	Timestamp time.Time
}

// UpdateContractCommand captures a contract modification, including unit
// rebinding.
type UpdateContractCommand struct {
	ContractID   uuid.UUID
	OrderGroupID uuid.UUID
	UnitTypeID   uuid.UUID
	KeyUnitID    uuid.UUID
	HouseUnitID  *uuid.UUID

	Contractor ContractorInput
	Address    AddressInput
	Contact    ContactInput
	Payment    *PaymentInput

	ActorID   uuid.UUID
	Timestamp time.Time
}

// ContractDetail is the read model returned for a single contract.
type ContractDetail struct {
	Contract      models.Contract
	KeyUnit       *models.KeyUnit
	HouseUnit     *models.HouseUnit
	Price         *models.ContractPrice
	Contractor    *models.Contractor
	TotalPaid     int64
	LastPaidOrder *models.InstallmentPaymentOrder
}

// ListFilters narrows contract listings.
type ListFilters struct {
	OrderGroupID *uuid.UUID
	UnitTypeID   *uuid.UUID
	ActiveOnly   bool
	Query        string
}

// ContractList is a cursor page of contracts.
type ContractList struct {
	Contracts  []models.Contract
	NextCursor string
}

// TypeSummary aggregates contract counts per unit type.
type TypeSummary struct {
	UnitTypeID    uuid.UUID `json:"unit_type_id"`
	ContractCount int       `json:"contract_count"`
}

// GroupSummary aggregates contract counts per order group and unit type.
type GroupSummary struct {
	OrderGroupID  uuid.UUID `json:"order_group_id"`
	UnitTypeID    uuid.UUID `json:"unit_type_id"`
	ContractCount int       `json:"contract_count"`
}
