package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/estatelab/estate-backend/api/responses"
	"github.com/estatelab/estate-backend/api/validators"
	"github.com/estatelab/estate-backend/internal/contracts"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/estatelab/estate-backend/pkg/logger"
	"github.com/estatelab/estate-backend/pkg/pagination"
)

type contractorRequest struct {
	Name            string     `json:"name" validate:"required"`
	BirthDate       *time.Time `json:"birth_date"`
	Gender          *string    `json:"gender"`
	IsRegisted      bool       `json:"is_registed"`
	Status          string     `json:"status" validate:"required"`
	ReservationDate *time.Time `json:"reservation_date"`
	ContractDate    *time.Time `json:"contract_date"`
	Note            string     `json:"note"`
}

type addressRequest struct {
	IDZipcode  string `json:"id_zipcode" validate:"required"`
	IDAddress1 string `json:"id_address1" validate:"required"`
	IDAddress2 string `json:"id_address2"`
	IDAddress3 string `json:"id_address3"`
	DMZipcode  string `json:"dm_zipcode"`
	DMAddress1 string `json:"dm_address1"`
	DMAddress2 string `json:"dm_address2"`
	DMAddress3 string `json:"dm_address3"`
}

type contactRequest struct {
	Cell  string `json:"cell" validate:"required"`
	Home  string `json:"home"`
	Other string `json:"other"`
	Email string `json:"email" validate:"omitempty,email"`
}

type firstPaymentRequest struct {
	InstallmentOrderID string    `json:"installment_order_id" validate:"required,uuid"`
	BankAccountID      string    `json:"bank_account_id" validate:"required,uuid"`
	Income             int64     `json:"income" validate:"required,min=1"`
	Trader             string    `json:"trader"`
	DealDate           time.Time `json:"deal_date" validate:"required"`
}

type createContractRequest struct {
	ProjectID    string     `json:"project_id" validate:"required,uuid"`
	OrderGroupID string     `json:"order_group_id" validate:"required,uuid"`
	UnitTypeID   string     `json:"unit_type_id" validate:"required,uuid"`
	KeyUnitID    string     `json:"key_unit_id" validate:"required,uuid"`
	HouseUnitID  *string    `json:"house_unit_id" validate:"omitempty,uuid"`
	SerialNumber string     `json:"serial_number" validate:"required"`
	IsSupCont    bool       `json:"is_sup_cont"`
	SupContDate  *time.Time `json:"sup_cont_date"`

	Contractor   contractorRequest    `json:"contractor" validate:"required"`
	Address      addressRequest       `json:"address" validate:"required"`
	Contact      contactRequest       `json:"contact" validate:"required"`
	FirstPayment *firstPaymentRequest `json:"first_payment"`
}

type paymentRequest struct {
	ID                 *string   `json:"id" validate:"omitempty,uuid"`
	InstallmentOrderID string    `json:"installment_order_id" validate:"required,uuid"`
	BankAccountID      string    `json:"bank_account_id" validate:"required,uuid"`
	Income             int64     `json:"income" validate:"required,min=1"`
	Trader             string    `json:"trader"`
	DealDate           time.Time `json:"deal_date" validate:"required"`
}

type updateContractRequest struct {
	OrderGroupID string  `json:"order_group_id" validate:"required,uuid"`
	UnitTypeID   string  `json:"unit_type_id" validate:"required,uuid"`
	KeyUnitID    string  `json:"key_unit_id" validate:"required,uuid"`
	HouseUnitID  *string `json:"house_unit_id" validate:"omitempty,uuid"`

	Contractor contractorRequest `json:"contractor" validate:"required"`
	Address    addressRequest    `json:"address" validate:"required"`
	Contact    contactRequest    `json:"contact" validate:"required"`
	Payment    *paymentRequest   `json:"payment"`
}

func contractorInput(req contractorRequest) (contracts.ContractorInput, error) {
	status, err := enums.ParseContractorStatus(req.Status)
	if err != nil {
		return contracts.ContractorInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid contractor status")
	}
	return contracts.ContractorInput{
		Name:            req.Name,
		BirthDate:       req.BirthDate,
		Gender:          req.Gender,
		IsRegisted:      req.IsRegisted,
		Status:          status,
		ReservationDate: req.ReservationDate,
		ContractDate:    req.ContractDate,
		Note:            req.Note,
	}, nil
}

func addressInput(req addressRequest) contracts.AddressInput {
	return contracts.AddressInput{
		IDZipcode:  req.IDZipcode,
		IDAddress1: req.IDAddress1,
		IDAddress2: req.IDAddress2,
		IDAddress3: req.IDAddress3,
		DMZipcode:  req.DMZipcode,
		DMAddress1: req.DMAddress1,
		DMAddress2: req.DMAddress2,
		DMAddress3: req.DMAddress3,
	}
}

func contactInput(req contactRequest) contracts.ContactInput {
	return contracts.ContactInput{
		Cell:  req.Cell,
		Home:  req.Home,
		Other: req.Other,
		Email: req.Email,
	}
}

func ContractCreate(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createContractRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projectID, err := parseUUIDField(req.ProjectID, "project id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderGroupID, err := parseUUIDField(req.OrderGroupID, "order group id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		unitTypeID, err := parseUUIDField(req.UnitTypeID, "unit type id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		keyUnitID, err := parseUUIDField(req.KeyUnitID, "key unit id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		houseUnitID, err := parseOptionalUUIDField(req.HouseUnitID, "house unit id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contractor, err := contractorInput(req.Contractor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cmd := contracts.CreateContractCommand{
			ProjectID:    projectID,
			OrderGroupID: orderGroupID,
			UnitTypeID:   unitTypeID,
			KeyUnitID:    keyUnitID,
			HouseUnitID:  houseUnitID,
			SerialNumber: strings.TrimSpace(req.SerialNumber),
			IsSupCont:    req.IsSupCont,
			SupContDate:  req.SupContDate,
			Contractor:   contractor,
			Address:      addressInput(req.Address),
			Contact:      contactInput(req.Contact),
			ActorID:      actorID,
			Timestamp:    time.Now().UTC(),
		}
		if req.FirstPayment != nil {
			orderID, err := parseUUIDField(req.FirstPayment.InstallmentOrderID, "installment order id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			bankAccountID, err := parseUUIDField(req.FirstPayment.BankAccountID, "bank account id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			cmd.FirstPayment = &contracts.FirstPaymentInput{
				InstallmentOrderID: orderID,
				BankAccountID:      bankAccountID,
				Income:             req.FirstPayment.Income,
				Trader:             req.FirstPayment.Trader,
				DealDate:           req.FirstPayment.DealDate,
			}
		}

		contract, err := svc.Create(r.Context(), cmd)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, contract)
	}
}

func ContractUpdate(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contractID, err := pathUUID(r, "contractId", "contract id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateContractRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderGroupID, err := parseUUIDField(req.OrderGroupID, "order group id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		unitTypeID, err := parseUUIDField(req.UnitTypeID, "unit type id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		keyUnitID, err := parseUUIDField(req.KeyUnitID, "key unit id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		houseUnitID, err := parseOptionalUUIDField(req.HouseUnitID, "house unit id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contractor, err := contractorInput(req.Contractor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cmd := contracts.UpdateContractCommand{
			ContractID:   contractID,
			OrderGroupID: orderGroupID,
			UnitTypeID:   unitTypeID,
			KeyUnitID:    keyUnitID,
			HouseUnitID:  houseUnitID,
			Contractor:   contractor,
			Address:      addressInput(req.Address),
			Contact:      contactInput(req.Contact),
			ActorID:      actorID,
			Timestamp:    time.Now().UTC(),
		}
		if req.Payment != nil {
			rowID, err := parseOptionalUUIDField(req.Payment.ID, "payment id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			orderID, err := parseUUIDField(req.Payment.InstallmentOrderID, "installment order id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			bankAccountID, err := parseUUIDField(req.Payment.BankAccountID, "bank account id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			cmd.Payment = &contracts.PaymentInput{
				ID:                 rowID,
				InstallmentOrderID: orderID,
				BankAccountID:      bankAccountID,
				Income:             req.Payment.Income,
				Trader:             req.Payment.Trader,
				DealDate:           req.Payment.DealDate,
			}
		}

		contract, err := svc.Update(r.Context(), cmd)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contract)
	}
}

func ContractDetail(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := pathUUID(r, "contractId", "contract id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Detail(r.Context(), contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ContractList(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := validators.ParseQueryUUID(r, "project_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderGroupID, err := validators.ParseOptionalQueryUUID(r, "order_group")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		unitTypeID, err := validators.ParseOptionalQueryUUID(r, "unit_type")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		filters := contracts.ListFilters{
			OrderGroupID: orderGroupID,
			UnitTypeID:   unitTypeID,
			ActiveOnly:   r.URL.Query().Get("active") == "true",
			Query:        strings.TrimSpace(r.URL.Query().Get("q")),
		}

		list, err := svc.List(r.Context(), projectID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ContractRecalculatePrices(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := actorFromRequest(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := pathUUID(r, "projectId", "project id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		touched, err := svc.RecalculateProjectPrices(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"recalculated": touched})
	}
}

func ContractSummary(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathUUID(r, "projectId", "project id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		byType, err := svc.SummarizeByUnitType(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		byGroup, err := svc.SummarizeByOrderGroup(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"by_unit_type":   byType,
			"by_order_group": byGroup,
		})
	}
}
