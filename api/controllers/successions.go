package controllers

import (
	"net/http"
	"time"

	"github.com/estatelab/estate-backend/api/responses"
	"github.com/estatelab/estate-backend/api/validators"
	"github.com/estatelab/estate-backend/internal/successions"
	"github.com/estatelab/estate-backend/pkg/logger"
)

type successionBuyerRequest struct {
	Name      string     `json:"name" validate:"required"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    *string    `json:"gender"`

	IDZipcode  string `json:"id_zipcode"`
	IDAddress1 string `json:"id_address1"`
	IDAddress2 string `json:"id_address2"`
	IDAddress3 string `json:"id_address3"`
	DMZipcode  string `json:"dm_zipcode"`
	DMAddress1 string `json:"dm_address1"`
	DMAddress2 string `json:"dm_address2"`
	DMAddress3 string `json:"dm_address3"`

	Cell  string `json:"cell"`
	Home  string `json:"home"`
	Other string `json:"other"`
	Email string `json:"email" validate:"omitempty,email"`
}

type createSuccessionRequest struct {
	ContractID  string                 `json:"contract_id" validate:"required,uuid"`
	Buyer       successionBuyerRequest `json:"buyer" validate:"required"`
	ApplyDate   time.Time              `json:"apply_date" validate:"required"`
	TradingDate time.Time              `json:"trading_date" validate:"required"`
	Note        string                 `json:"note"`
}

type updateSuccessionRequest struct {
	Buyer        *successionBuyerRequest `json:"buyer"`
	ApplyDate    time.Time               `json:"apply_date" validate:"required"`
	TradingDate  time.Time               `json:"trading_date" validate:"required"`
	ApprovalDate *time.Time              `json:"approval_date"`
	IsApproval   bool                    `json:"is_approval"`
	Note         string                  `json:"note"`
}

func buyerInput(req successionBuyerRequest) successions.BuyerInput {
	return successions.BuyerInput{
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		Gender:     req.Gender,
		IDZipcode:  req.IDZipcode,
		IDAddress1: req.IDAddress1,
		IDAddress2: req.IDAddress2,
		IDAddress3: req.IDAddress3,
		DMZipcode:  req.DMZipcode,
		DMAddress1: req.DMAddress1,
		DMAddress2: req.DMAddress2,
		DMAddress3: req.DMAddress3,
		Cell:       req.Cell,
		Home:       req.Home,
		Other:      req.Other,
		Email:      req.Email,
	}
}

func SuccessionCreate(svc successions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createSuccessionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractID, err := parseUUIDField(req.ContractID, "contract id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		succession, err := svc.Create(r.Context(), successions.CreateCommand{
			ContractID:  contractID,
			Buyer:       buyerInput(req.Buyer),
			ApplyDate:   req.ApplyDate,
			TradingDate: req.TradingDate,
			Note:        req.Note,
			ActorID:     actorID,
			Timestamp:   time.Now().UTC(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, succession)
	}
}

func SuccessionUpdate(svc successions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		successionID, err := pathUUID(r, "successionId", "succession id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateSuccessionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cmd := successions.UpdateCommand{
			SuccessionID: successionID,
			ApplyDate:    req.ApplyDate,
			TradingDate:  req.TradingDate,
			ApprovalDate: req.ApprovalDate,
			IsApproval:   req.IsApproval,
			Note:         req.Note,
			ActorID:      actorID,
			Timestamp:    time.Now().UTC(),
		}
		if req.Buyer != nil {
			buyer := buyerInput(*req.Buyer)
			cmd.Buyer = &buyer
		}

		succession, err := svc.Update(r.Context(), cmd)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, succession)
	}
}

func SuccessionDetail(svc successions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		successionID, err := pathUUID(r, "successionId", "succession id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		succession, err := svc.Detail(r.Context(), successionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, succession)
	}
}

func SuccessionList(svc successions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contractID, err := validators.ParseQueryUUID(r, "contract_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByContract(r.Context(), contractID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
