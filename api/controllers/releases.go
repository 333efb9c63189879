package controllers

import (
	"net/http"
	"time"

	"github.com/estatelab/estate-backend/api/responses"
	"github.com/estatelab/estate-backend/api/validators"
	"github.com/estatelab/estate-backend/internal/releases"
	"github.com/estatelab/estate-backend/pkg/enums"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/estatelab/estate-backend/pkg/logger"
)

type createReleaseRequest struct {
	ProjectID    string    `json:"project_id" validate:"required,uuid"`
	ContractorID string    `json:"contractor_id" validate:"required,uuid"`
	RefundAmount int64     `json:"refund_amount" validate:"min=0"`
	RefundBank   string    `json:"refund_bank"`
	RefundNumber string    `json:"refund_number"`
	RefundHolder string    `json:"refund_holder"`
	RequestDate  time.Time `json:"request_date" validate:"required"`
	Note         string    `json:"note"`
}

type processReleaseRequest struct {
	Status         int        `json:"status" validate:"required"`
	RefundAmount   int64      `json:"refund_amount" validate:"min=0"`
	RefundBank     string     `json:"refund_bank"`
	RefundNumber   string     `json:"refund_number"`
	RefundHolder   string     `json:"refund_holder"`
	CompletionDate *time.Time `json:"completion_date"`
	Note           string     `json:"note"`
}

func ReleaseCreate(svc releases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createReleaseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		projectID, err := parseUUIDField(req.ProjectID, "project id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contractorID, err := parseUUIDField(req.ContractorID, "contractor id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		release, err := svc.Create(r.Context(), releases.CreateCommand{
			ProjectID:    projectID,
			ContractorID: contractorID,
			RefundAmount: req.RefundAmount,
			RefundBank:   req.RefundBank,
			RefundNumber: req.RefundNumber,
			RefundHolder: req.RefundHolder,
			RequestDate:  req.RequestDate,
			Note:         req.Note,
			ActorID:      actorID,
			Timestamp:    time.Now().UTC(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, release)
	}
}

func ReleaseProcess(svc releases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		releaseID, err := pathUUID(r, "releaseId", "release id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req processReleaseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.ReleaseStatus(req.Status)
		if !status.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid release status"))
			return
		}

		release, err := svc.Process(r.Context(), releases.ProcessCommand{
			ReleaseID:      releaseID,
			Status:         status,
			RefundAmount:   req.RefundAmount,
			RefundBank:     req.RefundBank,
			RefundNumber:   req.RefundNumber,
			RefundHolder:   req.RefundHolder,
			CompletionDate: req.CompletionDate,
			Note:           req.Note,
			ActorID:        actorID,
			Timestamp:      time.Now().UTC(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, release)
	}
}

func ReleaseDetail(svc releases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		releaseID, err := pathUUID(r, "releaseId", "release id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		release, err := svc.Detail(r.Context(), releaseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, release)
	}
}

func ReleaseList(svc releases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathUUID(r, "projectId", "project id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByProject(r.Context(), projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
