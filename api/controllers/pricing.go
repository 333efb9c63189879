package controllers

import (
	"net/http"

	"github.com/estatelab/estate-backend/api/responses"
	"github.com/estatelab/estate-backend/api/validators"
	"github.com/estatelab/estate-backend/internal/installments"
	"github.com/estatelab/estate-backend/internal/pricing"
	"github.com/estatelab/estate-backend/pkg/logger"
)

type pricePreviewResponse struct {
	Price      int64  `json:"price"`
	PriceBuild *int64 `json:"price_build,omitempty"`
	PriceLand  *int64 `json:"price_land,omitempty"`
	PriceTax   *int64 `json:"price_tax,omitempty"`
	Source     string `json:"source"`
	IsAverage  bool   `json:"is_average"`

	DownPay      int64 `json:"down_pay"`
	MiddlePay    int64 `json:"middle_pay"`
	RemainPay    int64 `json:"remain_pay"`
	DownCount    int   `json:"down_count"`
	MiddleCount  int   `json:"middle_count"`
	RemainCount  int   `json:"remain_count"`
	DownOverride bool  `json:"down_override"`
}

// PricePreview resolves a price for a prospective contract context and
// derives the installment amounts it would produce, without persisting
// anything.
func PricePreview(pricer pricing.Service, scheduler installments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathUUID(r, "projectId", "project id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderGroupID, err := validators.ParseQueryUUID(r, "order_group")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		unitTypeID, err := validators.ParseQueryUUID(r, "unit_type")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		houseUnitID, err := validators.ParseOptionalQueryUUID(r, "house_unit")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolution, err := pricer.ResolveForHouseUnit(r.Context(), orderGroupID, unitTypeID, houseUnitID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		schedule, err := scheduler.Compute(r.Context(), installments.ComputeInput{
			ProjectID:    projectID,
			OrderGroupID: orderGroupID,
			UnitTypeID:   unitTypeID,
			Price:        resolution.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pricePreviewResponse{
			Price:        resolution.Price,
			PriceBuild:   resolution.PriceBuild,
			PriceLand:    resolution.PriceLand,
			PriceTax:     resolution.PriceTax,
			Source:       string(resolution.Source),
			IsAverage:    resolution.IsAverage(),
			DownPay:      schedule.Down,
			MiddlePay:    schedule.Middle,
			RemainPay:    schedule.Remain,
			DownCount:    schedule.DownCount,
			MiddleCount:  schedule.MiddleCount,
			RemainCount:  schedule.RemainCount,
			DownOverride: schedule.DownOverride,
		})
	}
}
