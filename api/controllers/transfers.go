package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/warehouse-backend/api/responses"
	"github.com/angelmondragon/warehouse-backend/api/validators"
	"github.com/angelmondragon/warehouse-backend/internal/transfers"
	"github.com/angelmondragon/warehouse-backend/pkg/logger"
)

type createTransferRequest struct {
	SKU          string `json:"sku" validate:"required"`
	FromLocation string `json:"from_location" validate:"required"`
	FromRack     string `json:"from_rack" validate:"required"`
	ToLocation   string `json:"to_location" validate:"required"`
	ToRack       string `json:"to_rack" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required"`
	RequestedBy  string `json:"requested_by" validate:"required"`
}

type approveTransferRequest struct {
	ApprovedBy string `json:"approved_by" validate:"required"`
}

func CreateTransfer(svc transfers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTransferRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSKU(ctx, req.SKU)
		}
		result, err := svc.Create(ctx, transfers.CreateTransferInput{
			SKU:          req.SKU,
			FromLocation: req.FromLocation,
			FromRack:     req.FromRack,
			ToLocation:   req.ToLocation,
			ToRack:       req.ToRack,
			Quantity:     req.Quantity,
			RequestedBy:  req.RequestedBy,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ApproveTransfer(svc transfers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transferID := chi.URLParam(r, "transferId")
		var req approveTransferRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Approve(r.Context(), transferID, req.ApprovedBy)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ListTransfers(svc transfers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh, err := validators.ParseQueryBool(r, "refresh", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), refresh)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
