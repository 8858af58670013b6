package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/validator"
)

type EstimatorService interface {
	Estimate(ctx context.Context, req models.EstimateRequest) (models.Estimate, error)
	ConfirmBooking(ctx context.Context, estimateID uuid.UUID, passengerID string) (models.Booking, error)
	Landmarks() []models.Landmark
}

type Estimator struct {
	s   EstimatorService
	now func() time.Time
	l   logger.Logger
}

func NewEstimator(s EstimatorService, l logger.Logger) *Estimator {
	return &Estimator{
		s:   s,
		now: time.Now,
		l:   l,
	}
}

// CreateEstimate godoc
// @Summary      Estimate fare and ETA
// @Description  Resolves both locations and simulates fare, ETA, surge, confidence and feature impacts. Responds after the configured estimate delay.
// @Tags         Estimates
// @Accept       json
// @Produce      json
// @Param        request  body      dto.EstimateRequest  true  "Form inputs"
// @Success      200      {object}  dto.EstimateResponse
// @Failure      400      {object}  map[string]string
// @Failure      422      {object}  map[string]any
// @Router       /estimates [post]
func (h *Estimator) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "http_create_estimate")

	var req dto.EstimateRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if !req.HasLocations() {
		badRequestResponse(w, types.ErrMissingLocations.Error())
		return
	}

	v := validator.New()
	if req.Validate(v); !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	estimate, err := h.s.Estimate(ctx, req.ToModel(h.now()))
	if err != nil {
		if GetCode(err) == http.StatusInternalServerError {
			h.l.Error(wrap.ErrorCtx(ctx, err), "failed to estimate fare", err)
		}
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, dto.NewEstimateResponse(estimate), nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// ConfirmBooking godoc
// @Summary      Book an estimate
// @Description  Confirms a cached estimate after the configured booking delay. Each estimate can be booked once.
// @Tags         Estimates
// @Produce      json
// @Param        estimate_id  path      string  true  "Estimate ID"
// @Success      200          {object}  dto.BookingResponse
// @Failure      400          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /estimates/{estimate_id}/booking [post]
func (h *Estimator) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "http_confirm_booking")

	estimateID, err := uuid.Parse(r.PathValue("estimate_id"))
	if err != nil {
		badRequestResponse(w, "invalid estimate id")
		return
	}

	var passengerID string
	if u := models.UserFromContext(ctx); !u.IsAnonymous() {
		passengerID = u.ID
	}

	booking, err := h.s.ConfirmBooking(ctx, estimateID, passengerID)
	if err != nil {
		if errors.Is(err, types.ErrEstimateNotFound) {
			notFoundResponse(w, err.Error())
			return
		}
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to confirm booking", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, dto.NewBookingResponse(booking), nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
	}
}

// ListLocations godoc
// @Summary      Known landmarks
// @Tags         Estimates
// @Produce      json
// @Success      200  {object}  map[string][]models.Landmark
// @Router       /locations [get]
func (h *Estimator) ListLocations(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, envelope{"locations": h.s.Landmarks()}, nil); err != nil {
		h.l.Error(r.Context(), "failed to write response", err)
	}
}
