package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boumebar/swim/internal/iri"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/service"
)

// ReservationHandler handles the reservation resource endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// ReservationRequest represents a reservation create or full-replace
// payload. Pool is a pool resource path. A renter field in the body is
// ignored; the renter is always the caller.
type ReservationRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Pool      string    `json:"pool" validate:"required"`
	Approved  bool      `json:"approved"`
}

// ReservationPatchRequest represents a partial reservation update payload.
type ReservationPatchRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Pool      *string    `json:"pool"`
	Approved  *bool      `json:"approved"`
}

// ReservationResponse represents a reservation in responses. The pool and
// renter relations are resource paths.
type ReservationResponse struct {
	ID        uint      `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Pool      string    `json:"pool"`
	Renter    string    `json:"renter"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

func reservationResponse(reservation *model.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        reservation.ID,
		StartDate: reservation.StartDate,
		EndDate:   reservation.EndDate,
		Pool:      iri.Pool(reservation.PoolID),
		Renter:    iri.User(reservation.RenterID),
		Approved:  reservation.Approved,
		CreatedAt: reservation.CreatedAt,
	}
}

func reservationResponses(reservations []model.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, reservationResponse(&reservations[i]))
	}
	return out
}

// ListReservations godoc
// @Summary List reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReservationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	reservations, err := h.reservationService.ListReservations(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reservationResponses(reservations))
}

// GetReservation godoc
// @Summary Get reservation by id
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} ReservationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	reservation, err := h.reservationService.GetReservation(c.Request().Context(), principalFrom(c), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reservationResponse(reservation))
}

// CreateReservation godoc
// @Summary Book a pool for the caller
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservation body ReservationRequest true "Reservation payload"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	reservation, err := h.reservationService.CreateReservation(c.Request().Context(), principalFrom(c), reservationInput(req))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, reservationResponse(reservation))
}

// ReplaceReservation godoc
// @Summary Replace a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param reservation body ReservationRequest true "Reservation payload"
// @Success 200 {object} ReservationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /reservations/{id} [put]
func (h *ReservationHandler) ReplaceReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ReservationRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	reservation, err := h.reservationService.ReplaceReservation(c.Request().Context(), principalFrom(c), id, reservationInput(req))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reservationResponse(reservation))
}

// UpdateReservation godoc
// @Summary Partially update a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param reservation body ReservationPatchRequest true "Reservation patch payload"
// @Success 200 {object} ReservationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req ReservationPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	patch := service.ReservationPatch{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Pool:      req.Pool,
		Approved:  req.Approved,
	}
	reservation, err := h.reservationService.UpdateReservation(c.Request().Context(), principalFrom(c), id, patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reservationResponse(reservation))
}

// DeleteReservation godoc
// @Summary Delete a reservation
// @Tags reservations
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.reservationService.DeleteReservation(c.Request().Context(), principalFrom(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func reservationInput(req ReservationRequest) service.ReservationInput {
	return service.ReservationInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Pool:      req.Pool,
		Approved:  req.Approved,
	}
}
