package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/boumebar/swim/internal/iri"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/service"
)

// PoolHandler handles the pool resource endpoints.
type PoolHandler struct {
	poolService service.PoolService
}

// NewPoolHandler creates a new pool handler.
func NewPoolHandler(poolService service.PoolService) *PoolHandler {
	return &PoolHandler{poolService: poolService}
}

// PoolRequest represents a pool create or full-replace payload. Owner is a
// user resource path and only honored for admin callers.
type PoolRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=255"`
	Description string          `json:"description" validate:"required,min=3"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Location    string          `json:"location" validate:"required,min=3,max=255"`
	Owner       string          `json:"owner,omitempty"`
}

// PoolPatchRequest represents a partial pool update payload.
type PoolPatchRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=3,max=255"`
	Description *string          `json:"description" validate:"omitempty,min=3"`
	PricePerDay *decimal.Decimal `json:"price_per_day"`
	Location    *string          `json:"location" validate:"omitempty,min=3,max=255"`
	Owner       *string          `json:"owner"`
}

// PoolResponse represents a pool in responses. The owner relation is a
// user resource path.
type PoolResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Location    string          `json:"location"`
	Owner       string          `json:"owner"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func poolResponse(pool *model.Pool) PoolResponse {
	return PoolResponse{
		ID:          pool.ID,
		Name:        pool.Name,
		Description: pool.Description,
		PricePerDay: pool.PricePerDay,
		Location:    pool.Location,
		Owner:       iri.User(pool.OwnerID),
		CreatedAt:   pool.CreatedAt,
		UpdatedAt:   pool.UpdatedAt,
	}
}

func poolResponses(pools []model.Pool) []PoolResponse {
	out := make([]PoolResponse, 0, len(pools))
	for i := range pools {
		out = append(out, poolResponse(&pools[i]))
	}
	return out
}

// ListPools godoc
// @Summary List pools
// @Tags pools
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PoolResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /pools [get]
func (h *PoolHandler) ListPools(c echo.Context) error {
	pools, err := h.poolService.ListPools(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, poolResponses(pools))
}

// GetPool godoc
// @Summary Get pool by id
// @Tags pools
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pool ID"
// @Success 200 {object} PoolResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pools/{id} [get]
func (h *PoolHandler) GetPool(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	pool, err := h.poolService.GetPool(c.Request().Context(), principalFrom(c), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, poolResponse(pool))
}

// CreatePool godoc
// @Summary Create a pool owned by the caller
// @Tags pools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool body PoolRequest true "Pool payload"
// @Success 201 {object} PoolResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /pools [post]
func (h *PoolHandler) CreatePool(c echo.Context) error {
	var req PoolRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	pool, err := h.poolService.CreatePool(c.Request().Context(), principalFrom(c), poolInput(req))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, poolResponse(pool))
}

// ReplacePool godoc
// @Summary Replace a pool
// @Tags pools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pool ID"
// @Param pool body PoolRequest true "Pool payload"
// @Success 200 {object} PoolResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /pools/{id} [put]
func (h *PoolHandler) ReplacePool(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req PoolRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	pool, err := h.poolService.ReplacePool(c.Request().Context(), principalFrom(c), id, poolInput(req))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, poolResponse(pool))
}

// UpdatePool godoc
// @Summary Partially update a pool
// @Tags pools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pool ID"
// @Param pool body PoolPatchRequest true "Pool patch payload"
// @Success 200 {object} PoolResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /pools/{id} [patch]
func (h *PoolHandler) UpdatePool(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req PoolPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	patch := service.PoolPatch{
		Name:        req.Name,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
		Location:    req.Location,
		Owner:       req.Owner,
	}
	pool, err := h.poolService.UpdatePool(c.Request().Context(), principalFrom(c), id, patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, poolResponse(pool))
}

// DeletePool godoc
// @Summary Delete a pool
// @Tags pools
// @Security BearerAuth
// @Param id path int true "Pool ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pools/{id} [delete]
func (h *PoolHandler) DeletePool(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.poolService.DeletePool(c.Request().Context(), principalFrom(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func poolInput(req PoolRequest) service.PoolInput {
	return service.PoolInput{
		Name:        req.Name,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
		Location:    req.Location,
		Owner:       req.Owner,
	}
}
