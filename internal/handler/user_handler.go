package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/service"
)

// UserHandler handles the admin-only user resource plus the "whoami" read.
type UserHandler struct {
	userService service.UserService
	jwtService  *auth.JWTService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, jwtService *auth.JWTService) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// UserRequest represents a user create or full-replace payload.
type UserRequest struct {
	Email    string   `json:"email" validate:"required,email,max=180"`
	Username string   `json:"username" validate:"required,min=2,max=255"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"`
}

// UserPatchRequest represents a partial user update payload.
type UserPatchRequest struct {
	Email    *string   `json:"email" validate:"omitempty,email,max=180"`
	Username *string   `json:"username" validate:"omitempty,min=2,max=255"`
	Password *string   `json:"password" validate:"omitempty,min=1"`
	Roles    *[]string `json:"roles"`
}

// UserResponse represents a user in responses. The password hash is never
// serialized.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func userResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Roles:     user.EffectiveRoles(),
		CreatedAt: user.CreatedAt,
	}
}

func userResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return out
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, userResponses(users))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Request().Context(), principalFrom(c), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, userResponse(user))
}

// CreateUser godoc
// @Summary Create a user with explicit roles
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User payload"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	user, err := h.userService.CreateUser(c.Request().Context(), principalFrom(c), userInput(req))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, userResponse(user))
}

// ReplaceUser godoc
// @Summary Replace a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UserRequest true "User payload"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) ReplaceUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	user, err := h.userService.ReplaceUser(c.Request().Context(), principalFrom(c), id, userInput(req))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, userResponse(user))
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UserPatchRequest true "User patch payload"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UserPatchRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	patch := service.UserPatch{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
	}
	user, err := h.userService.UpdateUser(c.Request().Context(), principalFrom(c), id, patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, userResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user and their pools and reservations
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteUser(c.Request().Context(), principalFrom(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Get the authenticated user
// @Description Returns the caller's own record, or no content when the
// @Description request carries no valid credential.
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Success 204
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	p := principalFromHeader(c, h.jwtService)
	user, err := h.userService.Me(c.Request().Context(), p)
	if err != nil {
		return respondError(err)
	}
	if user == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, userResponse(user))
}

func userInput(req UserRequest) service.UserInput {
	return service.UserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
	}
}
