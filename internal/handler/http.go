package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/errors"
)

// principalFrom reads the principal the JWT middleware attached to the
// request. Routes outside the secured group yield the anonymous principal.
func principalFrom(c echo.Context) auth.Principal {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return auth.Anonymous
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return auth.Anonymous
	}
	return claims.Principal()
}

// principalFromHeader resolves the bearer token on routes with optional
// authentication. A missing or invalid token yields the anonymous
// principal rather than an error.
func principalFromHeader(c echo.Context, jwtService *auth.JWTService) auth.Principal {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return auth.Anonymous
	}
	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		return auth.Anonymous
	}
	return claims.Principal()
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// respondError maps a domain error onto the HTTP error contract.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindError is the response for an unparseable request body.
func bindError() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// validationError translates validator violations into the per-field 422
// response. The whole write is rejected; every violated field is listed.
func validationError(err error) error {
	fields := map[string]string{}
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range vErrs {
			fields[fieldName(fe)] = fieldMessage(fe)
		}
	}
	resp := errors.ErrorResponse{
		Error:  "validation failed",
		Code:   "VALIDATION_FAILED",
		Fields: fields,
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, resp)
}

func fieldName(fe validator.FieldError) string {
	// Field names follow the JSON convention used by the models.
	switch fe.Field() {
	case "PricePerDay":
		return "price_per_day"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	default:
		return strings.ToLower(fe.Field())
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
