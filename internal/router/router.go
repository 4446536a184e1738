package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/config"
	"github.com/boumebar/swim/internal/errors"
	"github.com/boumebar/swim/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	poolHandler *handler.PoolHandler,
	reservationHandler *handler.ReservationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Whoami carries optional authentication: anonymous callers get an
	// empty result, not a 401.
	api.GET("/me", userHandler.Me)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		},
	}))

	// Pool routes
	secured.GET("/pools", poolHandler.ListPools)
	secured.POST("/pools", poolHandler.CreatePool)
	secured.GET("/pools/:id", poolHandler.GetPool)
	secured.PUT("/pools/:id", poolHandler.ReplacePool)
	secured.PATCH("/pools/:id", poolHandler.UpdatePool)
	secured.DELETE("/pools/:id", poolHandler.DeletePool)

	// Reservation routes
	secured.GET("/reservations", reservationHandler.ListReservations)
	secured.POST("/reservations", reservationHandler.CreateReservation)
	secured.GET("/reservations/:id", reservationHandler.GetReservation)
	secured.PUT("/reservations/:id", reservationHandler.ReplaceReservation)
	secured.PATCH("/reservations/:id", reservationHandler.UpdateReservation)
	secured.DELETE("/reservations/:id", reservationHandler.DeleteReservation)

	// User routes (admin only, enforced in the service layer)
	secured.GET("/users", userHandler.ListUsers)
	secured.POST("/users", userHandler.CreateUser)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.ReplaceUser)
	secured.PATCH("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
