package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/boumebar/swim/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/boumebar/swim/internal/auth"
	"github.com/boumebar/swim/internal/cache"
	"github.com/boumebar/swim/internal/config"
	"github.com/boumebar/swim/internal/db"
	"github.com/boumebar/swim/internal/handler"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/repository"
	"github.com/boumebar/swim/internal/router"
	"github.com/boumebar/swim/internal/service"
)

// @title Swim Booking API
// @version 1.0
// @description Pool booking marketplace with role- and ownership-based access control and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Reservation{},
			&model.Pool{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Pool{},
		&model.Reservation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	poolRepo := repository.NewPoolRepository(gormDB)
	reservationRepo := repository.NewReservationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	poolService := service.NewPoolService(poolRepo, userRepo, cacheClient)
	reservationService := service.NewReservationService(reservationRepo, poolRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, jwtService)
	poolHandler := handler.NewPoolHandler(poolService)
	reservationHandler := handler.NewReservationHandler(reservationService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		poolHandler,
		reservationHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
