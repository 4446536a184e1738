package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/boumebar/swim/internal/config"
	"github.com/boumebar/swim/internal/db"
	"github.com/boumebar/swim/internal/model"
	"github.com/boumebar/swim/internal/repository"
)

const (
	userCount        = 10
	poolCount        = 10
	reservationCount = 10
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Pool{}, &model.Reservation{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	poolRepo := repository.NewPoolRepository(gormDB)
	reservationRepo := repository.NewReservationRepository(gormDB)
	ctx := context.Background()

	users, err := seedUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Seeded %d users (plus admin)", len(users))

	pools, err := seedPools(ctx, poolRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed pools: %v", err)
	}
	log.Printf("Seeded %d pools", len(pools))

	seeded, err := seedReservations(ctx, reservationRepo, users, pools)
	if err != nil {
		log.Fatalf("Failed to seed reservations: %v", err)
	}
	log.Printf("Seeded %d reservations", seeded)

	log.Println("Seed completed successfully!")
}

// seedUsers creates the regular users and one admin. Existing emails are
// left untouched so the script stays re-runnable.
func seedUsers(ctx context.Context, repo repository.UserRepository) ([]model.User, error) {
	users := make([]model.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		user := model.User{
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Roles:    model.RoleList{model.RoleUser},
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)

		existing, err := repo.FindByEmail(ctx, user.Email)
		if err == nil {
			users = append(users, *existing)
			continue
		}
		if err := repo.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", user.Email, err)
		}
		users = append(users, user)
	}

	admin := model.User{
		Username: "admin",
		Email:    "admin@example.com",
		Roles:    model.RoleList{model.RoleAdmin},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	admin.PasswordHash = string(hash)
	if _, err := repo.FindByEmail(ctx, admin.Email); err != nil {
		if err := repo.Create(ctx, &admin); err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
	}

	return users, nil
}

// seedPools creates one pool per seeded user.
func seedPools(ctx context.Context, repo repository.PoolRepository, users []model.User) ([]model.Pool, error) {
	pools := make([]model.Pool, 0, poolCount)
	for i := 1; i <= poolCount && i <= len(users); i++ {
		pool := model.Pool{
			Name:        fmt.Sprintf("Pool %d", i),
			Description: fmt.Sprintf("Description of pool %d", i),
			PricePerDay: decimal.NewFromInt(int64(50 + rand.Intn(151))),
			Location:    fmt.Sprintf("Location %d", i),
			OwnerID:     users[i-1].ID,
		}
		if err := repo.Create(ctx, &pool); err != nil {
			return nil, fmt.Errorf("create pool %d: %w", i, err)
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// seedReservations books random pools for random users. Reservations are
// created unapproved, like every other creation path.
func seedReservations(ctx context.Context, repo repository.ReservationRepository, users []model.User, pools []model.Pool) (int, error) {
	if len(users) == 0 || len(pools) == 0 {
		return 0, nil
	}
	count := 0
	for i := 0; i < reservationCount; i++ {
		start := time.Now().AddDate(0, 0, 1+rand.Intn(30))
		reservation := model.Reservation{
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 1+rand.Intn(7)),
			RenterID:  users[rand.Intn(len(users))].ID,
			PoolID:    pools[rand.Intn(len(pools))].ID,
			Approved:  false,
		}
		if err := repo.Create(ctx, &reservation); err != nil {
			return count, fmt.Errorf("create reservation: %w", err)
		}
		count++
	}
	return count, nil
}
