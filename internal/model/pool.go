package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool represents a rentable listing owned by a user.
type Pool struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	PricePerDay decimal.Decimal `json:"price_per_day" gorm:"type:decimal(10,2);not null"`
	Location    string          `json:"location" gorm:"size:255;not null"`
	OwnerID     uint            `json:"-" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Owner        User          `json:"-" gorm:"foreignKey:OwnerID"`
	Reservations []Reservation `json:"-" gorm:"foreignKey:PoolID;constraint:OnDelete:CASCADE"`
}
