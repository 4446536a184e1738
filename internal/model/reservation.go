package model

import "time"

// Reservation represents a time-ranged booking of a pool by a renter.
// Approval is a plain flag flipped through the regular update path; there
// is no dedicated workflow around it.
type Reservation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	RenterID  uint      `json:"-" gorm:"not null;index"`
	PoolID    uint      `json:"-" gorm:"not null;index"`
	Approved  bool      `json:"approved" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Renter User `json:"-" gorm:"foreignKey:RenterID"`
	Pool   Pool `json:"-" gorm:"foreignKey:PoolID"`
}
