package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Role names form a closed set.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RoleList is stored as a JSON array column.
type RoleList []string

// Value implements driver.Valuer.
func (r RoleList) Value() (driver.Value, error) {
	if r == nil {
		r = RoleList{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *RoleList) Scan(value interface{}) error {
	if value == nil {
		*r = RoleList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported roles column type %T", value)
	}
	return json.Unmarshal(data, r)
}

// User represents an account in the marketplace. A user owns pools and
// books reservations against other users' pools.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:180;not null"`
	Username     string    `json:"username" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Roles        RoleList  `json:"roles" gorm:"type:json"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Pools        []Pool        `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Reservations []Reservation `json:"-" gorm:"foreignKey:RenterID;constraint:OnDelete:CASCADE"`
}

// EffectiveRoles returns the stored roles plus the base role every user
// implicitly holds.
func (u *User) EffectiveRoles() []string {
	roles := []string{RoleUser}
	for _, r := range u.Roles {
		if r != RoleUser {
			roles = append(roles, r)
		}
	}
	return roles
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
