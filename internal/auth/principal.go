package auth

import "github.com/boumebar/swim/internal/model"

// Principal identifies the caller of an operation. The zero value is the
// anonymous principal. Services receive it as an explicit argument; there
// is no ambient security context.
type Principal struct {
	UserID uint
	Email  string
	Roles  []string
}

// Anonymous is the unauthenticated principal.
var Anonymous = Principal{}

// Authenticated reports whether the principal carries an identity.
func (p Principal) Authenticated() bool {
	return p.UserID != 0
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == model.RoleAdmin {
			return true
		}
	}
	return false
}

// Owns reports whether the principal is the user with the given id.
func (p Principal) Owns(userID uint) bool {
	return p.Authenticated() && p.UserID == userID
}

// PrincipalFromUser builds the principal for a stored user.
func PrincipalFromUser(u *model.User) Principal {
	return Principal{
		UserID: u.ID,
		Email:  u.Email,
		Roles:  u.EffectiveRoles(),
	}
}
