package model

import "time"

// Role separates marketplace participants.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleFlorist Role = "florist"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleBuyer, RoleFlorist:
		return true
	}
	return false
}

// User represents a registered buyer or florist.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	ShopName     string
	ShopAddress  string
	ShopContact  string
	TOTPSecret   string
	TOTPEnabled  bool
	CreatedAt    time.Time
}

// DisplayName is the name shown to buyers: the shop name when a florist
// has one, the personal name otherwise.
func (u *User) DisplayName() string {
	if u.Role == RoleFlorist && u.ShopName != "" {
		return u.ShopName
	}
	return u.Name
}
