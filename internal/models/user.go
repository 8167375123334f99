package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the permission tier stored on a user document.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User is a registered account keyed by email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      Role               `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=buyer seller"`
	Verified  bool               `bson:"verified" json:"verified"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasRole reports whether the stored role equals r. An absent role only
// matches RoleBuyer.
func (u *User) HasRole(r Role) bool {
	if u == nil {
		return false
	}
	if u.Role == "" {
		return r == RoleBuyer
	}
	return u.Role == r
}
