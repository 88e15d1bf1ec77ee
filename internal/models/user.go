package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "sub_admin"
	RoleUser     = "user"
)

const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

var AdminRoles = []string{RoleAdmin, RoleSubAdmin}

// User represents an account in the panel: either an administrator or a
// regular employee.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PartnerID      *primitive.ObjectID `bson:"partner_id,omitempty" json:"partner_id,omitempty"`
	Name           string              `bson:"name" json:"name"`
	Email          string              `bson:"email" json:"email"`
	Phone          string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Address        string              `bson:"address,omitempty" json:"address,omitempty"`
	Code           string              `bson:"code,omitempty" json:"code,omitempty"`
	ProfileImage   string              `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Role           string              `bson:"role" json:"role"`
	Status         string              `bson:"status" json:"status"`
	HashedPassword string              `bson:"hashed_password" json:"-"`
	IsDeleted      bool                `bson:"is_deleted" json:"-"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// IsAdminRole reports whether role may manage notices and accounts.
func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}
