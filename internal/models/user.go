package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to a user account.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an employee account. Points is a cached copy of the ledger
// sum kept up to date by the ledger service; the point_transactions collection
// is the source of truth.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string             `bson:"email" json:"email"`
	Name             string             `bson:"name" json:"name"`
	Password         string             `bson:"password" json:"-"`
	Role             string             `bson:"role" json:"role"`
	Points           int                `bson:"points" json:"points"`
	SurveysCompleted int                `bson:"surveysCompleted" json:"surveysCompleted"`
	ReferralsCount   int                `bson:"referralsCount" json:"referralsCount"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
