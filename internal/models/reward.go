package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reward is a redeemable item in the rewards shop.
type Reward struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Points      int                `bson:"points" json:"points"`
	Category    string             `bson:"category" json:"category"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
