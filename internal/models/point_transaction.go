package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionEarned   TransactionType = "earned"
	TransactionSpent    TransactionType = "spent"
	TransactionReferral TransactionType = "referral"
	TransactionBonus    TransactionType = "bonus"
)

// PointTransaction is an append-only ledger entry. Points carries the signed
// delta: positive for earned/referral/bonus, negative for spent. A user's
// balance is the sum of all their entries.
type PointTransaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Points      int                `bson:"points" json:"points"`
	Type        TransactionType    `bson:"type" json:"type"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ReferenceID string             `bson:"referenceId,omitempty" json:"referenceId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
