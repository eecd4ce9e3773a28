package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferralStatus is the lifecycle state of a referral.
type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
)

// Referral is a user's nomination of an external candidate. The referrer is
// awarded the referral bonus when the nomination transitions to completed
// (i.e. the candidate was hired).
type Referral struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ReferrerID    primitive.ObjectID `bson:"referrerId" json:"referrerId"`
	ReferredName  string             `bson:"referredName" json:"referredName"`
	ReferredEmail string             `bson:"referredEmail" json:"referredEmail"`
	Position      string             `bson:"position,omitempty" json:"position,omitempty"`
	Message       string             `bson:"message,omitempty" json:"message,omitempty"`
	Status        ReferralStatus     `bson:"status" json:"status"`
	PointsEarned  int                `bson:"pointsEarned" json:"pointsEarned"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt   *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}
