package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a reward request. Approved and
// rejected are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// RewardRequest is a user's attempt to redeem a reward. Reward title and
// point cost are denormalized at creation so the admin queue stays readable
// even if the reward is later edited or removed.
type RewardRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	RewardID     primitive.ObjectID `bson:"rewardId" json:"rewardId"`
	RewardTitle  string             `bson:"rewardTitle" json:"rewardTitle"`
	RewardPoints int                `bson:"rewardPoints" json:"rewardPoints"`
	Status       RequestStatus      `bson:"status" json:"status"`
	RequestedAt  time.Time          `bson:"requestedAt" json:"requestedAt"`
	ProcessedAt  *time.Time         `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	ProcessedBy  primitive.ObjectID `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
}
