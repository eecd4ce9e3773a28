package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyResponse is one user's answer to one question. At most one response
// exists per (user, question) pair; points are awarded once on creation.
type SurveyResponse struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	QuestionID   primitive.ObjectID `bson:"questionId" json:"questionId"`
	Answer       string             `bson:"answer,omitempty" json:"answer,omitempty"`
	Rating       int                `bson:"rating,omitempty" json:"rating,omitempty"`
	PointsEarned int                `bson:"pointsEarned" json:"pointsEarned"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
