package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType is the kind of answer a question accepts.
type QuestionType string

const (
	QuestionTypeRating QuestionType = "rating" // 1-5 star rating
	QuestionTypeText   QuestionType = "text"   // free text
)

// Question is a survey prompt with the point value awarded on first answer.
type Question struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Text      string             `bson:"text" json:"text"`
	Type      QuestionType       `bson:"type" json:"type"`
	Points    int                `bson:"points" json:"points"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
