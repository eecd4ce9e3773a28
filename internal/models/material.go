package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaterialType categorizes a published material.
type MaterialType string

const (
	MaterialTypeEvaluation MaterialType = "evaluation"
	MaterialTypeReading    MaterialType = "reading"
	MaterialTypeManual     MaterialType = "manual"
	MaterialTypeSupport    MaterialType = "support"
)

// Material is a static content record: either an uploaded file (FileURL) or
// inline body text (Content), or both. Materials carry no point interaction.
type Material struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        MaterialType       `bson:"type" json:"type"`
	FileURL     string             `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
