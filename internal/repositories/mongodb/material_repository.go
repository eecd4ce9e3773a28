package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure MaterialRepository implements the interface
var _ repositories.MaterialRepository = (*MaterialRepository)(nil)

// MaterialRepository handles MongoDB operations for Material
type MaterialRepository struct {
	collection *mongo.Collection
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *mongo.Database) *MaterialRepository {
	return &MaterialRepository{
		collection: db.Collection("materials"),
	}
}

// Create inserts a new material
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	material.ID = primitive.NewObjectID()
	material.CreatedAt = time.Now()
	material.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, material)
	return err
}

// FindByID finds a material by ID
func (r *MaterialRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Material, error) {
	var material models.Material
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&material)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// FindAll retrieves materials, newest first
func (r *MaterialRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.Material, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var materials []*models.Material
	if err = cursor.All(ctx, &materials); err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []*models.Material{}
	}
	return materials, nil
}

// Update updates an existing material
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	material.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": material.ID}, bson.M{"$set": material})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete deletes a material by ID
func (r *MaterialRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
