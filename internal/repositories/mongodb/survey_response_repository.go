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

// Compile-time check to ensure SurveyResponseRepository implements the interface
var _ repositories.SurveyResponseRepository = (*SurveyResponseRepository)(nil)

// SurveyResponseRepository handles MongoDB operations for SurveyResponse.
// A unique index on (userId, questionId) backs the no-duplicate-award
// invariant at the storage level.
type SurveyResponseRepository struct {
	collection *mongo.Collection
}

// NewSurveyResponseRepository creates a new SurveyResponseRepository
func NewSurveyResponseRepository(db *mongo.Database) *SurveyResponseRepository {
	collection := db.Collection("survey_responses")

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = collection.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "questionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &SurveyResponseRepository{collection: collection}
}

// Create inserts a new survey response. A write that collides with the
// unique index is reported as a duplicate response.
func (r *SurveyResponseRepository) Create(ctx context.Context, response *models.SurveyResponse) error {
	response.ID = primitive.NewObjectID()
	response.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, response)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicateResponse
	}
	return err
}

// FindByUserAndQuestion finds the response a user gave to a question
func (r *SurveyResponseRepository) FindByUserAndQuestion(ctx context.Context, userID, questionID primitive.ObjectID) (*models.SurveyResponse, error) {
	var response models.SurveyResponse
	filter := bson.M{"userId": userID, "questionId": questionID}
	err := r.collection.FindOne(ctx, filter).Decode(&response)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// FindByUserID finds all responses by a user, newest first
func (r *SurveyResponseRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.SurveyResponse, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*models.SurveyResponse
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	if responses == nil {
		responses = []*models.SurveyResponse{}
	}
	return responses, nil
}
