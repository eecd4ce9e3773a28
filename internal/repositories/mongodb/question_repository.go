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

// Compile-time check to ensure QuestionRepository implements the interface
var _ repositories.QuestionRepository = (*QuestionRepository)(nil)

// QuestionRepository handles MongoDB operations for Question
type QuestionRepository struct {
	collection *mongo.Collection
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{
		collection: db.Collection("questions"),
	}
}

// Create inserts a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	question.ID = primitive.NewObjectID()
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, question)
	return err
}

// FindByID finds a question by ID
func (r *QuestionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindAll retrieves questions, oldest first so the survey keeps a stable order
func (r *QuestionRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.Question, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*models.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []*models.Question{}
	}
	return questions, nil
}

// Update updates an existing question
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	question.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": question.ID}, bson.M{"$set": question})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete deletes a question by ID
func (r *QuestionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the total number of questions
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
