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

// Compile-time check to ensure RewardRequestRepository implements the interface
var _ repositories.RewardRequestRepository = (*RewardRequestRepository)(nil)

// RewardRequestRepository handles MongoDB operations for RewardRequest
type RewardRequestRepository struct {
	collection *mongo.Collection
}

// NewRewardRequestRepository creates a new RewardRequestRepository
func NewRewardRequestRepository(db *mongo.Database) *RewardRequestRepository {
	return &RewardRequestRepository{
		collection: db.Collection("reward_requests"),
	}
}

// Create inserts a new reward request
func (r *RewardRequestRepository) Create(ctx context.Context, request *models.RewardRequest) error {
	request.ID = primitive.NewObjectID()
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

// FindByID finds a reward request by ID
func (r *RewardRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RewardRequest, error) {
	var request models.RewardRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByUserID finds all requests by a user, newest first
func (r *RewardRequestRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.RewardRequest, error) {
	sort := bson.D{{Key: "requestedAt", Value: -1}}
	return r.find(ctx, bson.M{"userId": userID}, sort)
}

// FindPending retrieves pending requests oldest first, for fair processing
func (r *RewardRequestRepository) FindPending(ctx context.Context) ([]*models.RewardRequest, error) {
	sort := bson.D{{Key: "requestedAt", Value: 1}}
	return r.find(ctx, bson.M{"status": models.RequestStatusPending}, sort)
}

// FindProcessed retrieves approved and rejected requests, most recently
// processed first
func (r *RewardRequestRepository) FindProcessed(ctx context.Context) ([]*models.RewardRequest, error) {
	sort := bson.D{{Key: "processedAt", Value: -1}}
	filter := bson.M{"status": bson.M{"$ne": models.RequestStatusPending}}
	return r.find(ctx, filter, sort)
}

func (r *RewardRequestRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]*models.RewardRequest, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*models.RewardRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*models.RewardRequest{}
	}
	return requests, nil
}

// Update updates an existing reward request
func (r *RewardRequestRepository) Update(ctx context.Context, request *models.RewardRequest) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": request.ID}, bson.M{"$set": request})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountPending returns the number of requests awaiting processing
func (r *RewardRequestRepository) CountPending(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": models.RequestStatusPending})
}
