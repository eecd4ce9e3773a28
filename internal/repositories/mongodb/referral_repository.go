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

// Compile-time check to ensure ReferralRepository implements the interface
var _ repositories.ReferralRepository = (*ReferralRepository)(nil)

// ReferralRepository handles MongoDB operations for Referral
type ReferralRepository struct {
	collection *mongo.Collection
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(db *mongo.Database) *ReferralRepository {
	return &ReferralRepository{
		collection: db.Collection("referrals"),
	}
}

// Create inserts a new referral
func (r *ReferralRepository) Create(ctx context.Context, referral *models.Referral) error {
	referral.ID = primitive.NewObjectID()
	referral.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, referral)
	return err
}

// FindByID finds a referral by ID
func (r *ReferralRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Referral, error) {
	var referral models.Referral
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&referral)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

// FindByReferrerID finds all referrals made by a user, newest first
func (r *ReferralRepository) FindByReferrerID(ctx context.Context, referrerID primitive.ObjectID) ([]*models.Referral, error) {
	return r.find(ctx, bson.M{"referrerId": referrerID})
}

// FindByStatus finds referrals in the given state, newest first
func (r *ReferralRepository) FindByStatus(ctx context.Context, status models.ReferralStatus) ([]*models.Referral, error) {
	return r.find(ctx, bson.M{"status": status})
}

// FindAll retrieves all referrals, newest first
func (r *ReferralRepository) FindAll(ctx context.Context) ([]*models.Referral, error) {
	return r.find(ctx, bson.M{})
}

func (r *ReferralRepository) find(ctx context.Context, filter bson.M) ([]*models.Referral, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var referrals []*models.Referral
	if err = cursor.All(ctx, &referrals); err != nil {
		return nil, err
	}
	if referrals == nil {
		referrals = []*models.Referral{}
	}
	return referrals, nil
}

// Update updates an existing referral
func (r *ReferralRepository) Update(ctx context.Context, referral *models.Referral) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": referral.ID}, bson.M{"$set": referral})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
