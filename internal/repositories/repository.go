// Package repositories defines the persistence interfaces the services depend
// on. Implementations live in the mongodb and memory subpackages. A missing
// record is reported as apperrors.ErrNotFound by every Find method.
package repositories

import (
	"context"

	"github.com/engagehq/engage-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementPoints atomically adjusts the cached balance on the profile.
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) error
	IncrementSurveysCompleted(ctx context.Context, id primitive.ObjectID) error
	IncrementReferralsCount(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// QuestionRepository defines the interface for survey question operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// SurveyResponseRepository defines the interface for survey response operations
type SurveyResponseRepository interface {
	Create(ctx context.Context, response *models.SurveyResponse) error
	FindByUserAndQuestion(ctx context.Context, userID, questionID primitive.ObjectID) (*models.SurveyResponse, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.SurveyResponse, error)
}

// ReferralRepository defines the interface for referral operations
type ReferralRepository interface {
	Create(ctx context.Context, referral *models.Referral) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Referral, error)
	FindByReferrerID(ctx context.Context, referrerID primitive.ObjectID) ([]*models.Referral, error)
	FindByStatus(ctx context.Context, status models.ReferralStatus) ([]*models.Referral, error)
	FindAll(ctx context.Context) ([]*models.Referral, error)
	Update(ctx context.Context, referral *models.Referral) error
}

// RewardRepository defines the interface for reward catalog operations
type RewardRepository interface {
	Create(ctx context.Context, reward *models.Reward) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reward, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.Reward, error)
	Update(ctx context.Context, reward *models.Reward) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// RewardRequestRepository defines the interface for redemption requests.
// FindPending returns requests ordered by requestedAt ascending (oldest first,
// for fair processing); FindProcessed by processedAt descending.
type RewardRequestRepository interface {
	Create(ctx context.Context, request *models.RewardRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RewardRequest, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.RewardRequest, error)
	FindPending(ctx context.Context) ([]*models.RewardRequest, error)
	FindProcessed(ctx context.Context) ([]*models.RewardRequest, error)
	Update(ctx context.Context, request *models.RewardRequest) error
	CountPending(ctx context.Context) (int64, error)
}

// PointTransactionRepository defines the interface for the append-only ledger
type PointTransactionRepository interface {
	Create(ctx context.Context, transaction *models.PointTransaction) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.PointTransaction, error)
	// SumByUserID returns the sum of all point deltas for the user.
	SumByUserID(ctx context.Context, userID primitive.ObjectID) (int, error)
}

// MaterialRepository defines the interface for material operations
type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Material, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
