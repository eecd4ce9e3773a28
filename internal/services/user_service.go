package services

import (
	"context"
	"fmt"

	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles user-related business logic
type UserService struct {
	userRepo repositories.UserRepository
	ledger   *LedgerService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, ledger *LedgerService) *UserService {
	return &UserService{
		userRepo: userRepo,
		ledger:   ledger,
	}
}

// GetByID retrieves a user with the cached balance reconciled against the
// ledger sum
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.Balance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("compute balance: %w", err)
	}
	user.Points = balance
	return user, nil
}

// GetAll retrieves users with pagination
func (s *UserService) GetAll(ctx context.Context, page, limit int) ([]*models.User, error) {
	return s.userRepo.FindAll(ctx, page, limit)
}

// Update updates a user's profile fields
func (s *UserService) Update(ctx context.Context, user *models.User) error {
	return s.userRepo.Update(ctx, user)
}

// Deactivate disables an account without removing its records
func (s *UserService) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	return s.userRepo.Update(ctx, user)
}

// Delete removes a user account. Owned records (responses, referrals,
// requests, transactions) are left in place; the store has no cascade.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.Delete(ctx, id)
}

// Count returns the total number of users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
