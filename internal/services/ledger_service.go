package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"github.com/engagehq/engage-backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService is the points accounting core. The point_transactions append
// log is the sole source of truth for a balance; the cached points field on
// the user profile is updated after every successful append.
//
// Check-then-append is serialized per user so that two overlapping spends can
// never jointly overdraw a balance.
type LedgerService struct {
	userRepo        repositories.UserRepository
	transactionRepo repositories.PointTransactionRepository

	mu        sync.Mutex
	userLocks map[primitive.ObjectID]*sync.Mutex
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(userRepo repositories.UserRepository, transactionRepo repositories.PointTransactionRepository) *LedgerService {
	return &LedgerService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		userLocks:       make(map[primitive.ObjectID]*sync.Mutex),
	}
}

// userLock returns the mutex serializing ledger writes for one user.
// Locks are never evicted; the map grows with the active user count, which
// is bounded by the company head count.
func (s *LedgerService) userLock(userID primitive.ObjectID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// Balance returns the sum of all point transaction deltas for the user
func (s *LedgerService) Balance(ctx context.Context, userID primitive.ObjectID) (int, error) {
	return s.transactionRepo.SumByUserID(ctx, userID)
}

// CanAfford reports whether the user's balance covers the given cost
func (s *LedgerService) CanAfford(ctx context.Context, userID primitive.ObjectID, cost int) (bool, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance >= cost, nil
}

// RecordEarn appends a positive ledger entry of the given type and bumps the
// cached profile balance.
func (s *LedgerService) RecordEarn(ctx context.Context, userID primitive.ObjectID, amount int, txType models.TransactionType, description, referenceID string) (*models.PointTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("earn amount must be positive, got %d", amount)
	}
	if txType == models.TransactionSpent {
		return nil, fmt.Errorf("earn cannot use transaction type %q", txType)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	transaction := &models.PointTransaction{
		UserID:      userID,
		Points:      amount,
		Type:        txType,
		Description: description,
		ReferenceID: referenceID,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("append earn transaction: %w", err)
	}
	if err := s.userRepo.IncrementPoints(ctx, userID, amount); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"userId": userID.Hex()}).
			Error("failed to update cached balance after earn")
	}

	logger.WithFields(logrus.Fields{
		"userId": userID.Hex(),
		"points": amount,
		"type":   txType,
	}).Info("points earned")
	return transaction, nil
}

// RecordSpend appends a negative spent entry after verifying the balance
// covers the amount. Returns apperrors.ErrInsufficientPoints otherwise; the
// ledger is left untouched on failure.
func (s *LedgerService) RecordSpend(ctx context.Context, userID primitive.ObjectID, amount int, description, referenceID string) (*models.PointTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("spend amount must be positive, got %d", amount)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := s.transactionRepo.SumByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("compute balance: %w", err)
	}
	if balance < amount {
		return nil, fmt.Errorf("spend %d with balance %d: %w", amount, balance, apperrors.ErrInsufficientPoints)
	}

	transaction := &models.PointTransaction{
		UserID:      userID,
		Points:      -amount,
		Type:        models.TransactionSpent,
		Description: description,
		ReferenceID: referenceID,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("append spend transaction: %w", err)
	}
	if err := s.userRepo.IncrementPoints(ctx, userID, -amount); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"userId": userID.Hex()}).
			Error("failed to update cached balance after spend")
	}

	logger.WithFields(logrus.Fields{
		"userId": userID.Hex(),
		"points": amount,
	}).Info("points spent")
	return transaction, nil
}

// Transactions returns the user's ledger entries, newest first
func (s *LedgerService) Transactions(ctx context.Context, userID primitive.ObjectID) ([]*models.PointTransaction, error) {
	return s.transactionRepo.FindByUserID(ctx, userID)
}
