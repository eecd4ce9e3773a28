package services

import (
	"context"
	"fmt"
	"time"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"github.com/engagehq/engage-backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferralService handles candidate nominations. The referrer earns the
// fixed system-wide bonus when a nomination transitions to completed, and
// only on that transition.
type ReferralService struct {
	referralRepo repositories.ReferralRepository
	userRepo     repositories.UserRepository
	ledger       *LedgerService
	bonus        int
}

// NewReferralService creates a new ReferralService
func NewReferralService(referralRepo repositories.ReferralRepository, userRepo repositories.UserRepository, ledger *LedgerService, bonus int) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		bonus:        bonus,
	}
}

// Create registers a pending nomination
func (s *ReferralService) Create(ctx context.Context, referrerID primitive.ObjectID, name, email, position, message string) (*models.Referral, error) {
	referral := &models.Referral{
		ReferrerID:    referrerID,
		ReferredName:  name,
		ReferredEmail: email,
		Position:      position,
		Message:       message,
		Status:        models.ReferralStatusPending,
	}
	if err := s.referralRepo.Create(ctx, referral); err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"referrerId": referrerID.Hex(),
		"referralId": referral.ID.Hex(),
	}).Info("referral created")
	return referral, nil
}

// Complete marks a pending referral as completed (candidate hired) and
// credits the referrer with the referral bonus. Completing an already
// completed referral fails with ErrInvalidState and awards nothing.
func (s *ReferralService) Complete(ctx context.Context, referralID primitive.ObjectID) (*models.Referral, error) {
	referral, err := s.referralRepo.FindByID(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("find referral: %w", err)
	}
	if referral.Status != models.ReferralStatusPending {
		return nil, fmt.Errorf("referral is %s: %w", referral.Status, apperrors.ErrInvalidState)
	}

	now := time.Now()
	referral.Status = models.ReferralStatusCompleted
	referral.CompletedAt = &now
	referral.PointsEarned = s.bonus
	if err := s.referralRepo.Update(ctx, referral); err != nil {
		return nil, fmt.Errorf("update referral: %w", err)
	}

	description := "Referral bonus: " + referral.ReferredName
	if _, err := s.ledger.RecordEarn(ctx, referral.ReferrerID, s.bonus, models.TransactionReferral, description, referral.ID.Hex()); err != nil {
		return nil, fmt.Errorf("award referral bonus: %w", err)
	}
	if err := s.userRepo.IncrementReferralsCount(ctx, referral.ReferrerID); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"userId": referral.ReferrerID.Hex()}).
			Error("failed to bump referrals counter")
	}

	logger.WithFields(logrus.Fields{
		"referralId": referral.ID.Hex(),
		"referrerId": referral.ReferrerID.Hex(),
		"bonus":      s.bonus,
	}).Info("referral completed")
	return referral, nil
}

// ByReferrer lists a user's own nominations, newest first
func (s *ReferralService) ByReferrer(ctx context.Context, referrerID primitive.ObjectID) ([]*models.Referral, error) {
	return s.referralRepo.FindByReferrerID(ctx, referrerID)
}

// All lists every nomination, newest first
func (s *ReferralService) All(ctx context.Context) ([]*models.Referral, error) {
	return s.referralRepo.FindAll(ctx)
}

// PendingReferrals lists nominations awaiting an outcome
func (s *ReferralService) PendingReferrals(ctx context.Context) ([]*models.Referral, error) {
	return s.referralRepo.FindByStatus(ctx, models.ReferralStatusPending)
}
