package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"github.com/engagehq/engage-backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardRequestService governs the redemption workflow:
// pending -> approved | rejected, both terminal.
//
// Points are deducted at approval, not at request creation. Create checks
// affordability as a gate, and Approve re-validates it through the ledger
// spend; if the balance dropped in the interim the approval fails and the
// request stays pending.
type RewardRequestService struct {
	requestRepo repositories.RewardRequestRepository
	rewardRepo  repositories.RewardRepository
	ledger      *LedgerService
}

// NewRewardRequestService creates a new RewardRequestService
func NewRewardRequestService(requestRepo repositories.RewardRequestRepository, rewardRepo repositories.RewardRepository, ledger *LedgerService) *RewardRequestService {
	return &RewardRequestService{
		requestRepo: requestRepo,
		rewardRepo:  rewardRepo,
		ledger:      ledger,
	}
}

// Create opens a pending redemption request for an active reward the user
// can currently afford.
func (s *RewardRequestService) Create(ctx context.Context, userID, rewardID primitive.ObjectID) (*models.RewardRequest, error) {
	reward, err := s.rewardRepo.FindByID(ctx, rewardID)
	if err != nil {
		return nil, fmt.Errorf("find reward: %w", err)
	}
	if !reward.IsActive {
		return nil, fmt.Errorf("reward %s is inactive: %w", rewardID.Hex(), apperrors.ErrNotFound)
	}

	ok, err := s.ledger.CanAfford(ctx, userID, reward.Points)
	if err != nil {
		return nil, fmt.Errorf("check balance: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("reward costs %d points: %w", reward.Points, apperrors.ErrInsufficientPoints)
	}

	request := &models.RewardRequest{
		UserID:       userID,
		RewardID:     reward.ID,
		RewardTitle:  reward.Title,
		RewardPoints: reward.Points,
		Status:       models.RequestStatusPending,
		RequestedAt:  time.Now(),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create reward request: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"userId":    userID.Hex(),
		"rewardId":  reward.ID.Hex(),
		"requestId": request.ID.Hex(),
	}).Info("reward request created")
	return request, nil
}

// Approve transitions a pending request to approved and deducts the reward
// cost from the requester. The spend happens first: if it fails the request
// is left pending and untouched.
func (s *RewardRequestService) Approve(ctx context.Context, requestID, adminID primitive.ObjectID) (*models.RewardRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find reward request: %w", err)
	}
	if request.Status != models.RequestStatusPending {
		return nil, fmt.Errorf("request is %s: %w", request.Status, apperrors.ErrInvalidState)
	}

	description := "Reward redeemed: " + request.RewardTitle
	if _, err := s.ledger.RecordSpend(ctx, request.UserID, request.RewardPoints, description, request.ID.Hex()); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientPoints) {
			logger.WithFields(logrus.Fields{
				"requestId": request.ID.Hex(),
				"userId":    request.UserID.Hex(),
			}).Warn("approval denied, balance no longer covers reward")
		}
		return nil, err
	}

	now := time.Now()
	request.Status = models.RequestStatusApproved
	request.ProcessedAt = &now
	request.ProcessedBy = adminID
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update reward request: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"requestId": request.ID.Hex(),
		"adminId":   adminID.Hex(),
	}).Info("reward request approved")
	return request, nil
}

// Reject transitions a pending request to rejected. No points move.
func (s *RewardRequestService) Reject(ctx context.Context, requestID, adminID primitive.ObjectID) (*models.RewardRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find reward request: %w", err)
	}
	if request.Status != models.RequestStatusPending {
		return nil, fmt.Errorf("request is %s: %w", request.Status, apperrors.ErrInvalidState)
	}

	now := time.Now()
	request.Status = models.RequestStatusRejected
	request.ProcessedAt = &now
	request.ProcessedBy = adminID
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update reward request: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"requestId": request.ID.Hex(),
		"adminId":   adminID.Hex(),
	}).Info("reward request rejected")
	return request, nil
}

// Pending lists unprocessed requests, oldest first
func (s *RewardRequestService) Pending(ctx context.Context) ([]*models.RewardRequest, error) {
	return s.requestRepo.FindPending(ctx)
}

// Processed lists approved and rejected requests, most recent first
func (s *RewardRequestService) Processed(ctx context.Context) ([]*models.RewardRequest, error) {
	return s.requestRepo.FindProcessed(ctx)
}

// ByUser lists a user's own requests, newest first
func (s *RewardRequestService) ByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.RewardRequest, error) {
	return s.requestRepo.FindByUserID(ctx, userID)
}

// CountPending returns the size of the admin queue
func (s *RewardRequestService) CountPending(ctx context.Context) (int64, error) {
	return s.requestRepo.CountPending(ctx)
}
