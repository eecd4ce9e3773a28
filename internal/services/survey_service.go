package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories"
	"github.com/engagehq/engage-backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyService handles survey questions and answer submission. A question
// awards its point value exactly once per user: the first persisted response
// wins, further submissions fail with ErrDuplicateResponse.
type SurveyService struct {
	questionRepo repositories.QuestionRepository
	responseRepo repositories.SurveyResponseRepository
	userRepo     repositories.UserRepository
	ledger       *LedgerService
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(questionRepo repositories.QuestionRepository, responseRepo repositories.SurveyResponseRepository, userRepo repositories.UserRepository, ledger *LedgerService) *SurveyService {
	return &SurveyService{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
		ledger:       ledger,
	}
}

// ActiveQuestions lists the questions currently open for answering
func (s *SurveyService) ActiveQuestions(ctx context.Context) ([]*models.Question, error) {
	return s.questionRepo.FindAll(ctx, true)
}

// ResponsesByUser lists a user's own answers, newest first
func (s *SurveyService) ResponsesByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.SurveyResponse, error) {
	return s.responseRepo.FindByUserID(ctx, userID)
}

// SubmitAnswer persists the user's answer to a question and awards the
// question's point value. answer carries free text for text questions;
// rating carries the 1-5 value for rating questions.
func (s *SurveyService) SubmitAnswer(ctx context.Context, userID, questionID primitive.ObjectID, answer string, rating int) (*models.SurveyResponse, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	if !question.IsActive {
		return nil, fmt.Errorf("question %s is inactive: %w", questionID.Hex(), apperrors.ErrNotFound)
	}

	switch question.Type {
	case models.QuestionTypeRating:
		if rating < 1 || rating > 5 {
			return nil, fmt.Errorf("rating %d outside 1-5: %w", rating, apperrors.ErrInvalidAnswer)
		}
	case models.QuestionTypeText:
		if answer == "" {
			return nil, fmt.Errorf("empty text answer: %w", apperrors.ErrInvalidAnswer)
		}
		rating = 0
	}

	if _, err := s.responseRepo.FindByUserAndQuestion(ctx, userID, questionID); err == nil {
		return nil, fmt.Errorf("question %s already answered: %w", questionID.Hex(), apperrors.ErrDuplicateResponse)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing response: %w", err)
	}

	response := &models.SurveyResponse{
		UserID:       userID,
		QuestionID:   questionID,
		Answer:       answer,
		Rating:       rating,
		PointsEarned: question.Points,
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		// The storage-level unique index closes the window between the
		// duplicate check and the insert.
		return nil, fmt.Errorf("create survey response: %w", err)
	}

	if _, err := s.ledger.RecordEarn(ctx, userID, question.Points, models.TransactionEarned, "Survey answer", response.ID.Hex()); err != nil {
		return nil, fmt.Errorf("award survey points: %w", err)
	}
	if err := s.userRepo.IncrementSurveysCompleted(ctx, userID); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"userId": userID.Hex()}).
			Error("failed to bump surveys completed counter")
	}

	logger.WithFields(logrus.Fields{
		"userId":     userID.Hex(),
		"questionId": questionID.Hex(),
		"points":     question.Points,
	}).Info("survey answer recorded")
	return response, nil
}
