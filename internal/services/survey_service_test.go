package services

import (
	"context"
	"errors"
	"testing"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type surveyFixture struct {
	service      *SurveyService
	ledger       *LedgerService
	userRepo     *memory.UserRepository
	questionRepo *memory.QuestionRepository
}

func newSurveyFixture() *surveyFixture {
	userRepo := memory.NewUserRepository()
	questionRepo := memory.NewQuestionRepository()
	ledger := NewLedgerService(userRepo, memory.NewPointTransactionRepository())
	return &surveyFixture{
		service:      NewSurveyService(questionRepo, memory.NewSurveyResponseRepository(), userRepo, ledger),
		ledger:       ledger,
		userRepo:     userRepo,
		questionRepo: questionRepo,
	}
}

func (f *surveyFixture) createQuestion(t *testing.T, text string, qType models.QuestionType, points int) *models.Question {
	t.Helper()
	question := &models.Question{Text: text, Type: qType, Points: points, IsActive: true}
	if err := f.questionRepo.Create(context.Background(), question); err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}

func TestSubmitRatingAnswerAwardsPoints(t *testing.T) {
	f := newSurveyFixture()
	user := createTestUser(t, f.userRepo)
	question := f.createQuestion(t, "How satisfied are you?", models.QuestionTypeRating, 50)
	ctx := context.Background()

	response, err := f.service.SubmitAnswer(ctx, user.ID, question.ID, "", 4)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if response.PointsEarned != 50 {
		t.Errorf("pointsEarned = %d, want 50", response.PointsEarned)
	}
	if response.Rating != 4 {
		t.Errorf("rating = %d, want 4", response.Rating)
	}

	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 50 {
		t.Errorf("balance = %d, want 50", balance)
	}

	stored, err := f.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.SurveysCompleted != 1 {
		t.Errorf("surveysCompleted = %d, want 1", stored.SurveysCompleted)
	}
}

func TestSubmitAnswerTwiceFails(t *testing.T) {
	f := newSurveyFixture()
	user := createTestUser(t, f.userRepo)
	question := f.createQuestion(t, "Comments?", models.QuestionTypeText, 25)
	ctx := context.Background()

	if _, err := f.service.SubmitAnswer(ctx, user.ID, question.ID, "Great place", 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := f.service.SubmitAnswer(ctx, user.ID, question.ID, "Changed my mind", 0)
	if !errors.Is(err, apperrors.ErrDuplicateResponse) {
		t.Fatalf("err = %v, want ErrDuplicateResponse", err)
	}

	// Points awarded only once.
	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 25 {
		t.Errorf("balance = %d, want 25", balance)
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	f := newSurveyFixture()
	user := createTestUser(t, f.userRepo)
	rating := f.createQuestion(t, "Rate the office", models.QuestionTypeRating, 10)
	text := f.createQuestion(t, "Suggestions?", models.QuestionTypeText, 10)
	ctx := context.Background()

	cases := []struct {
		name       string
		questionID primitive.ObjectID
		answer     string
		rating     int
	}{
		{"rating too low", rating.ID, "", 0},
		{"rating too high", rating.ID, "", 6},
		{"empty text", text.ID, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.SubmitAnswer(ctx, user.ID, tc.questionID, tc.answer, tc.rating)
			if !errors.Is(err, apperrors.ErrInvalidAnswer) {
				t.Errorf("err = %v, want ErrInvalidAnswer", err)
			}
		})
	}

	// Nothing was awarded for the failed submissions.
	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	f := newSurveyFixture()
	user := createTestUser(t, f.userRepo)

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, primitive.NewObjectID(), "hi", 0)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSubmitAnswerInactiveQuestion(t *testing.T) {
	f := newSurveyFixture()
	user := createTestUser(t, f.userRepo)
	question := f.createQuestion(t, "Old question", models.QuestionTypeText, 10)
	question.IsActive = false
	if err := f.questionRepo.Update(context.Background(), question); err != nil {
		t.Fatalf("deactivate question: %v", err)
	}

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, question.ID, "hi", 0)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestActiveQuestionsFiltersInactive(t *testing.T) {
	f := newSurveyFixture()
	active := f.createQuestion(t, "Active", models.QuestionTypeText, 10)
	inactive := f.createQuestion(t, "Inactive", models.QuestionTypeText, 10)
	inactive.IsActive = false
	if err := f.questionRepo.Update(context.Background(), inactive); err != nil {
		t.Fatalf("deactivate question: %v", err)
	}

	questions, err := f.service.ActiveQuestions(context.Background())
	if err != nil {
		t.Fatalf("active questions: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != active.ID {
		t.Errorf("active questions = %d, want just the active one", len(questions))
	}
}
