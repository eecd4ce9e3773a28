package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestEarnThenRedeemFlow walks a user from an empty balance through answering
// surveys to an approved redemption, ending back at zero.
func TestEarnThenRedeemFlow(t *testing.T) {
	userRepo := memory.NewUserRepository()
	questionRepo := memory.NewQuestionRepository()
	rewardRepo := memory.NewRewardRepository()
	ledger := NewLedgerService(userRepo, memory.NewPointTransactionRepository())
	surveys := NewSurveyService(questionRepo, memory.NewSurveyResponseRepository(), userRepo, ledger)
	requests := NewRewardRequestService(memory.NewRewardRequestRepository(), rewardRepo, ledger)
	ctx := context.Background()

	user := createTestUser(t, userRepo)
	admin := primitive.NewObjectID()

	reward := &models.Reward{Title: "Fuel Voucher", Points: 500, Category: "Transport", IsActive: true}
	if err := rewardRepo.Create(ctx, reward); err != nil {
		t.Fatalf("create reward: %v", err)
	}

	var questions []*models.Question
	for i := 0; i < 5; i++ {
		q := &models.Question{Text: fmt.Sprintf("Question %d", i+1), Type: models.QuestionTypeRating, Points: 100, IsActive: true}
		if err := questionRepo.Create(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
		questions = append(questions, q)
	}

	// First answer: 0 -> 100.
	if _, err := surveys.SubmitAnswer(ctx, user.ID, questions[0].ID, "", 5); err != nil {
		t.Fatalf("submit: %v", err)
	}
	balance, _ := ledger.Balance(ctx, user.ID)
	if balance != 100 {
		t.Fatalf("balance = %d, want 100", balance)
	}

	// The 500-point reward is out of reach.
	if _, err := requests.Create(ctx, user.ID, reward.ID); !errors.Is(err, apperrors.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	// Four more answers: balance 500.
	for _, q := range questions[1:] {
		if _, err := surveys.SubmitAnswer(ctx, user.ID, q.ID, "", 3); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	balance, _ = ledger.Balance(ctx, user.ID)
	if balance != 500 {
		t.Fatalf("balance = %d, want 500", balance)
	}

	// Now the request goes through and sits pending.
	request, err := requests.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if request.Status != models.RequestStatusPending {
		t.Fatalf("status = %q, want pending", request.Status)
	}

	// Approval deducts the cost and the balance returns to zero.
	approved, err := requests.Approve(ctx, request.ID, admin)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.RequestStatusApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}
	balance, _ = ledger.Balance(ctx, user.ID)
	if balance != 0 {
		t.Fatalf("balance = %d, want 0", balance)
	}

	// The ledger still reconciles entry by entry.
	transactions, err := ledger.Transactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	sum := 0
	for _, tx := range transactions {
		sum += tx.Points
	}
	if sum != 0 {
		t.Errorf("transaction sum = %d, want 0", sum)
	}
	if len(transactions) != 6 {
		t.Errorf("transactions = %d, want 6 (5 earns + 1 spend)", len(transactions))
	}
}
