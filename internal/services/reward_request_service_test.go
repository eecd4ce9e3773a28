package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories/memory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type requestFixture struct {
	service    *RewardRequestService
	ledger     *LedgerService
	userRepo   *memory.UserRepository
	rewardRepo *memory.RewardRepository
	admin      primitive.ObjectID
}

func newRequestFixture() *requestFixture {
	userRepo := memory.NewUserRepository()
	rewardRepo := memory.NewRewardRepository()
	requestRepo := memory.NewRewardRequestRepository()
	ledger := NewLedgerService(userRepo, memory.NewPointTransactionRepository())
	return &requestFixture{
		service:    NewRewardRequestService(requestRepo, rewardRepo, ledger),
		ledger:     ledger,
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		admin:      primitive.NewObjectID(),
	}
}

func (f *requestFixture) createReward(t *testing.T, title string, points int) *models.Reward {
	t.Helper()
	reward := &models.Reward{Title: title, Points: points, Category: "Tech", IsActive: true}
	if err := f.rewardRepo.Create(context.Background(), reward); err != nil {
		t.Fatalf("create reward: %v", err)
	}
	return reward
}

func (f *requestFixture) fund(t *testing.T, userID primitive.ObjectID, points int) {
	t.Helper()
	if _, err := f.ledger.RecordEarn(context.Background(), userID, points, models.TransactionEarned, "", ""); err != nil {
		t.Fatalf("fund user: %v", err)
	}
}

func TestCreateRequestInsufficientPoints(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	reward := f.createReward(t, "Headphones", 500)

	_, err := f.service.Create(context.Background(), user.ID, reward.ID)
	if !errors.Is(err, apperrors.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}
}

func TestCreateRequestUnknownReward(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)

	_, err := f.service.Create(context.Background(), user.ID, primitive.NewObjectID())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateRequestInactiveReward(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 1000)
	reward := f.createReward(t, "Retired Reward", 100)
	reward.IsActive = false
	if err := f.rewardRepo.Update(context.Background(), reward); err != nil {
		t.Fatalf("deactivate reward: %v", err)
	}

	_, err := f.service.Create(context.Background(), user.ID, reward.ID)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateRequestDoesNotMovePoints(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 500)
	reward := f.createReward(t, "Lunch Voucher", 300)
	ctx := context.Background()

	request, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if request.Status != models.RequestStatusPending {
		t.Errorf("status = %q, want pending", request.Status)
	}

	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 500 {
		t.Errorf("balance = %d, want 500 (deduction happens at approval)", balance)
	}
}

func TestApproveDeductsPoints(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 500)
	reward := f.createReward(t, "Fuel Voucher", 500)
	ctx := context.Background()

	request, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	approved, err := f.service.Approve(ctx, request.ID, f.admin)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.RequestStatusApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}
	if approved.ProcessedAt == nil {
		t.Error("processedAt not set")
	}
	if approved.ProcessedBy != f.admin {
		t.Error("processedBy not set to the approving admin")
	}

	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestApproveRevalidatesAffordability(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 500)
	reward := f.createReward(t, "Fuel Voucher", 500)
	ctx := context.Background()

	request, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	// The user spends elsewhere before the admin approves.
	if _, err := f.ledger.RecordSpend(ctx, user.ID, 100, "", ""); err != nil {
		t.Fatalf("spend: %v", err)
	}

	_, err = f.service.Approve(ctx, request.ID, f.admin)
	if !errors.Is(err, apperrors.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	// The request stays pending and can be rejected instead.
	pending, err := f.service.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != request.ID {
		t.Fatalf("request did not stay pending")
	}
}

func TestTerminalStateIsImmutable(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 1000)
	reward := f.createReward(t, "Day Off", 400)
	ctx := context.Background()

	request, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	approved, err := f.service.Approve(ctx, request.ID, f.admin)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := f.service.Approve(ctx, request.ID, f.admin); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("second approve err = %v, want ErrInvalidState", err)
	}
	if _, err := f.service.Reject(ctx, request.ID, f.admin); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("reject after approve err = %v, want ErrInvalidState", err)
	}

	// No double deduction.
	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 600 {
		t.Errorf("balance = %d, want 600", balance)
	}

	processed, err := f.service.Processed(ctx)
	if err != nil {
		t.Fatalf("processed: %v", err)
	}
	if len(processed) != 1 || !processed[0].ProcessedAt.Equal(*approved.ProcessedAt) {
		t.Error("processedAt changed after terminal state")
	}
}

func TestRejectMovesNoPoints(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 300)
	reward := f.createReward(t, "Lunch Voucher", 300)
	ctx := context.Background()

	request, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	rejected, err := f.service.Reject(ctx, request.ID, f.admin)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.RequestStatusRejected {
		t.Errorf("status = %q, want rejected", rejected.Status)
	}

	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 300 {
		t.Errorf("balance = %d, want 300", balance)
	}
}

func TestPendingListOldestFirst(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 10000)
	reward := f.createReward(t, "Lunch Voucher", 100)
	ctx := context.Background()

	first, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	second, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	pending, err := f.service.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	if pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Error("pending requests not ordered oldest first")
	}
}

func TestConcurrentApprovalsCannotOverdraw(t *testing.T) {
	f := newRequestFixture()
	user := createTestUser(t, f.userRepo)
	f.fund(t, user.ID, 100)
	reward := f.createReward(t, "Mug", 60)
	ctx := context.Background()

	// Two pending requests whose combined cost exceeds the balance.
	first, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	second, err := f.service.Create(ctx, user.ID, reward.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	done := make(chan error, 2)
	go func() {
		_, err := f.service.Approve(ctx, first.ID, f.admin)
		done <- err
	}()
	go func() {
		_, err := f.service.Approve(ctx, second.ID, f.admin)
		done <- err
	}()

	succeeded := 0
	for i := 0; i < 2; i++ {
		if err := <-done; err == nil {
			succeeded++
		} else if !errors.Is(err, apperrors.ErrInsufficientPoints) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1", succeeded)
	}

	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 40 {
		t.Errorf("balance = %d, want 40", balance)
	}
}
