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

const testReferralBonus = 100

type referralFixture struct {
	service  *ReferralService
	ledger   *LedgerService
	userRepo *memory.UserRepository
}

func newReferralFixture() *referralFixture {
	userRepo := memory.NewUserRepository()
	ledger := NewLedgerService(userRepo, memory.NewPointTransactionRepository())
	return &referralFixture{
		service:  NewReferralService(memory.NewReferralRepository(), userRepo, ledger, testReferralBonus),
		ledger:   ledger,
		userRepo: userRepo,
	}
}

func TestCreateReferralStartsPending(t *testing.T) {
	f := newReferralFixture()
	user := createTestUser(t, f.userRepo)

	referral, err := f.service.Create(context.Background(), user.ID, "Bruno Costa", "bruno@example.com", "Frontend Developer", "Great engineer")
	if err != nil {
		t.Fatalf("create referral: %v", err)
	}
	if referral.Status != models.ReferralStatusPending {
		t.Errorf("status = %q, want pending", referral.Status)
	}
	if referral.PointsEarned != 0 {
		t.Errorf("pointsEarned = %d, want 0 before completion", referral.PointsEarned)
	}

	// No bonus until the candidate is hired.
	balance, err := f.ledger.Balance(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestCompleteReferralAwardsBonus(t *testing.T) {
	f := newReferralFixture()
	user := createTestUser(t, f.userRepo)
	ctx := context.Background()

	referral, err := f.service.Create(ctx, user.ID, "Bruno Costa", "bruno@example.com", "", "")
	if err != nil {
		t.Fatalf("create referral: %v", err)
	}

	completed, err := f.service.Complete(ctx, referral.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.ReferralStatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Error("completedAt not set")
	}
	if completed.PointsEarned != testReferralBonus {
		t.Errorf("pointsEarned = %d, want %d", completed.PointsEarned, testReferralBonus)
	}

	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != testReferralBonus {
		t.Errorf("balance = %d, want %d", balance, testReferralBonus)
	}

	stored, err := f.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.ReferralsCount != 1 {
		t.Errorf("referralsCount = %d, want 1", stored.ReferralsCount)
	}

	// The ledger entry is typed as a referral award.
	transactions, err := f.ledger.Transactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(transactions) != 1 || transactions[0].Type != models.TransactionReferral {
		t.Error("expected a single referral-typed transaction")
	}
}

func TestCompleteReferralTwiceFails(t *testing.T) {
	f := newReferralFixture()
	user := createTestUser(t, f.userRepo)
	ctx := context.Background()

	referral, err := f.service.Create(ctx, user.ID, "Bruno Costa", "bruno@example.com", "", "")
	if err != nil {
		t.Fatalf("create referral: %v", err)
	}
	if _, err := f.service.Complete(ctx, referral.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err = f.service.Complete(ctx, referral.ID)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}

	// The bonus was not duplicated.
	balance, err := f.ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != testReferralBonus {
		t.Errorf("balance = %d, want %d", balance, testReferralBonus)
	}
}

func TestCompleteUnknownReferral(t *testing.T) {
	f := newReferralFixture()

	_, err := f.service.Complete(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
