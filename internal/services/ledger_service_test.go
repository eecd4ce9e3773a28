package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/engagehq/engage-backend/internal/apperrors"
	"github.com/engagehq/engage-backend/internal/models"
	"github.com/engagehq/engage-backend/internal/repositories/memory"
)

func newTestLedger() (*LedgerService, *memory.UserRepository) {
	userRepo := memory.NewUserRepository()
	return NewLedgerService(userRepo, memory.NewPointTransactionRepository()), userRepo
}

func createTestUser(t *testing.T, userRepo *memory.UserRepository) *models.User {
	t.Helper()
	user := &models.User{Email: "ana@example.com", Name: "Ana", Role: models.RoleUser, IsActive: true}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestBalanceStartsAtZero(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)

	balance, err := ledger.Balance(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestRecordEarnIncreasesBalance(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)
	ctx := context.Background()

	if _, err := ledger.RecordEarn(ctx, user.ID, 50, models.TransactionEarned, "Survey answer", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}
	if _, err := ledger.RecordEarn(ctx, user.ID, 100, models.TransactionReferral, "Referral bonus", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}

	balance, err := ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 150 {
		t.Errorf("balance = %d, want 150", balance)
	}
}

func TestRecordEarnRejectsNonPositiveAmount(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)

	if _, err := ledger.RecordEarn(context.Background(), user.ID, 0, models.TransactionEarned, "", ""); err == nil {
		t.Error("earn of 0 should fail")
	}
	if _, err := ledger.RecordEarn(context.Background(), user.ID, -5, models.TransactionBonus, "", ""); err == nil {
		t.Error("negative earn should fail")
	}
}

func TestRecordSpendInsufficientPoints(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)
	ctx := context.Background()

	_, err := ledger.RecordSpend(ctx, user.ID, 10, "Reward redeemed", "")
	if !errors.Is(err, apperrors.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	// A failed spend leaves no trace in the ledger.
	transactions, err := ledger.Transactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("transactions = %d, want 0", len(transactions))
	}
}

func TestBalanceMatchesTransactionSum(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)
	ctx := context.Background()

	if _, err := ledger.RecordEarn(ctx, user.ID, 200, models.TransactionEarned, "", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}
	if _, err := ledger.RecordSpend(ctx, user.ID, 80, "", ""); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if _, err := ledger.RecordEarn(ctx, user.ID, 30, models.TransactionBonus, "", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}

	transactions, err := ledger.Transactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	sum := 0
	for _, tx := range transactions {
		sum += tx.Points
	}

	balance, err := ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != sum {
		t.Errorf("balance = %d, transaction sum = %d", balance, sum)
	}
	if balance != 150 {
		t.Errorf("balance = %d, want 150", balance)
	}
}

func TestCanAfford(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)
	ctx := context.Background()

	if _, err := ledger.RecordEarn(ctx, user.ID, 100, models.TransactionEarned, "", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}

	ok, err := ledger.CanAfford(ctx, user.ID, 100)
	if err != nil {
		t.Fatalf("canAfford: %v", err)
	}
	if !ok {
		t.Error("should afford exact balance")
	}

	ok, err = ledger.CanAfford(ctx, user.ID, 101)
	if err != nil {
		t.Fatalf("canAfford: %v", err)
	}
	if ok {
		t.Error("should not afford more than balance")
	}
}

func TestConcurrentSpendsCannotOverdraw(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)
	ctx := context.Background()

	if _, err := ledger.RecordEarn(ctx, user.ID, 100, models.TransactionEarned, "", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}

	// Two spends of 60 against a balance of 100: at most one may succeed.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.RecordSpend(ctx, user.ID, 60, "Reward redeemed", "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, apperrors.ErrInsufficientPoints) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1", succeeded)
	}

	balance, err := ledger.Balance(ctx, user.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 40 {
		t.Errorf("balance = %d, want 40", balance)
	}
}

func TestCachedBalanceTracksLedger(t *testing.T) {
	ledger, userRepo := newTestLedger()
	user := createTestUser(t, userRepo)
	ctx := context.Background()

	if _, err := ledger.RecordEarn(ctx, user.ID, 120, models.TransactionEarned, "", ""); err != nil {
		t.Fatalf("earn: %v", err)
	}
	if _, err := ledger.RecordSpend(ctx, user.ID, 20, "", ""); err != nil {
		t.Fatalf("spend: %v", err)
	}

	stored, err := userRepo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.Points != 100 {
		t.Errorf("cached points = %d, want 100", stored.Points)
	}
}
