package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
	"github.com/fintrack-io/fintrack/internal/auth"
	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryUserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage()

	hashed, err := auth.HashPassword("messi10")
	require.NoError(t, err)

	user := auth.User{
		ID:             "u1",
		UserName:       "john_doe",
		FullName:       "John Doe",
		PasswordHashed: hashed,
		Email:          "john@example.com",
	}
	require.NoError(t, store.SaveUser(ctx, user))

	exists, err := store.IsUserExists(ctx, "john_doe")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.IsUserExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := store.ValidateUser(ctx, auth.UserCredentialsPure{UserName: "john_doe", PasswordPlain: "messi10"})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = store.ValidateUser(ctx, auth.UserCredentialsPure{UserName: "john_doe", PasswordPlain: "wrong"})
	var errResp appErrors.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrAuth, errResp.Code)
}

func TestInMemorySessionExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage()
	now := time.Now().UTC()

	require.NoError(t, store.SaveSession(ctx, auth.Session{
		ID:        "s1",
		Token:     "live-token",
		CreatedAt: now,
		ExpireAt:  now.AddDate(0, 3, 0),
		UserID:    "u1",
	}))
	require.NoError(t, store.SaveSession(ctx, auth.Session{
		ID:        "s2",
		Token:     "dead-token",
		CreatedAt: now.AddDate(0, -4, 0),
		ExpireAt:  now.AddDate(0, -1, 0),
		UserID:    "u2",
	}))

	userId, err := store.CheckSession(ctx, "live-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", userId)

	_, err = store.CheckSession(ctx, "dead-token")
	var errResp appErrors.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrAuth, errResp.Code)

	_, err = store.CheckSession(ctx, "missing-token")
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrAuth, errResp.Code)

	require.NoError(t, store.UpdateSession(ctx, "u1", now.AddDate(0, 6, 0)))
	session, err := store.GetSessionByToken(ctx, "live-token")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 6, 0), session.ExpireAt)

	require.NoError(t, store.LogoutUser(ctx, "u1", "live-token"))
	_, err = store.GetSessionByToken(ctx, "live-token")
	assert.Error(t, err)
}

func TestInMemoryTransactionFilters(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage()
	base := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	seed := []finance.Transaction{
		{ID: "t1", UserID: "u1", Kind: finance.KindIncome, Amount: 3000, CategoryName: "Salary", Date: base},
		{ID: "t2", UserID: "u1", Kind: finance.KindExpense, Amount: 120, CategoryName: "Groceries", Date: base.AddDate(0, 0, 5)},
		{ID: "t3", UserID: "u1", Kind: finance.KindExpense, Amount: 60, CategoryName: "Transport", Date: base.AddDate(0, 1, 0)},
		{ID: "t4", UserID: "u2", Kind: finance.KindExpense, Amount: 999, CategoryName: "Groceries", Date: base},
	}
	for _, txn := range seed {
		require.NoError(t, store.SaveTransaction(ctx, txn))
	}

	all, err := store.GetFilteredTransactions(ctx, "u1", &finance.TransactionList{IsAllNil: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	expenses, err := store.GetFilteredTransactions(ctx, "u1", &finance.TransactionList{Kind: finance.KindExpense})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	groceries, err := store.GetFilteredTransactions(ctx, "u1", &finance.TransactionList{CategoryNames: []string{"groceries"}})
	require.NoError(t, err)
	require.Len(t, groceries, 1)
	assert.Equal(t, "t2", groceries[0].ID)

	march, err := store.GetFilteredTransactions(ctx, "u1", &finance.TransactionList{
		From: base.AddDate(0, 0, -1),
		To:   base.AddDate(0, 0, 20),
	})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	got, err := store.GetTransactionById(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got.Amount)

	_, err = store.GetTransactionById(ctx, "u2", "t1")
	var errResp appErrors.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrNotFound, errResp.Code)

	require.NoError(t, store.DeleteTransaction(ctx, "u1", "t2"))
	remaining, err := store.GetFilteredTransactions(ctx, "u1", &finance.TransactionList{IsAllNil: true})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestInMemoryCategoryConflict(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage()

	require.NoError(t, store.SaveCategory(ctx, finance.Category{ID: "c1", Name: "Groceries", Kind: finance.KindExpense, Color: "#4e79a7"}))

	err := store.SaveCategory(ctx, finance.Category{ID: "c2", Name: "groceries", Kind: finance.KindExpense, Color: "#f28e2b"})
	var errResp appErrors.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrConflict, errResp.Code)

	categories, err := store.GetCategories(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestInMemoryBudgets(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage()
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveBudget(ctx, finance.Budget{
		ID:           "b1",
		UserID:       "u1",
		CategoryName: "Groceries",
		Amount:       500,
		Period:       finance.PeriodMonthly,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, -1),
	}))

	budgets, err := store.GetBudgets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Groceries", budgets[0].CategoryName)

	budgets, err = store.GetBudgets(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, budgets)

	err = store.DeleteBudget(ctx, "u2", "b1")
	var errResp appErrors.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrNotFound, errResp.Code)

	require.NoError(t, store.DeleteBudget(ctx, "u1", "b1"))
}

func TestInMemoryGoalProgress(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage()
	now := time.Now().UTC()

	require.NoError(t, store.SaveGoal(ctx, finance.Goal{
		ID:            "g1",
		UserID:        "u1",
		Title:         "Emergency Fund",
		TargetAmount:  5000,
		CurrentAmount: 0,
		TargetDate:    now.AddDate(1, 0, 0),
		Status:        finance.GoalActive,
	}))

	goal, err := store.UpdateGoalProgress(ctx, "u1", "g1", 2500, now)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, goal.CurrentAmount)
	assert.Equal(t, finance.GoalActive, goal.Status)

	goal, err = store.UpdateGoalProgress(ctx, "u1", "g1", 5000, now)
	require.NoError(t, err)
	assert.Equal(t, finance.GoalCompleted, goal.Status)

	_, err = store.UpdateGoalProgress(ctx, "u1", "missing", 100, now)
	var errResp appErrors.ErrorResponse
	require.True(t, errors.As(err, &errResp))
	assert.Equal(t, appErrors.ErrNotFound, errResp.Code)

	require.NoError(t, store.DeleteGoal(ctx, "u1", "g1"))
	goals, err := store.GetGoals(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, goals)
}
