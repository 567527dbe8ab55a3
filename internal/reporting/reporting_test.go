package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-io/fintrack/internal/analytics"
	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/fintrack-io/fintrack/internal/storage"
)

func newSeededReporter(t *testing.T, transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal) *Reporter {
	t.Helper()
	ctx := context.Background()
	store := storage.NewInMemoryStorage()

	for _, txn := range transactions {
		if err := store.SaveTransaction(ctx, txn); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}
	for _, budget := range budgets {
		if err := store.SaveBudget(ctx, budget); err != nil {
			t.Fatalf("failed to seed budget: %v", err)
		}
	}
	for _, goal := range goals {
		if err := store.SaveGoal(ctx, goal); err != nil {
			t.Fatalf("failed to seed goal: %v", err)
		}
	}

	tracker := finance.NewFinanceTracker(store)
	return NewReporter(&tracker)
}

func TestFinancialHealth_UsesStorageSnapshot(t *testing.T) {
	now := time.Now().UTC()
	reporter := newSeededReporter(t,
		[]finance.Transaction{
			{ID: "t1", UserID: "1234", Kind: finance.KindIncome, Amount: 4000, CategoryName: "Salary", Date: now.AddDate(0, 0, -10)},
			{ID: "t2", UserID: "1234", Kind: finance.KindExpense, Amount: 1000, CategoryName: "Food", Date: now.AddDate(0, 0, -5)},
		},
		nil,
		[]finance.Goal{
			{ID: "g1", UserID: "1234", Title: "Fund", TargetAmount: 1000, CurrentAmount: 600, TargetDate: now.AddDate(1, 0, 0), Status: finance.GoalActive},
		},
	)

	score, err := reporter.FinancialHealth(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// savings rate 75% over the window
	if score.SavingsRate.Score != 100 {
		t.Errorf("savings score: got %d, want 100", score.SavingsRate.Score)
	}
	// no budgets: neutral default
	if score.BudgetAdherence.Score != 50 {
		t.Errorf("adherence score: got %d, want 50", score.BudgetAdherence.Score)
	}
	if score.GoalProgress.Score != 60 {
		t.Errorf("goal score: got %d, want 60", score.GoalProgress.Score)
	}
}

func TestMonthlyTrends(t *testing.T) {
	now := time.Now().UTC()
	reporter := newSeededReporter(t,
		[]finance.Transaction{
			{ID: "t1", UserID: "1234", Kind: finance.KindIncome, Amount: 100, CategoryName: "Salary", Date: now},
		},
		nil, nil,
	)

	series, err := reporter.MonthlyTrends(context.Background(), "1234", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 12 {
		t.Fatalf("series length: got %d, want 12", len(series))
	}

	var total float64
	for _, p := range series {
		total += p.Income
	}
	if total != 100 {
		t.Errorf("total income: got %.2f, want 100", total)
	}
}

func TestBudgetStatuses(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	reporter := newSeededReporter(t,
		[]finance.Transaction{
			{ID: "t1", UserID: "1234", Kind: finance.KindExpense, Amount: 1100, CategoryName: "Food", Date: start.AddDate(0, 0, 10)},
		},
		[]finance.Budget{
			{ID: "b1", UserID: "1234", CategoryName: "Food", Amount: 1000, Period: finance.PeriodMonthly, StartDate: start, EndDate: start.AddDate(0, 1, -1)},
		},
		nil,
	)

	statuses, err := reporter.BudgetStatuses(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("statuses length: got %d, want 1", len(statuses))
	}
	if statuses[0].Status != analytics.BudgetOver {
		t.Errorf("status: got %q, want %q", statuses[0].Status, analytics.BudgetOver)
	}
}

func TestSpendingByCategory(t *testing.T) {
	now := time.Now().UTC()
	reporter := newSeededReporter(t,
		[]finance.Transaction{
			{ID: "t1", UserID: "1234", Kind: finance.KindExpense, Amount: 300, CategoryName: "Food", Date: now},
			{ID: "t2", UserID: "1234", Kind: finance.KindExpense, Amount: 100, CategoryName: "Transport", Date: now},
			{ID: "t3", UserID: "1234", Kind: finance.KindIncome, Amount: 2000, CategoryName: "Salary", Date: now},
		},
		nil, nil,
	)

	breakdown, err := reporter.SpendingByCategory(context.Background(), "1234", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("breakdown length: got %d, want 2", len(breakdown))
	}
	if breakdown[0].CategoryName != "Food" {
		t.Errorf("largest category: got %q, want %q", breakdown[0].CategoryName, "Food")
	}
	if breakdown[0].Percentage != 75 {
		t.Errorf("percentage: got %.2f, want 75", breakdown[0].Percentage)
	}
}

func TestGoalStatuses(t *testing.T) {
	now := time.Now().UTC()
	reporter := newSeededReporter(t, nil, nil,
		[]finance.Goal{
			{ID: "g1", UserID: "1234", Title: "Fund", TargetAmount: 1000, CurrentAmount: 250, TargetDate: now.AddDate(0, 3, 0), Status: finance.GoalActive},
		},
	)

	statuses, err := reporter.GoalStatuses(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("statuses length: got %d, want 1", len(statuses))
	}
	if statuses[0].ProgressPercent != 25 {
		t.Errorf("progress: got %.2f, want 25", statuses[0].ProgressPercent)
	}
}
