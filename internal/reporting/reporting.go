package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack-io/fintrack/internal/analytics"
	"github.com/fintrack-io/fintrack/internal/finance"
)

// Reporter feeds the pure analytics engine with a user's current snapshot.
// It sits above the finance service so the engine stays free of storage
// concerns and the service free of analytics ones.
type Reporter struct {
	Tracker *finance.FinanceTracker
}

func NewReporter(tracker *finance.FinanceTracker) *Reporter {
	return &Reporter{
		Tracker: tracker,
	}
}

func (rp *Reporter) MonthlyTrends(ctx context.Context, userID string, months int) ([]analytics.TimeSeriesPoint, error) {
	transactions, err := rp.Tracker.GetFilteredTransactions(ctx, userID, &finance.TransactionList{IsAllNil: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for trends: %w", err)
	}
	return analytics.MonthlySeries(transactions, months, time.Now().UTC())
}

func (rp *Reporter) SpendingByCategory(ctx context.Context, userID string, months int) ([]analytics.CategorySpending, error) {
	transactions, err := rp.Tracker.GetFilteredTransactions(ctx, userID, &finance.TransactionList{IsAllNil: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for category breakdown: %w", err)
	}
	catalog, err := rp.Tracker.GetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for category breakdown: %w", err)
	}
	return analytics.CategoryBreakdown(transactions, months, catalog, time.Now().UTC())
}

func (rp *Reporter) BudgetStatuses(ctx context.Context, userID string) ([]analytics.BudgetStatus, error) {
	budgets, err := rp.Tracker.GetBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets for evaluation: %w", err)
	}
	transactions, err := rp.Tracker.GetFilteredTransactions(ctx, userID, &finance.TransactionList{IsAllNil: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for budget evaluation: %w", err)
	}
	return analytics.EvaluateBudgets(budgets, transactions, analytics.DefaultAlertThreshold)
}

func (rp *Reporter) GoalStatuses(ctx context.Context, userID string) ([]analytics.GoalStatus, error) {
	goals, err := rp.Tracker.GetGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals for evaluation: %w", err)
	}
	return analytics.EvaluateGoals(goals, time.Now().UTC())
}

func (rp *Reporter) FinancialHealth(ctx context.Context, userID string) (analytics.HealthScore, error) {
	transactions, err := rp.Tracker.GetFilteredTransactions(ctx, userID, &finance.TransactionList{IsAllNil: true})
	if err != nil {
		return analytics.HealthScore{}, fmt.Errorf("failed to get transactions for health score: %w", err)
	}
	budgets, err := rp.Tracker.GetBudgets(ctx, userID)
	if err != nil {
		return analytics.HealthScore{}, fmt.Errorf("failed to get budgets for health score: %w", err)
	}
	goals, err := rp.Tracker.GetGoals(ctx, userID)
	if err != nil {
		return analytics.HealthScore{}, fmt.Errorf("failed to get goals for health score: %w", err)
	}
	return analytics.HealthReport(transactions, budgets, goals, time.Now().UTC())
}
