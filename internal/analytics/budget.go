package analytics

import (
	"strings"

	"github.com/fintrack-io/fintrack/internal/finance"
)

// DefaultAlertThreshold is the percentage-used at which a budget starts
// counting as "near" its limit.
const DefaultAlertThreshold = 80.0

// EvaluateBudgets computes per-budget spend against the budget's own
// [StartDate, EndDate] window, both ends inclusive. Classification uses the
// uncapped percentage, so a budget at exactly 100% is "near" while anything
// above is "over"; the returned PercentUsed is capped at 100 for display.
func EvaluateBudgets(budgets []finance.Budget, transactions []finance.Transaction, alertThreshold float64) ([]BudgetStatus, error) {
	if alertThreshold <= 0 {
		alertThreshold = DefaultAlertThreshold
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if err := finance.ValidateBudget(b); err != nil {
			return nil, err
		}

		spent := 0.0
		for _, t := range transactions {
			if err := finance.ValidateTransaction(t); err != nil {
				return nil, err
			}
			if t.Kind != finance.KindExpense {
				continue
			}
			if !strings.EqualFold(t.CategoryName, b.CategoryName) {
				continue
			}
			if t.Date.Before(b.StartDate) || t.Date.After(b.EndDate) {
				continue
			}
			spent += t.Amount
		}

		percentUsed := 0.0
		if b.Amount > 0 {
			percentUsed = spent / b.Amount * 100
		}

		status := BudgetUnder
		switch {
		case percentUsed > 100:
			status = BudgetOver
		case percentUsed >= alertThreshold:
			status = BudgetNear
		}

		remaining := b.Amount - spent
		if remaining < 0 {
			remaining = 0
		}

		display := percentUsed
		if display > 100 {
			display = 100
		}

		statuses = append(statuses, BudgetStatus{
			CategoryName: b.CategoryName,
			Budgeted:     b.Amount,
			Spent:        spent,
			Remaining:    remaining,
			PercentUsed:  display,
			Status:       status,
		})
	}

	return statuses, nil
}
