package finance

import (
	"fmt"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
)

// Invariant checks for the domain records. The analytics engine calls these
// on every record it consumes, so a malformed record always surfaces as a
// ValidationError naming the record and field instead of producing NaN math.

func ValidateTransaction(t Transaction) error {
	record := fmt.Sprintf("transaction %s", t.ID)
	if t.Amount < 0 {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "amount",
			Message: fmt.Sprintf("amount must be non-negative, got %.2f", t.Amount),
		}
	}
	if t.Kind != KindIncome && t.Kind != KindExpense {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "kind",
			Message: fmt.Sprintf("kind must be %q or %q, got %q", KindIncome, KindExpense, t.Kind),
		}
	}
	return nil
}

func ValidateBudget(b Budget) error {
	record := fmt.Sprintf("budget %s", b.ID)
	if b.Amount < 0 {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "amount",
			Message: fmt.Sprintf("amount must be non-negative, got %.2f", b.Amount),
		}
	}
	if b.Period != PeriodMonthly && b.Period != PeriodYearly {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "period",
			Message: fmt.Sprintf("period must be %q or %q, got %q", PeriodMonthly, PeriodYearly, b.Period),
		}
	}
	if b.EndDate.Before(b.StartDate) {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "endDate",
			Message: "end date is before start date",
		}
	}
	if b.EndDate.Equal(b.StartDate) {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "endDate",
			Message: "budget period has zero length",
		}
	}
	return nil
}

func ValidateGoal(g Goal) error {
	record := fmt.Sprintf("goal %s", g.ID)
	if g.TargetAmount <= 0 {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "targetAmount",
			Message: fmt.Sprintf("target amount must be positive, got %.2f", g.TargetAmount),
		}
	}
	if g.CurrentAmount < 0 {
		return appErrors.ValidationError{
			Record:  record,
			Field:   "currentAmount",
			Message: fmt.Sprintf("current amount must be non-negative, got %.2f", g.CurrentAmount),
		}
	}
	return nil
}
