package finance

import (
	"testing"
	"time"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransaction(t *testing.T) {
	base := Transaction{ID: "t1", Kind: KindExpense, Amount: 10, CategoryName: "Food", Date: time.Now()}

	tests := []struct {
		name      string
		mutate    func(*Transaction)
		wantField string
	}{
		{name: "valid", mutate: func(*Transaction) {}},
		{name: "negative amount", mutate: func(tr *Transaction) { tr.Amount = -1 }, wantField: "amount"},
		{name: "bad kind", mutate: func(tr *Transaction) { tr.Kind = "loan" }, wantField: "kind"},
		{name: "empty kind", mutate: func(tr *Transaction) { tr.Kind = "" }, wantField: "kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := base
			tt.mutate(&txn)

			err := ValidateTransaction(txn)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var vErr appErrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, "transaction t1", vErr.Record)
		})
	}
}

func TestValidateBudget(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	base := Budget{ID: "b1", CategoryName: "Food", Amount: 500, Period: PeriodMonthly, StartDate: start, EndDate: start.AddDate(0, 1, -1)}

	tests := []struct {
		name      string
		mutate    func(*Budget)
		wantField string
	}{
		{name: "valid", mutate: func(*Budget) {}},
		{name: "negative amount", mutate: func(b *Budget) { b.Amount = -500 }, wantField: "amount"},
		{name: "bad period kind", mutate: func(b *Budget) { b.Period = "weekly" }, wantField: "period"},
		{name: "inverted dates", mutate: func(b *Budget) { b.EndDate = start.AddDate(0, 0, -1) }, wantField: "endDate"},
		{name: "zero length period", mutate: func(b *Budget) { b.EndDate = start }, wantField: "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base
			tt.mutate(&b)

			err := ValidateBudget(b)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var vErr appErrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidateGoal(t *testing.T) {
	base := Goal{ID: "g1", Title: "Fund", TargetAmount: 1000, CurrentAmount: 0, TargetDate: time.Now().AddDate(1, 0, 0)}

	tests := []struct {
		name      string
		mutate    func(*Goal)
		wantField string
	}{
		{name: "valid", mutate: func(*Goal) {}},
		{name: "current above target is fine", mutate: func(g *Goal) { g.CurrentAmount = 2000 }},
		{name: "zero target", mutate: func(g *Goal) { g.TargetAmount = 0 }, wantField: "targetAmount"},
		{name: "negative current", mutate: func(g *Goal) { g.CurrentAmount = -1 }, wantField: "currentAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base
			tt.mutate(&g)

			err := ValidateGoal(g)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var vErr appErrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}
