package analytics

import (
	"testing"
	"time"

	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBreakdown_GroupsAndSorts(t *testing.T) {
	now := date(2024, time.June, 15)
	transactions := []finance.Transaction{
		{ID: "t1", Kind: finance.KindExpense, Amount: 300, CategoryName: "Food", Date: date(2024, time.June, 1)},
		{ID: "t2", Kind: finance.KindExpense, Amount: 500, CategoryName: "Rent", Date: date(2024, time.June, 2)},
		{ID: "t3", Kind: finance.KindExpense, Amount: 200, CategoryName: "Food", Date: date(2024, time.May, 20)},
		{ID: "t4", Kind: finance.KindIncome, Amount: 4000, CategoryName: "Salary", Date: date(2024, time.June, 5)},
	}

	result, err := CategoryBreakdown(transactions, 6, nil, now)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "Food", result[0].CategoryName)
	assert.Equal(t, 500.0, result[0].Amount)
	assert.Equal(t, 2, result[0].Count)
	assert.Equal(t, "Rent", result[1].CategoryName)
	assert.Equal(t, 500.0, result[1].Amount)
	assert.Equal(t, 1, result[1].Count)
}

func TestCategoryBreakdown_PercentagesSumTo100(t *testing.T) {
	now := date(2024, time.June, 15)
	transactions := []finance.Transaction{
		{ID: "t1", Kind: finance.KindExpense, Amount: 123.45, CategoryName: "Food", Date: date(2024, time.June, 1)},
		{ID: "t2", Kind: finance.KindExpense, Amount: 678.90, CategoryName: "Rent", Date: date(2024, time.June, 2)},
		{ID: "t3", Kind: finance.KindExpense, Amount: 42.42, CategoryName: "Transport", Date: date(2024, time.May, 2)},
	}

	result, err := CategoryBreakdown(transactions, 6, nil, now)
	require.NoError(t, err)

	var sum float64
	for _, c := range result {
		sum += c.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestCategoryBreakdown_ZeroTotalMeansZeroPercentages(t *testing.T) {
	now := date(2024, time.June, 15)
	transactions := []finance.Transaction{
		{ID: "t1", Kind: finance.KindExpense, Amount: 0, CategoryName: "Food", Date: date(2024, time.June, 1)},
	}

	result, err := CategoryBreakdown(transactions, 6, nil, now)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Zero(t, result[0].Percentage)
}

func TestCategoryBreakdown_CatalogColorWins(t *testing.T) {
	now := date(2024, time.June, 15)
	catalog := []finance.Category{
		{ID: "c1", Name: "food", Kind: finance.KindExpense, Color: "#112233"},
	}
	transactions := []finance.Transaction{
		{ID: "t1", Kind: finance.KindExpense, Amount: 10, CategoryName: "Food", Date: date(2024, time.June, 1)},
		{ID: "t2", Kind: finance.KindExpense, Amount: 20, CategoryName: "Travel", Date: date(2024, time.June, 2)},
	}

	result, err := CategoryBreakdown(transactions, 6, catalog, now)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// catalog match is case-insensitive
	assert.Equal(t, "#112233", result[1].Color)
	// no catalog entry falls back to the deterministic palette
	assert.Equal(t, ColorForCategory("Travel"), result[0].Color)
}

func TestColorForCategory_Deterministic(t *testing.T) {
	first := ColorForCategory("Groceries")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ColorForCategory("Groceries"))
	}
	assert.Contains(t, categoryPalette, first)
}

func TestCategoryBreakdown_StableTieOrder(t *testing.T) {
	now := date(2024, time.June, 15)
	transactions := []finance.Transaction{
		{ID: "t1", Kind: finance.KindExpense, Amount: 100, CategoryName: "Alpha", Date: date(2024, time.June, 1)},
		{ID: "t2", Kind: finance.KindExpense, Amount: 100, CategoryName: "Beta", Date: date(2024, time.June, 2)},
		{ID: "t3", Kind: finance.KindExpense, Amount: 100, CategoryName: "Gamma", Date: date(2024, time.June, 3)},
	}

	result, err := CategoryBreakdown(transactions, 6, nil, now)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "Alpha", result[0].CategoryName)
	assert.Equal(t, "Beta", result[1].CategoryName)
	assert.Equal(t, "Gamma", result[2].CategoryName)
}

func TestCategoryBreakdown_LookbackWindow(t *testing.T) {
	now := date(2024, time.June, 15)
	transactions := []finance.Transaction{
		{ID: "in", Kind: finance.KindExpense, Amount: 40, CategoryName: "Food", Date: date(2024, time.April, 1)},
		{ID: "out", Kind: finance.KindExpense, Amount: 60, CategoryName: "Food", Date: date(2024, time.February, 28)},
	}

	result, err := CategoryBreakdown(transactions, 3, nil, now)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 40.0, result[0].Amount)
}
