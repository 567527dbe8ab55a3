package analytics

import (
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/fintrack-io/fintrack/internal/finance"
)

// categoryPalette is the fallback color table for categories the catalog has
// no color for. A category name always hashes to the same entry, so charts
// stay stable across calls.
var categoryPalette = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
}

// CategoryBreakdown groups expense transactions of the last `months` calendar
// months by category name. Percentages are shares of the window's total
// expense (all zero when the total is zero). The result is sorted by amount
// descending; equal amounts keep first-encountered order.
func CategoryBreakdown(transactions []finance.Transaction, months int, catalog []finance.Category, now time.Time) ([]CategorySpending, error) {
	if months <= 0 {
		return []CategorySpending{}, nil
	}

	windowStart := monthStart(now, -(months - 1))

	result := []CategorySpending{}
	index := make(map[string]int)
	total := 0.0

	for _, t := range transactions {
		if err := finance.ValidateTransaction(t); err != nil {
			return nil, err
		}
		if t.Kind != finance.KindExpense {
			continue
		}
		date := t.Date.In(now.Location())
		if date.Before(windowStart) || date.After(now) {
			continue
		}

		i, ok := index[t.CategoryName]
		if !ok {
			i = len(result)
			index[t.CategoryName] = i
			result = append(result, CategorySpending{
				CategoryName: t.CategoryName,
				Color:        resolveColor(t.CategoryName, catalog),
			})
		}
		result[i].Amount += t.Amount
		result[i].Count++
		total += t.Amount
	}

	if total > 0 {
		for i := range result {
			result[i].Percentage = result[i].Amount / total * 100
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})

	return result, nil
}

func resolveColor(categoryName string, catalog []finance.Category) string {
	for _, c := range catalog {
		if strings.EqualFold(c.Name, categoryName) && c.Color != "" {
			return c.Color
		}
	}
	return ColorForCategory(categoryName)
}

// ColorForCategory deterministically picks a palette color for a category
// name. Exposed so tests can assert color stability across runs.
func ColorForCategory(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return categoryPalette[h.Sum32()%uint32(len(categoryPalette))]
}
