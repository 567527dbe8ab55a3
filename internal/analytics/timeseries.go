package analytics

import (
	"time"

	"github.com/fintrack-io/fintrack/internal/finance"
)

const monthKeyLayout = "2006-01"

// MonthlySeries buckets transactions into the `months` calendar months ending
// at now's month, oldest first. Months with no activity stay zero-filled and
// transactions outside the window are ignored. Month boundaries follow
// now's location.
func MonthlySeries(transactions []finance.Transaction, months int, now time.Time) ([]TimeSeriesPoint, error) {
	if months <= 0 {
		return []TimeSeriesPoint{}, nil
	}

	series := make([]TimeSeriesPoint, 0, months)
	index := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		key := monthStart(now, -i).Format(monthKeyLayout)
		index[key] = len(series)
		series = append(series, TimeSeriesPoint{Period: key})
	}

	for _, t := range transactions {
		if err := finance.ValidateTransaction(t); err != nil {
			return nil, err
		}

		key := t.Date.In(now.Location()).Format(monthKeyLayout)
		i, ok := index[key]
		if !ok {
			continue
		}
		switch t.Kind {
		case finance.KindIncome:
			series[i].Income += t.Amount
		case finance.KindExpense:
			series[i].Expenses += t.Amount
		}
	}

	for i := range series {
		series[i].Net = series[i].Income - series[i].Expenses
	}

	return series, nil
}

// monthStart returns the first instant of now's month shifted by offset months.
func monthStart(now time.Time, offset int) time.Time {
	return time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
}
