package analytics

import (
	"math"
	"time"

	"github.com/fintrack-io/fintrack/internal/finance"
)

// EvaluateGoals computes per-goal progress and the monthly contribution
// needed to reach the target on time. Past target dates count as zero days
// remaining but still produce a monthly target. Expected progress assumes a
// linear one-year horizon; a goal is on track when its actual progress is at
// least 80% of that expectation.
func EvaluateGoals(goals []finance.Goal, now time.Time) ([]GoalStatus, error) {
	statuses := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		if err := finance.ValidateGoal(g); err != nil {
			return nil, err
		}

		daysRemaining := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
		if daysRemaining < 0 {
			daysRemaining = 0
		}

		monthsRemaining := int(math.Ceil(float64(daysRemaining) / 30))
		if monthsRemaining < 1 {
			monthsRemaining = 1
		}

		// May be negative when the goal is already exceeded.
		monthlyTarget := (g.TargetAmount - g.CurrentAmount) / float64(monthsRemaining)

		progress := g.CurrentAmount / g.TargetAmount * 100

		expected := 100 - float64(monthsRemaining)/12*100
		if expected < 0 {
			expected = 0
		}
		onTrack := g.CurrentAmount > 0 && progress >= 0.8*expected

		statuses = append(statuses, GoalStatus{
			Title:           g.Title,
			TargetAmount:    g.TargetAmount,
			CurrentAmount:   g.CurrentAmount,
			ProgressPercent: progress,
			DaysRemaining:   daysRemaining,
			MonthlyTarget:   monthlyTarget,
			OnTrack:         onTrack,
		})
	}

	return statuses, nil
}
