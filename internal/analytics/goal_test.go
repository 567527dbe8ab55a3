package analytics

import (
	"testing"
	"time"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateGoals_Basics(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	goals := []finance.Goal{
		{
			ID:            "g1",
			Title:         "Emergency fund",
			TargetAmount:  6000,
			CurrentAmount: 1500,
			TargetDate:    now.AddDate(0, 0, 90),
			Status:        finance.GoalActive,
		},
	}

	statuses, err := EvaluateGoals(goals, now)
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	s := statuses[0]
	assert.Equal(t, "Emergency fund", s.Title)
	assert.Equal(t, 90, s.DaysRemaining)
	assert.InDelta(t, 25.0, s.ProgressPercent, 1e-9)
	// 90 days -> 3 months remaining -> (6000-1500)/3
	assert.InDelta(t, 1500.0, s.MonthlyTarget, 1e-9)
	// expected progress for 3 months remaining: 75; 25 < 0.8*75
	assert.False(t, s.OnTrack)
}

func TestEvaluateGoals_OnTrack(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	goals := []finance.Goal{
		{
			ID:            "g1",
			Title:         "Vacation",
			TargetAmount:  1000,
			CurrentAmount: 700,
			TargetDate:    now.AddDate(0, 0, 90),
			Status:        finance.GoalActive,
		},
	}

	statuses, err := EvaluateGoals(goals, now)
	require.NoError(t, err)
	// expected 75, actual 70 >= 60
	assert.True(t, statuses[0].OnTrack)
}

func TestEvaluateGoals_PastTargetDate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	goals := []finance.Goal{
		{
			ID:            "g1",
			Title:         "Old goal",
			TargetAmount:  1200,
			CurrentAmount: 300,
			TargetDate:    now.AddDate(0, -2, 0),
			Status:        finance.GoalActive,
		},
	}

	statuses, err := EvaluateGoals(goals, now)
	require.NoError(t, err)

	s := statuses[0]
	assert.Equal(t, 0, s.DaysRemaining)
	// months remaining clamps to 1, a target is still produced
	assert.InDelta(t, 900.0, s.MonthlyTarget, 1e-9)
}

func TestEvaluateGoals_ExceededGoalHasNegativeMonthlyTarget(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	goals := []finance.Goal{
		{
			ID:            "g1",
			Title:         "Done early",
			TargetAmount:  1000,
			CurrentAmount: 1300,
			TargetDate:    now.AddDate(0, 0, 60),
			Status:        finance.GoalActive,
		},
	}

	statuses, err := EvaluateGoals(goals, now)
	require.NoError(t, err)

	s := statuses[0]
	assert.InDelta(t, 130.0, s.ProgressPercent, 1e-9)
	assert.True(t, s.MonthlyTarget < 0)
	assert.True(t, s.OnTrack)
}

func TestEvaluateGoals_NoProgressIsNeverOnTrack(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	goals := []finance.Goal{
		{
			ID:           "g1",
			Title:        "Fresh goal",
			TargetAmount: 5000,
			TargetDate:   now.AddDate(2, 0, 0),
			Status:       finance.GoalActive,
		},
	}

	statuses, err := EvaluateGoals(goals, now)
	require.NoError(t, err)
	assert.Zero(t, statuses[0].ProgressPercent)
	assert.False(t, statuses[0].OnTrack)
}

func TestEvaluateGoals_InvalidTargetAmount(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	goals := []finance.Goal{
		{ID: "g-bad", Title: "Broken", TargetAmount: 0, TargetDate: now.AddDate(1, 0, 0)},
	}

	_, err := EvaluateGoals(goals, now)
	require.Error(t, err)

	var vErr appErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "targetAmount", vErr.Field)
	assert.Contains(t, vErr.Record, "g-bad")
}

func TestEvaluateGoals_Empty(t *testing.T) {
	statuses, err := EvaluateGoals(nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
