package analytics

import (
	"math"
	"time"

	"github.com/fintrack-io/fintrack/internal/finance"
)

// Factor weights of the composite score.
const (
	weightSavings   = 0.30
	weightAdherence = 0.25
	weightGoals     = 0.25
	weightStability = 0.20

	healthWindowMonths = 6

	// Neutral factor score when the user has no budgets or no goals.
	neutralScore = 50
)

// Recommendation texts, appended in this order. Keeping them as constants
// makes the recommendation list reproducible for identical inputs.
const (
	RecommendSavings   = "Try to increase your savings rate by cutting non-essential expenses."
	RecommendBudgets   = "Review your budgets regularly, several categories are trending over their limits."
	RecommendGoals     = "Make consistent monthly contributions to keep your savings goals on pace."
	RecommendStability = "Your monthly expenses fluctuate a lot, smoothing recurring costs will improve stability."
	RecommendInvesting = "Your finances look strong, consider exploring investment options for surplus savings."
)

// HealthReport runs the full scoring pipeline over a user's snapshot: a
// six-month monthly series for the savings and stability factors, budget
// statuses for adherence and goal statuses for progress.
func HealthReport(transactions []finance.Transaction, budgets []finance.Budget, goals []finance.Goal, now time.Time) (HealthScore, error) {
	series, err := MonthlySeries(transactions, healthWindowMonths, now)
	if err != nil {
		return HealthScore{}, err
	}
	budgetStatuses, err := EvaluateBudgets(budgets, transactions, DefaultAlertThreshold)
	if err != nil {
		return HealthScore{}, err
	}
	goalStatuses, err := EvaluateGoals(goals, now)
	if err != nil {
		return HealthScore{}, err
	}
	return ComputeHealthScore(series, budgetStatuses, goalStatuses), nil
}

// ComputeHealthScore blends the four factor scores into a weighted 0-100
// composite with a qualitative category and an ordered recommendation list.
func ComputeHealthScore(series []TimeSeriesPoint, budgets []BudgetStatus, goals []GoalStatus) HealthScore {
	savings := savingsRateFactor(series)
	adherence := budgetAdherenceFactor(budgets)
	progress := goalProgressFactor(goals)
	stability := expenseStabilityFactor(series)

	composite := int(math.Round(
		float64(savings.Score)*weightSavings +
			float64(adherence.Score)*weightAdherence +
			float64(progress.Score)*weightGoals +
			float64(stability.Score)*weightStability))

	// always a JSON array, even when no rule fires
	recommendations := []string{}
	if savings.Score < 50 {
		recommendations = append(recommendations, RecommendSavings)
	}
	if adherence.Score < 70 {
		recommendations = append(recommendations, RecommendBudgets)
	}
	if progress.Score < 60 {
		recommendations = append(recommendations, RecommendGoals)
	}
	if stability.Score < 60 {
		recommendations = append(recommendations, RecommendStability)
	}
	if composite >= 80 {
		recommendations = append(recommendations, RecommendInvesting)
	}

	return HealthScore{
		Score:            composite,
		Category:         scoreCategory(composite),
		SavingsRate:      savings,
		BudgetAdherence:  adherence,
		GoalProgress:     progress,
		ExpenseStability: stability,
		Recommendations:  recommendations,
	}
}

// savingsRateFactor: a 20% savings rate over the window already scores a
// perfect 100.
func savingsRateFactor(series []TimeSeriesPoint) HealthFactor {
	var income, expenses float64
	for _, p := range series {
		income += p.Income
		expenses += p.Expenses
	}

	rate := 0.0
	if income > 0 {
		rate = (income - expenses) / income * 100
	}
	return HealthFactor{
		Score: clampScore(rate * 5),
		Value: rate,
	}
}

// budgetAdherenceFactor: a budget at exactly 100% used scores 100 and every
// percentage point of overshoot costs one point. Classification above used
// the uncapped ratio, so it is recomputed here from spent/budgeted.
func budgetAdherenceFactor(budgets []BudgetStatus) HealthFactor {
	if len(budgets) == 0 {
		return HealthFactor{Score: neutralScore}
	}

	var scoreSum, usageSum float64
	for _, b := range budgets {
		usage := 0.0
		if b.Budgeted > 0 {
			usage = b.Spent / b.Budgeted * 100
		}
		usageSum += usage
		scoreSum += float64(clampScore(100 - (usage - 100)))
	}

	n := float64(len(budgets))
	return HealthFactor{
		Score: clampScore(scoreSum / n),
		Value: usageSum / n,
	}
}

func goalProgressFactor(goals []GoalStatus) HealthFactor {
	if len(goals) == 0 {
		return HealthFactor{Score: neutralScore}
	}

	var sum float64
	for _, g := range goals {
		sum += g.ProgressPercent
	}
	mean := sum / float64(len(goals))
	return HealthFactor{
		Score: clampScore(mean),
		Value: mean,
	}
}

// expenseStabilityFactor scores the inverse coefficient of variation of the
// monthly expense totals: steadier months score higher.
func expenseStabilityFactor(series []TimeSeriesPoint) HealthFactor {
	if len(series) == 0 {
		return HealthFactor{Score: neutralScore}
	}

	var sum float64
	for _, p := range series {
		sum += p.Expenses
	}
	mean := sum / float64(len(series))

	cov := 0.0
	if mean > 0 {
		var varianceSum float64
		for _, p := range series {
			varianceSum += (p.Expenses - mean) * (p.Expenses - mean)
		}
		stddev := math.Sqrt(varianceSum / float64(len(series)))
		cov = stddev / mean * 100
	}

	return HealthFactor{
		Score: clampScore(100 - cov),
		Value: cov,
	}
}

func scoreCategory(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 65:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "poor"
	}
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
