// Package analytics turns a user's raw transaction, budget and goal records
// into derived trend, breakdown and scoring structures. Every function here
// is a pure computation over its inputs: the reference clock is always an
// explicit parameter and nothing is cached between calls.
package analytics

type TimeSeriesPoint struct {
	Period   string  `json:"period"` // "YYYY-MM"
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type CategorySpending struct {
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Color        string  `json:"color"`
	Count        int     `json:"count"`
}

type BudgetState string

const (
	BudgetUnder BudgetState = "under"
	BudgetNear  BudgetState = "near"
	BudgetOver  BudgetState = "over"
)

type BudgetStatus struct {
	CategoryName string      `json:"category_name"`
	Budgeted     float64     `json:"budgeted"`
	Spent        float64     `json:"spent"`
	Remaining    float64     `json:"remaining"`
	PercentUsed  float64     `json:"percent_used"` // capped at 100 for progress bars
	Status       BudgetState `json:"status"`       // classified from the uncapped value
}

type GoalStatus struct {
	Title           string  `json:"title"`
	TargetAmount    float64 `json:"target_amount"`
	CurrentAmount   float64 `json:"current_amount"`
	ProgressPercent float64 `json:"progress_percent"`
	DaysRemaining   int     `json:"days_remaining"`
	MonthlyTarget   float64 `json:"monthly_target"`
	OnTrack         bool    `json:"on_track"`
}

type HealthFactor struct {
	Score int     `json:"score"` // 0-100
	Value float64 `json:"value"` // underlying raw value the score was derived from
}

type HealthScore struct {
	Score            int          `json:"score"` // 0-100 weighted composite
	Category         string       `json:"category"`
	SavingsRate      HealthFactor `json:"savings_rate"`
	BudgetAdherence  HealthFactor `json:"budget_adherence"`
	GoalProgress     HealthFactor `json:"goal_progress"`
	ExpenseStability HealthFactor `json:"expense_stability"`
	Recommendations  []string     `json:"recommendations"`
}
