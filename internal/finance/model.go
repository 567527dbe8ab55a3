package finance

import (
	"time"
)

const (
	KindIncome  = "income"
	KindExpense = "expense"

	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"

	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalAbandoned = "abandoned"
)

// REQUESTS START:
type TransactionRequest struct {
	Kind         string
	Amount       float64
	CategoryName string
	Date         time.Time
	Note         string
}

type BudgetRequest struct {
	CategoryName string
	Amount       float64
	Period       string
	StartDate    time.Time
	EndDate      time.Time
}

type GoalRequest struct {
	Title        string
	TargetAmount float64
	TargetDate   time.Time
}

type CategoryRequest struct {
	Name  string
	Kind  string
	Color string
}

type GoalProgressRequest struct {
	ID     string
	Amount float64
}

// REQUESTS END:

// MODELS:

type Transaction struct {
	ID           string
	UserID       string
	Kind         string
	Amount       float64
	CategoryName string
	Date         time.Time
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Budget struct {
	ID           string
	UserID       string
	CategoryName string
	Amount       float64
	Period       string
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
}

type Goal struct {
	ID            string
	UserID        string
	Title         string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Category struct {
	ID    string
	Name  string
	Kind  string
	Color string
}

// FILTERS:

type TransactionList struct {
	CategoryNames []string
	Kind          string
	From          time.Time
	To            time.Time
	IsAllNil      bool
}
