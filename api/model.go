package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/fintrack-io/fintrack/customErrors"

	"github.com/fintrack-io/fintrack/internal/finance"
)

const dateLayout = "2006-01-02"

// REQUESTS START:
type SaveUserRequest struct {
	UserName string `json:"username"`
	FullName string `json:"fullname"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type UserLoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type CreateTransactionRequest struct {
	Kind     string  `json:"kind"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"` // "2006-01-02", empty means today
	Note     string  `json:"note"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type CreateBudgetRequest struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Period    string  `json:"period"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type CreateGoalRequest struct {
	Title        string  `json:"title"`
	TargetAmount float64 `json:"target_amount"`
	TargetDate   string  `json:"target_date"`
}

type GoalProgressUpdateRequest struct {
	Amount float64 `json:"amount"`
}

//REQUESTS END:

//RESPONSES:

type UserCreatedResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type TransactionItem struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Date      string  `json:"date"`
	Note      string  `json:"note"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ListTransactionResponse struct {
	Transactions []TransactionItem `json:"transactions"`
}

type CategoryItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type ListCategoriesResponse struct {
	Categories []CategoryItem `json:"categories"`
}

type BudgetItem struct {
	ID        string  `json:"id"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Period    string  `json:"period"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	CreatedAt string  `json:"created_at"`
}

type ListBudgetsResponse struct {
	Budgets []BudgetItem `json:"budgets"`
}

type GoalItem struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListGoalsResponse struct {
	Goals []GoalItem `json:"goals"`
}

func httpStatusFromError(err error) int {
	var validationErr appErrors.ValidationError
	if errors.As(err, &validationErr) {
		return 400
	}

	var errResp appErrors.ErrorResponse
	if !errors.As(err, &errResp) {
		return 500
	}

	switch errResp.Code {
	case appErrors.ErrNotFound:
		return 404 // not found
	case appErrors.ErrInvalidInput:
		return 400 // bad request
	case appErrors.ErrAuth:
		return 401 // unauthorized
	case appErrors.ErrAccessDenied:
		return 403 // access denied
	case appErrors.ErrConflict:
		return 409 // conflict
	default:
		return 500 //internal error
	}
}

func TransactionToHttp(transaction finance.Transaction) TransactionItem {
	return TransactionItem{
		ID:        transaction.ID,
		Kind:      transaction.Kind,
		Amount:    transaction.Amount,
		Category:  transaction.CategoryName,
		Date:      transaction.Date.Format(dateLayout),
		Note:      transaction.Note,
		CreatedAt: transaction.CreatedAt.Format("02/01/2006 15:04"),
		UpdatedAt: transaction.UpdatedAt.Format("02/01/2006 15:04"),
	}
}

func CategoryToHttp(category finance.Category) CategoryItem {
	return CategoryItem{
		ID:    category.ID,
		Name:  category.Name,
		Kind:  category.Kind,
		Color: category.Color,
	}
}

func BudgetToHttp(budget finance.Budget) BudgetItem {
	return BudgetItem{
		ID:        budget.ID,
		Category:  budget.CategoryName,
		Amount:    budget.Amount,
		Period:    budget.Period,
		StartDate: budget.StartDate.Format(dateLayout),
		EndDate:   budget.EndDate.Format(dateLayout),
		CreatedAt: budget.CreatedAt.Format("02/01/2006 15:04"),
	}
}

func GoalToHttp(goal finance.Goal) GoalItem {
	return GoalItem{
		ID:            goal.ID,
		Title:         goal.Title,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate.Format(dateLayout),
		Status:        goal.Status,
		CreatedAt:     goal.CreatedAt.Format("02/01/2006 15:04"),
		UpdatedAt:     goal.UpdatedAt.Format("02/01/2006 15:04"),
	}
}

func TransactionListValidateParams(params url.Values) (*finance.TransactionList, error) {
	var filters finance.TransactionList
	if len(params) == 0 {
		filters.IsAllNil = true
		return &filters, nil
	}

	if kind := params.Get("kind"); kind != "" {
		if kind != finance.KindIncome && kind != finance.KindExpense {
			return nil, fmt.Errorf("invalid transaction kind: %s", kind)
		}
		filters.Kind = kind
	}

	if names := params.Get("categories"); names != "" {
		filters.CategoryNames = strings.Split(names, ",")
	}

	if from := params.Get("from"); from != "" {
		date, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %s", from)
		}
		filters.From = date
	}

	if to := params.Get("to"); to != "" {
		date, err := time.Parse(dateLayout, to)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %s", to)
		}
		filters.To = date
	}

	return &filters, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s, expected format: %s", s, dateLayout)
	}
	return date, nil
}

const (
	defaultTrendsMonths    = 12
	defaultBreakdownMonths = 1
)

func monthsParam(params url.Values, fallback int) (int, error) {
	monthsStr := params.Get("months")
	if monthsStr == "" {
		return fallback, nil
	}
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return 0, fmt.Errorf("invalid months parameter: %s", monthsStr)
	}
	return months, nil
}
