package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
	authModel "github.com/fintrack-io/fintrack/internal/auth"
	financeModel "github.com/fintrack-io/fintrack/internal/finance"
)

// InMemoryStorage is the STORAGE_TYPE=memory backend. Everything lives in
// slices guarded by one mutex; data is gone when the process exits.
type InMemoryStorage struct {
	mu           sync.Mutex
	users        []authModel.User
	sessions     []authModel.Session
	transactions []financeModel.Transaction
	budgets      []financeModel.Budget
	goals        []financeModel.Goal
	categories   []financeModel.Category
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) SaveUser(ctx context.Context, newUser authModel.User) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.users = append(inMem.users, newUser)
	return nil
}

func (inMem *InMemoryStorage) ValidateUser(ctx context.Context, credentials authModel.UserCredentialsPure) (authModel.User, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, user := range inMem.users {
		if user.UserName == strings.ToLower(credentials.UserName) {
			if authModel.ComparePasswords(user.PasswordHashed, credentials.PasswordPlain) {
				return user, nil
			}
			return authModel.User{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Password is wrong.",
			}
		}
	}
	return authModel.User{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "User not found.",
	}
}

func (inMem *InMemoryStorage) IsUserExists(ctx context.Context, username string) (bool, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, user := range inMem.users {
		if user.UserName == strings.ToLower(username) {
			return true, nil
		}
	}
	return false, nil
}

func (inMem *InMemoryStorage) SaveSession(ctx context.Context, session authModel.Session) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.sessions = append(inMem.sessions, session)
	return nil
}

func (inMem *InMemoryStorage) CheckSession(ctx context.Context, token string) (string, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, session := range inMem.sessions {
		if strings.TrimSpace(session.Token) == strings.TrimSpace(token) {
			if session.ExpireAt.After(time.Now().UTC()) {
				return session.UserID, nil
			}
			return "", appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Your session expired, please login again.",
			}
		}
	}
	return "", appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please login.",
	}
}

func (inMem *InMemoryStorage) GetSessionByToken(ctx context.Context, token string) (authModel.Session, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, session := range inMem.sessions {
		if session.Token == token {
			return session, nil
		}
	}
	return authModel.Session{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please login.",
	}
}

func (inMem *InMemoryStorage) UpdateSession(ctx context.Context, userId string, expireAt time.Time) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i, session := range inMem.sessions {
		if session.UserID == userId {
			inMem.sessions[i].ExpireAt = expireAt
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please login.",
	}
}

func (inMem *InMemoryStorage) LogoutUser(ctx context.Context, userId string, token string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i, session := range inMem.sessions {
		if session.UserID == userId && session.Token == token {
			inMem.sessions = append(inMem.sessions[:i], inMem.sessions[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Session not found.",
	}
}

func (inMem *InMemoryStorage) SaveTransaction(ctx context.Context, t financeModel.Transaction) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.transactions = append(inMem.transactions, t)
	return nil
}

func (inMem *InMemoryStorage) GetFilteredTransactions(ctx context.Context, userID string, filters *financeModel.TransactionList) ([]financeModel.Transaction, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	var result []financeModel.Transaction
	for _, transaction := range inMem.transactions {
		if transaction.UserID != userID {
			continue
		}
		if filters != nil && !filters.IsAllNil {
			if filters.Kind != "" && transaction.Kind != filters.Kind {
				continue
			}
			if len(filters.CategoryNames) > 0 && !containsFold(filters.CategoryNames, transaction.CategoryName) {
				continue
			}
			if !filters.From.IsZero() && transaction.Date.Before(filters.From) {
				continue
			}
			if !filters.To.IsZero() && transaction.Date.After(filters.To) {
				continue
			}
		}
		result = append(result, transaction)
	}
	return result, nil
}

func (inMem *InMemoryStorage) GetTransactionById(ctx context.Context, userID string, transactionID string) (financeModel.Transaction, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, transaction := range inMem.transactions {
		if transaction.ID == transactionID && transaction.UserID == userID {
			return transaction, nil
		}
	}
	return financeModel.Transaction{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Transaction not found.",
	}
}

func (inMem *InMemoryStorage) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i, transaction := range inMem.transactions {
		if transaction.ID == transactionID && transaction.UserID == userID {
			inMem.transactions = append(inMem.transactions[:i], inMem.transactions[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Transaction not found.",
	}
}

func (inMem *InMemoryStorage) SaveCategory(ctx context.Context, category financeModel.Category) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, existing := range inMem.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: "The category already exists.",
			}
		}
	}
	inMem.categories = append(inMem.categories, category)
	return nil
}

func (inMem *InMemoryStorage) GetCategories(ctx context.Context, userID string) ([]financeModel.Category, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	result := make([]financeModel.Category, len(inMem.categories))
	copy(result, inMem.categories)
	return result, nil
}

func (inMem *InMemoryStorage) SaveBudget(ctx context.Context, budget financeModel.Budget) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.budgets = append(inMem.budgets, budget)
	return nil
}

func (inMem *InMemoryStorage) GetBudgets(ctx context.Context, userID string) ([]financeModel.Budget, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	var result []financeModel.Budget
	for _, budget := range inMem.budgets {
		if budget.UserID == userID {
			result = append(result, budget)
		}
	}
	return result, nil
}

func (inMem *InMemoryStorage) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i, budget := range inMem.budgets {
		if budget.ID == budgetID && budget.UserID == userID {
			inMem.budgets = append(inMem.budgets[:i], inMem.budgets[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Budget not found.",
	}
}

func (inMem *InMemoryStorage) SaveGoal(ctx context.Context, goal financeModel.Goal) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.goals = append(inMem.goals, goal)
	return nil
}

func (inMem *InMemoryStorage) GetGoals(ctx context.Context, userID string) ([]financeModel.Goal, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	var result []financeModel.Goal
	for _, goal := range inMem.goals {
		if goal.UserID == userID {
			result = append(result, goal)
		}
	}
	return result, nil
}

func (inMem *InMemoryStorage) UpdateGoalProgress(ctx context.Context, userID string, goalID string, amount float64, updatedAt time.Time) (financeModel.Goal, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i, goal := range inMem.goals {
		if goal.ID == goalID && goal.UserID == userID {
			inMem.goals[i].CurrentAmount = amount
			inMem.goals[i].UpdatedAt = updatedAt
			if amount >= goal.TargetAmount {
				inMem.goals[i].Status = financeModel.GoalCompleted
			}
			return inMem.goals[i], nil
		}
	}
	return financeModel.Goal{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Goal not found.",
	}
}

func (inMem *InMemoryStorage) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i, goal := range inMem.goals {
		if goal.ID == goalID && goal.UserID == userID {
			inMem.goals = append(inMem.goals[:i], inMem.goals[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Goal not found.",
	}
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
