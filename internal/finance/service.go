package finance

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
	"github.com/fintrack-io/fintrack/internal/auth"
	"github.com/google/uuid"
)

const (
	MAX_TRANSACTION_AMOUNT_LIMIT = 999999999999999999
	MAX_CATEGORY_NAME_LENGTH     = 255
	MAX_NOTE_LENGTH              = 1000
	MAX_GOAL_TITLE_LENGTH        = 255
)

type FinanceTracker struct {
	storage     Storage
	StorageType string
}

func NewFinanceTracker(s Storage) FinanceTracker {
	return FinanceTracker{
		storage:     s,
		StorageType: s.GetStorageType(),
	}
}

type Storage interface {
	SaveUser(ctx context.Context, newUser auth.User) error
	ValidateUser(ctx context.Context, credentials auth.UserCredentialsPure) (auth.User, error)
	IsUserExists(ctx context.Context, username string) (bool, error)
	SaveSession(ctx context.Context, session auth.Session) error
	CheckSession(ctx context.Context, token string) (userId string, err error)
	GetSessionByToken(ctx context.Context, token string) (auth.Session, error)
	UpdateSession(ctx context.Context, userId string, expireAt time.Time) error
	LogoutUser(ctx context.Context, userId string, token string) error

	SaveTransaction(ctx context.Context, t Transaction) error
	GetFilteredTransactions(ctx context.Context, userID string, filters *TransactionList) ([]Transaction, error)
	GetTransactionById(ctx context.Context, userID string, transactionID string) (Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	SaveCategory(ctx context.Context, category Category) error
	GetCategories(ctx context.Context, userID string) ([]Category, error)

	SaveBudget(ctx context.Context, budget Budget) error
	GetBudgets(ctx context.Context, userID string) ([]Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error

	SaveGoal(ctx context.Context, goal Goal) error
	GetGoals(ctx context.Context, userID string) ([]Goal, error)
	UpdateGoalProgress(ctx context.Context, userID string, goalID string, amount float64, updatedAt time.Time) (Goal, error)
	DeleteGoal(ctx context.Context, userID string, goalID string) error

	GetStorageType() string
}

// --- USERS & SESSIONS --- //

func (ft *FinanceTracker) ValidateUser(ctx context.Context, credentials auth.UserCredentialsPure) (auth.User, error) {
	user, err := ft.storage.ValidateUser(ctx, credentials)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to validate user: %w", err)
	}
	return user, nil
}

func (ft *FinanceTracker) GenerateSession(ctx context.Context, credentialsPure auth.UserCredentialsPure) (string, error) {
	user, err := ft.storage.ValidateUser(ctx, credentialsPure)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	tokenByte := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, tokenByte); err != nil {
		return "", fmt.Errorf("failed to generate new session: %w", err)
	}

	token := hex.EncodeToString(tokenByte)

	now := time.Now().UTC()

	session := auth.Session{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: now,
		ExpireAt:  now.AddDate(0, 3, 0),
		UserID:    user.ID,
	}

	if err := ft.storage.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

func (ft *FinanceTracker) CheckSession(ctx context.Context, token string) (string, error) {
	session, err := ft.storage.GetSessionByToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to get session by token: %w", err)
	}

	userId, err := ft.storage.CheckSession(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to check session: %w", err)
	}

	now := time.Now().UTC()
	daysUntilExpiry := int(session.ExpireAt.Sub(now).Hours() / 24)

	if daysUntilExpiry <= 5 {
		newExpireAt := now.AddDate(0, 1, 0)
		if err := ft.storage.UpdateSession(ctx, userId, newExpireAt); err != nil {
			return "", fmt.Errorf("failed to update session: %w", err)
		}
	}

	return userId, nil
}

func (ft *FinanceTracker) IsUserExists(ctx context.Context, username string) (bool, error) {
	result, err := ft.storage.IsUserExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check user existance: %w", err)
	}
	return result, nil
}

func (ft *FinanceTracker) SaveUser(ctx context.Context, newUser auth.NewUser) (string, error) {
	if err := newUser.ValidateUserFields(); err != nil {
		return "", err
	}

	isUserExists, err := ft.IsUserExists(ctx, newUser.UserName)
	if err != nil {
		return "", fmt.Errorf("failed to check username availability: %w", err)
	}
	if isUserExists {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: fmt.Sprintf("this '%s' username already taken", newUser.UserName),
		}
	}

	hashedPassword, err := auth.HashPassword(newUser.PasswordPlain)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := auth.User{
		ID:             uuid.New().String(),
		UserName:       strings.ToLower(newUser.UserName),
		FullName:       CapitalizeFullName(newUser.FullName),
		Email:          strings.ToLower(newUser.Email),
		PasswordHashed: hashedPassword,
	}

	if err := ft.storage.SaveUser(ctx, user); err != nil {
		return "", fmt.Errorf("failed to registration: %w", err)
	}

	credentials := auth.UserCredentialsPure{
		UserName:      newUser.UserName,
		PasswordPlain: newUser.PasswordPlain,
	}

	token, err := ft.GenerateSession(ctx, credentials)
	if err != nil {
		return "", fmt.Errorf("registration successfully but failed to generate session: %w | try login", err)
	}
	return token, nil
}

func CapitalizeFullName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func (ft *FinanceTracker) LogoutUser(ctx context.Context, userId string, token string) error {
	if err := ft.storage.LogoutUser(ctx, userId, token); err != nil {
		return err
	}
	return nil
}

// --- TRANSACTIONS --- //

func (ft *FinanceTracker) SaveTransaction(ctx context.Context, userId string, req TransactionRequest) (Transaction, error) {
	if req.Amount > MAX_TRANSACTION_AMOUNT_LIMIT {
		return Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("maximum allowed amount per transaction is: %d", MAX_TRANSACTION_AMOUNT_LIMIT),
		}
	}
	if req.CategoryName == "" {
		return Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "category name is empty",
		}
	}
	if len(req.CategoryName) > MAX_CATEGORY_NAME_LENGTH {
		return Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("category name so long, maximum allowed length is: %d", MAX_CATEGORY_NAME_LENGTH),
		}
	}
	if len(req.Note) > MAX_NOTE_LENGTH {
		return Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("note so long, maximum allowed length is: %d", MAX_NOTE_LENGTH),
		}
	}

	now := time.Now().UTC()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	txn := Transaction{
		ID:           uuid.New().String(),
		UserID:       userId,
		Kind:         strings.ToLower(req.Kind),
		Amount:       req.Amount,
		CategoryName: req.CategoryName,
		Date:         date,
		Note:         req.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := ValidateTransaction(txn); err != nil {
		return Transaction{}, err
	}

	if err := ft.storage.SaveTransaction(ctx, txn); err != nil {
		return Transaction{}, fmt.Errorf("failed to save transaction to db: %w", err)
	}
	return txn, nil
}

func (ft *FinanceTracker) GetFilteredTransactions(ctx context.Context, userID string, filters *TransactionList) ([]Transaction, error) {
	transactions, err := ft.storage.GetFilteredTransactions(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

func (ft *FinanceTracker) GetTransactionById(ctx context.Context, userId string, transactionId string) (Transaction, error) {
	t, err := ft.storage.GetTransactionById(ctx, userId, transactionId)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get transaction by id: %w", err)
	}
	return t, nil
}

func (ft *FinanceTracker) DeleteTransaction(ctx context.Context, userId string, transactionId string) error {
	if err := ft.storage.DeleteTransaction(ctx, userId, transactionId); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// --- CATEGORIES --- //

func (ft *FinanceTracker) SaveCategory(ctx context.Context, userId string, req CategoryRequest) (Category, error) {
	if req.Name == "" {
		return Category{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "category name is empty",
		}
	}
	if len(req.Name) > MAX_CATEGORY_NAME_LENGTH {
		return Category{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("category name is too long, the limit is: %d", MAX_CATEGORY_NAME_LENGTH),
		}
	}
	kind := strings.ToLower(req.Kind)
	if kind != KindIncome && kind != KindExpense {
		return Category{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("invalid category kind: %s", req.Kind),
		}
	}

	category := Category{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Kind:  kind,
		Color: req.Color,
	}

	if err := ft.storage.SaveCategory(ctx, category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (ft *FinanceTracker) GetCategories(ctx context.Context, userID string) ([]Category, error) {
	categories, err := ft.storage.GetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// --- BUDGETS --- //

func (ft *FinanceTracker) SaveBudget(ctx context.Context, userId string, req BudgetRequest) (Budget, error) {
	budget := Budget{
		ID:           uuid.New().String(),
		UserID:       userId,
		CategoryName: req.CategoryName,
		Amount:       req.Amount,
		Period:       strings.ToLower(req.Period),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedAt:    time.Now().UTC(),
	}

	if budget.CategoryName == "" {
		return Budget{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "budget category name is empty",
		}
	}
	if err := ValidateBudget(budget); err != nil {
		return Budget{}, err
	}

	if err := ft.storage.SaveBudget(ctx, budget); err != nil {
		return Budget{}, fmt.Errorf("failed to save budget: %w", err)
	}
	return budget, nil
}

func (ft *FinanceTracker) GetBudgets(ctx context.Context, userID string) ([]Budget, error) {
	budgets, err := ft.storage.GetBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	return budgets, nil
}

func (ft *FinanceTracker) DeleteBudget(ctx context.Context, userId string, budgetId string) error {
	if err := ft.storage.DeleteBudget(ctx, userId, budgetId); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

// --- GOALS --- //

func (ft *FinanceTracker) SaveGoal(ctx context.Context, userId string, req GoalRequest) (Goal, error) {
	if req.Title == "" {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "goal title is empty",
		}
	}
	if len(req.Title) > MAX_GOAL_TITLE_LENGTH {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("goal title is too long, the limit is: %d", MAX_GOAL_TITLE_LENGTH),
		}
	}

	now := time.Now().UTC()
	goal := Goal{
		ID:           uuid.New().String(),
		UserID:       userId,
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Status:       GoalActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := ValidateGoal(goal); err != nil {
		return Goal{}, err
	}

	if err := ft.storage.SaveGoal(ctx, goal); err != nil {
		return Goal{}, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal, nil
}

func (ft *FinanceTracker) GetGoals(ctx context.Context, userID string) ([]Goal, error) {
	goals, err := ft.storage.GetGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	return goals, nil
}

func (ft *FinanceTracker) UpdateGoalProgress(ctx context.Context, userId string, req GoalProgressRequest) (Goal, error) {
	if req.Amount < 0 {
		return Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "goal progress amount must be non-negative",
		}
	}

	goal, err := ft.storage.UpdateGoalProgress(ctx, userId, req.ID, req.Amount, time.Now().UTC())
	if err != nil {
		return Goal{}, fmt.Errorf("failed to update goal progress: %w", err)
	}
	return goal, nil
}

func (ft *FinanceTracker) DeleteGoal(ctx context.Context, userId string, goalId string) error {
	if err := ft.storage.DeleteGoal(ctx, userId, goalId); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
