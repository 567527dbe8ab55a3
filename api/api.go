package api

import (
	"encoding/json"
	"fmt"

	"github.com/0xcafe-io/iz"
	"github.com/fintrack-io/fintrack/internal/auth"
	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/fintrack-io/fintrack/internal/reporting"
	"github.com/fintrack-io/fintrack/logging"
)

type Api struct {
	Service *finance.FinanceTracker
	Reports *reporting.Reporter
}

func NewApi(service *finance.FinanceTracker, reports *reporting.Reporter) *Api {
	return &Api{
		Service: service,
		Reports: reports,
	}
}

// authorize resolves the Authorization header token to a user id.
func (api *Api) authorize(r *iz.Request) (string, iz.Responder) {
	token := r.Header.Get("Authorization")
	if token == "" {
		msg := "authorization failed: Authorization header is required."
		return "", iz.Respond().Status(401).Text(msg)
	}

	userId, err := api.Service.CheckSession(r.Context(), token)
	if err != nil {
		msg := fmt.Sprintf("authorization failed: %s", err.Error())
		return "", iz.Respond().Status(401).Text(msg)
	}
	return userId, nil
}

func (api *Api) SaveUserHandler(r *iz.Request) iz.Responder {
	var newUserReq SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&newUserReq); err != nil {
		msg := fmt.Sprintf("invalid request body: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	newUser := auth.NewUser{
		UserName:      newUserReq.UserName,
		FullName:      newUserReq.FullName,
		PasswordPlain: newUserReq.Password,
		Email:         newUserReq.Email,
	}

	if err := newUser.ValidateUserFields(); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}

	token, err := api.Service.SaveUser(r.Context(), newUser)
	if err != nil {
		msg := fmt.Sprintf("registration failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	resp := UserCreatedResponse{
		Message: "Registration Completed",
		Token:   token,
	}
	return iz.Respond().Status(201).JSON(resp)
}

func (api *Api) LoginUserHandler(r *iz.Request) iz.Responder {
	var loginRequest UserLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		msg := "invalid request body"
		return iz.Respond().Status(400).Text(msg)
	}

	credentials := auth.UserCredentialsPure{
		UserName:      loginRequest.UserName,
		PasswordPlain: loginRequest.Password,
	}

	response := LoginResponse{}

	token, err := api.Service.GenerateSession(r.Context(), credentials)
	if err != nil {
		response.Message = err.Error()
		return iz.Respond().Status(httpStatusFromError(err)).JSON(response)
	}
	response.Message = "You've logged in successfully!"
	response.Token = token
	return iz.Respond().Status(200).JSON(response)
}

func (api *Api) LogoutUserHandler(r *iz.Request) iz.Responder {
	token := r.Header.Get("Authorization")
	if token == "" {
		msg := "authorization failed: Authorization header is required."
		return iz.Respond().Status(401).Text(msg)
	}

	userId, err := api.Service.CheckSession(r.Context(), token)
	if err != nil {
		msg := fmt.Sprintf("authorization failed: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	if err := api.Service.LogoutUser(r.Context(), userId, token); err != nil {
		msg := fmt.Sprintf("logout failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	msg := "Logout successful."
	return iz.Respond().Status(200).Text(msg)
}

func (api *Api) SaveTransactionHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	var newTransactionReq CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&newTransactionReq); err != nil {
		logging.Logger.Errorf("Failed to parse save transaction request: %v", err)
		msg := fmt.Sprintf("failed to parse save transaction request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	newTransaction := finance.TransactionRequest{
		Kind:         newTransactionReq.Kind,
		Amount:       newTransactionReq.Amount,
		CategoryName: newTransactionReq.Category,
		Note:         newTransactionReq.Note,
	}

	if newTransactionReq.Date != "" {
		date, err := parseDate(newTransactionReq.Date)
		if err != nil {
			return iz.Respond().Status(400).Text(err.Error())
		}
		newTransaction.Date = date
	}

	transaction, err := api.Service.SaveTransaction(r.Context(), userId, newTransaction)
	if err != nil {
		msg := fmt.Sprintf("failed to create transaction: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(201).JSON(TransactionToHttp(transaction))
}

func (api *Api) GetFilteredTransactionsHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	params := r.URL.Query()

	filters, err := TransactionListValidateParams(params)
	if err != nil {
		msg := fmt.Sprintf("invalid filter parameteres: %s", err.Error())
		return iz.Respond().Status(400).Text(msg)
	}

	transactions, err := api.Service.GetFilteredTransactions(r.Context(), userId, filters)
	if err != nil {
		logging.Logger.Errorf("Failed to get filtered transactions request: %v", err)
		msg := "failed to get transactions"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	var container ListTransactionResponse
	container.Transactions = make([]TransactionItem, 0, len(transactions))
	for _, transaction := range transactions {
		container.Transactions = append(container.Transactions, TransactionToHttp(transaction))
	}
	return iz.Respond().Status(200).JSON(container)
}

func (api *Api) GetTransactionByIdHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	tId := r.PathValue("id")

	transaction, err := api.Service.GetTransactionById(r.Context(), userId, tId)
	if err != nil {
		logging.Logger.Errorf("Failed to get transaction by Id request: %v", err)
		msg := fmt.Sprintf("failed to get transaction by ID: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(TransactionToHttp(transaction))
}

func (api *Api) DeleteTransactionHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	tId := r.PathValue("id")

	if err := api.Service.DeleteTransaction(r.Context(), userId, tId); err != nil {
		logging.Logger.Errorf("Failed to delete transaction request: %v", err)
		msg := "failed to delete transaction"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	msg := "transaction deleted successfully"
	return iz.Respond().Status(200).Text(msg)
}

func (api *Api) SaveCategoryHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	var newCategoryReq CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&newCategoryReq); err != nil {
		msg := fmt.Sprintf("failed to parse save category request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	newCategory := finance.CategoryRequest{
		Name:  newCategoryReq.Name,
		Kind:  newCategoryReq.Kind,
		Color: newCategoryReq.Color,
	}

	category, err := api.Service.SaveCategory(r.Context(), userId, newCategory)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(201).JSON(CategoryToHttp(category))
}

func (api *Api) GetCategoriesHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	categories, err := api.Service.GetCategories(r.Context(), userId)
	if err != nil {
		logging.Logger.Errorf("Failed to get categories: %v", err)
		msg := "failed to get categories"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	var container ListCategoriesResponse
	container.Categories = make([]CategoryItem, 0, len(categories))
	for _, category := range categories {
		container.Categories = append(container.Categories, CategoryToHttp(category))
	}
	return iz.Respond().Status(200).JSON(container)
}

func (api *Api) SaveBudgetHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	var newBudgetReq CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&newBudgetReq); err != nil {
		msg := fmt.Sprintf("failed to parse save budget request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	startDate, err := parseDate(newBudgetReq.StartDate)
	if err != nil {
		return iz.Respond().Status(400).Text(err.Error())
	}
	endDate, err := parseDate(newBudgetReq.EndDate)
	if err != nil {
		return iz.Respond().Status(400).Text(err.Error())
	}

	newBudget := finance.BudgetRequest{
		CategoryName: newBudgetReq.Category,
		Amount:       newBudgetReq.Amount,
		Period:       newBudgetReq.Period,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	budget, err := api.Service.SaveBudget(r.Context(), userId, newBudget)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(201).JSON(BudgetToHttp(budget))
}

func (api *Api) GetBudgetsHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	budgets, err := api.Service.GetBudgets(r.Context(), userId)
	if err != nil {
		logging.Logger.Errorf("Failed to get budgets: %v", err)
		msg := "failed to get budgets"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	var container ListBudgetsResponse
	container.Budgets = make([]BudgetItem, 0, len(budgets))
	for _, budget := range budgets {
		container.Budgets = append(container.Budgets, BudgetToHttp(budget))
	}
	return iz.Respond().Status(200).JSON(container)
}

func (api *Api) DeleteBudgetHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	budgetId := r.PathValue("id")

	if err := api.Service.DeleteBudget(r.Context(), userId, budgetId); err != nil {
		logging.Logger.Errorf("Failed to delete budget request: %v", err)
		msg := "failed to delete budget"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	msg := "budget deleted successfully"
	return iz.Respond().Status(200).Text(msg)
}

func (api *Api) SaveGoalHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	var newGoalReq CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&newGoalReq); err != nil {
		msg := fmt.Sprintf("failed to parse save goal request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	targetDate, err := parseDate(newGoalReq.TargetDate)
	if err != nil {
		return iz.Respond().Status(400).Text(err.Error())
	}

	newGoal := finance.GoalRequest{
		Title:        newGoalReq.Title,
		TargetAmount: newGoalReq.TargetAmount,
		TargetDate:   targetDate,
	}

	goal, err := api.Service.SaveGoal(r.Context(), userId, newGoal)
	if err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(err.Error())
	}
	return iz.Respond().Status(201).JSON(GoalToHttp(goal))
}

func (api *Api) GetGoalsHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	goals, err := api.Service.GetGoals(r.Context(), userId)
	if err != nil {
		logging.Logger.Errorf("Failed to get goals: %v", err)
		msg := "failed to get goals"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	var container ListGoalsResponse
	container.Goals = make([]GoalItem, 0, len(goals))
	for _, goal := range goals {
		container.Goals = append(container.Goals, GoalToHttp(goal))
	}
	return iz.Respond().Status(200).JSON(container)
}

func (api *Api) UpdateGoalProgressHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	goalId := r.PathValue("id")

	var progressReq GoalProgressUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&progressReq); err != nil {
		msg := fmt.Sprintf("failed to parse goal progress request: %v", err)
		return iz.Respond().Status(400).Text(msg)
	}

	goal, err := api.Service.UpdateGoalProgress(r.Context(), userId, finance.GoalProgressRequest{
		ID:     goalId,
		Amount: progressReq.Amount,
	})
	if err != nil {
		msg := fmt.Sprintf("failed to update goal progress: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(GoalToHttp(goal))
}

func (api *Api) DeleteGoalHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	goalId := r.PathValue("id")

	if err := api.Service.DeleteGoal(r.Context(), userId, goalId); err != nil {
		logging.Logger.Errorf("Failed to delete goal request: %v", err)
		msg := "failed to delete goal"
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	msg := "goal deleted successfully"
	return iz.Respond().Status(200).Text(msg)
}

// --- ANALYTICS --- //

func (api *Api) MonthlyTrendsHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	months, err := monthsParam(r.URL.Query(), defaultTrendsMonths)
	if err != nil {
		return iz.Respond().Status(400).Text(err.Error())
	}

	series, err := api.Reports.MonthlyTrends(r.Context(), userId, months)
	if err != nil {
		logging.Logger.Errorf("Failed to build monthly trends: %v", err)
		msg := fmt.Sprintf("failed to build monthly trends: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(series)
}

func (api *Api) SpendingByCategoryHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	months, err := monthsParam(r.URL.Query(), defaultBreakdownMonths)
	if err != nil {
		return iz.Respond().Status(400).Text(err.Error())
	}

	breakdown, err := api.Reports.SpendingByCategory(r.Context(), userId, months)
	if err != nil {
		logging.Logger.Errorf("Failed to build category breakdown: %v", err)
		msg := fmt.Sprintf("failed to build category breakdown: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(breakdown)
}

func (api *Api) BudgetStatusesHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	statuses, err := api.Reports.BudgetStatuses(r.Context(), userId)
	if err != nil {
		logging.Logger.Errorf("Failed to evaluate budgets: %v", err)
		msg := fmt.Sprintf("failed to evaluate budgets: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(statuses)
}

func (api *Api) GoalStatusesHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	statuses, err := api.Reports.GoalStatuses(r.Context(), userId)
	if err != nil {
		logging.Logger.Errorf("Failed to evaluate goals: %v", err)
		msg := fmt.Sprintf("failed to evaluate goals: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(statuses)
}

func (api *Api) FinancialHealthHandler(r *iz.Request) iz.Responder {
	userId, denied := api.authorize(r)
	if denied != nil {
		return denied
	}

	report, err := api.Reports.FinancialHealth(r.Context(), userId)
	if err != nil {
		logging.Logger.Errorf("Failed to build health report: %v", err)
		msg := fmt.Sprintf("failed to build health report: %s", err.Error())
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).JSON(report)
}
