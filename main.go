package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/0xcafe-io/iz"
	"github.com/fintrack-io/fintrack/api"
	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/fintrack-io/fintrack/internal/reporting"
	"github.com/fintrack-io/fintrack/internal/storage"
	"github.com/fintrack-io/fintrack/logging"
	"github.com/rs/cors"
)

var ft finance.FinanceTracker // Global

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type"},
	AllowCredentials: true,
})

func newStorage() (finance.Storage, error) {
	if os.Getenv("STORAGE_TYPE") == "memory" {
		return storage.NewInMemoryStorage(), nil
	}

	db, err := storage.Init()
	if err != nil {
		return nil, err
	}
	return storage.NewMySQLStorage(db), nil
}

func main() {
	if err := logging.Init("debug"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return
	}

	logging.Logger.Info("application starting...")

	storageInstance, err := newStorage()
	if err != nil {
		logging.Logger.Errorf("failed to initialize storage: %v", err)
		return
	}
	logging.Logger.Infof("storage backend: %s", storageInstance.GetStorageType())

	ft = finance.NewFinanceTracker(storageInstance)

	server := http.NewServeMux()
	reports := reporting.NewReporter(&ft)
	api := api.NewApi(&ft, reports)

	// USER ENDPOINTS.
	server.HandleFunc("POST /api/register", iz.Bind(api.SaveUserHandler)) // Create User
	server.HandleFunc("POST /api/login", iz.Bind(api.LoginUserHandler))   // Login User
	server.HandleFunc("GET /api/logout", iz.Bind(api.LogoutUserHandler))  // Logout User

	// TRANSACTION ENDPOINTS.
	server.HandleFunc("POST /api/transaction", iz.Bind(api.SaveTransactionHandler))           // Create Transaction
	server.HandleFunc("GET /api/transaction", iz.Bind(api.GetFilteredTransactionsHandler))    // Get Transactions with filters
	server.HandleFunc("GET /api/transaction/{id}", iz.Bind(api.GetTransactionByIdHandler))    // Get Transaction by ID
	server.HandleFunc("DELETE /api/transaction/{id}", iz.Bind(api.DeleteTransactionHandler))  // Delete Transaction

	// CATEGORY ENDPOINTS.
	server.HandleFunc("POST /api/category", iz.Bind(api.SaveCategoryHandler)) // Create Category
	server.HandleFunc("GET /api/category", iz.Bind(api.GetCategoriesHandler)) // Get Categories

	// BUDGET ENDPOINTS.
	server.HandleFunc("POST /api/budget", iz.Bind(api.SaveBudgetHandler))          // Create Budget
	server.HandleFunc("GET /api/budget", iz.Bind(api.GetBudgetsHandler))           // Get Budgets
	server.HandleFunc("DELETE /api/budget/{id}", iz.Bind(api.DeleteBudgetHandler)) // Delete Budget

	// GOAL ENDPOINTS.
	server.HandleFunc("POST /api/goal", iz.Bind(api.SaveGoalHandler))                      // Create Goal
	server.HandleFunc("GET /api/goal", iz.Bind(api.GetGoalsHandler))                       // Get Goals
	server.HandleFunc("PUT /api/goal/{id}/progress", iz.Bind(api.UpdateGoalProgressHandler)) // Update Goal Progress
	server.HandleFunc("DELETE /api/goal/{id}", iz.Bind(api.DeleteGoalHandler))             // Delete Goal

	// ANALYTICS ENDPOINTS.
	server.HandleFunc("GET /api/analytics/trends", iz.Bind(api.MonthlyTrendsHandler))        // Monthly income/expense series
	server.HandleFunc("GET /api/analytics/categories", iz.Bind(api.SpendingByCategoryHandler)) // Spending by category
	server.HandleFunc("GET /api/analytics/budgets", iz.Bind(api.BudgetStatusesHandler))      // Budget usage statuses
	server.HandleFunc("GET /api/analytics/goals", iz.Bind(api.GoalStatusesHandler))          // Goal progress statuses
	server.HandleFunc("GET /api/analytics/health", iz.Bind(api.FinancialHealthHandler))      // Composite health score

	port := os.Getenv("APP_PORT")
	if port == "" {
		logging.Logger.Info("APP_PORT environment variable not set, using default port 8080")
		port = "8080"
	}
	fmt.Println("Starting server on port: ", port)
	handlerwithCors := corsConf.Handler(server)
	err = http.ListenAndServe(":"+port, handlerwithCors) // Start the server
	if err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
