package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	appErrors "github.com/fintrack-io/fintrack/customErrors"
	"github.com/fintrack-io/fintrack/internal/auth"
	"github.com/fintrack-io/fintrack/internal/contextutil"
	"github.com/fintrack-io/fintrack/internal/finance"
	"github.com/fintrack-io/fintrack/logging"
	"github.com/go-sql-driver/mysql"
)

// --- INIT START --- //

func Init() (*sql.DB, error) {
	var db *sql.DB
	var err error
	var dbname string

	username := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	dbname = os.Getenv("DB_NAME")
	fullDsn := os.Getenv("FULL_DSN")

	if dbname == "" {
		dbname = "fintrack"
	}

	var adminDsn string
	if fullDsn != "" {
		parts := strings.Split(fullDsn, "/")
		adminDsn = strings.Join(parts[:len(parts)-1], "/") + "/"
	} else {
		if username == "" || password == "" || host == "" || port == "" {
			return nil, fmt.Errorf("missing required DB environment variables")
		}
		adminDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?parseTime=true", username, password, host, port)
	}

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %v", err)
	}
	connected := false
	for i := 0; i < 15; i++ {
		if err := adminDb.Ping(); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/15)", i+1)
		time.Sleep(3 * time.Second)
	}
	if !connected {
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	var dbnameExistence string
	checkDbnameExistQuery := "SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"
	err = adminDb.QueryRow(checkDbnameExistQuery, dbname).Scan(&dbnameExistence)

	if err == sql.ErrNoRows {
		logging.Logger.Infof("Database '%s' does not exist, creating...", dbname)
		createDbSql := fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dbname)
		if _, err := adminDb.Exec(createDbSql); err != nil {
			adminDb.Close()
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	} else if err != nil {
		adminDb.Close()
		return nil, fmt.Errorf("failed to check database existence: %v", err)
	}

	adminDb.Close()

	var finalDsn string
	if fullDsn != "" {
		finalDsn = fullDsn
	} else {
		finalDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", username, password, host, port, dbname)
	}

	logging.Logger.Info("Connecting to database...")
	db, err = sql.Open("mysql", finalDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %v", err)
	}

	if _, err := db.Exec("SET GLOBAL time_zone = '+00:00'"); err != nil {
		logging.Logger.Warn("failed to set database timezone(UTC+0)")
	}

	logging.Logger.Info("Connected to database successfully")
	logging.Logger.Info("Running migrations...")

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrationFiles, err := getMigrationFiles("db/migrations")
	if err != nil {
		return fmt.Errorf("failed to get migration files: %v", err)
	}

	lastAppliedMigration, err := getLastAppliedMigration(db)
	if err != nil {
		return fmt.Errorf("failed to get last applied migration name: %v", err)
	}

	newMigrations := filterNewMigrations(migrationFiles, lastAppliedMigration)

	if len(newMigrations) == 0 {
		logging.Logger.Info("no new migration")
		return nil
	}

	for _, migrationFile := range newMigrations {
		logging.Logger.Info("applying migration: ", migrationFile)
		migrationContent, err := os.ReadFile(filepath.Join("db/migrations/", migrationFile))
		if err != nil {
			return fmt.Errorf("failed to read this '%s' migration file, error: %v", migrationFile, err)
		}

		err = applyMigration(db, migrationFile, string(migrationContent))
		if err != nil {
			return fmt.Errorf("failed to apply this '%s' migration file, error: %v", migrationFile, err)
		}

	}

	logging.Logger.Info("all migrations applied successfully")
	return nil
}

func getMigrationFiles(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var migrationFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}

	sort.Strings(migrationFiles)
	return migrationFiles, nil
}

func getLastAppliedMigration(db *sql.DB) (string, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS migration (
        id INT AUTO_INCREMENT PRIMARY KEY,
        migration_name VARCHAR(255) NOT NULL UNIQUE,
        applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );`)

	if err != nil {
		return "", err
	}

	var lastMigration string
	err = db.QueryRow("SELECT migration_name FROM migration ORDER BY migration_name DESC LIMIT 1").Scan(&lastMigration)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return lastMigration, err
}

func filterNewMigrations(all []string, lastApplied string) []string {
	if lastApplied == "" {
		return all
	}

	var result []string
	for _, migration := range all {
		if migration > lastApplied {
			result = append(result, migration)
		}
	}
	return result
}

func applyMigration(db *sql.DB, name, sqlContent string) error {
	txn, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	statements := strings.Split(sqlContent, ";")

	for _, statement := range statements {
		trimmedStmt := strings.TrimSpace(statement)
		if trimmedStmt == "" {
			continue
		}

		if _, err := txn.Exec(trimmedStmt); err != nil {
			txn.Rollback()
			return fmt.Errorf("migration statement failed: %w\nStatement: %s", err, trimmedStmt)
		}
	}

	if _, err := txn.Exec("INSERT INTO migration (migration_name) VALUES (?)", name); err != nil {
		txn.Rollback()
		return fmt.Errorf("failed to record migration name: %w", err)
	}

	return txn.Commit()
}

// --- INIT END --- //

type MySQLStorage struct {
	db *sql.DB
}

func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db}
}

func (mySql *MySQLStorage) GetStorageType() string {
	return "MySQL"
}

func (mySql *MySQLStorage) SaveUser(ctx context.Context, user auth.User) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO user (id, username, fullname, hashed_password, email) VALUES (?, ?, ?, ?, ?);"
	_, err := mySql.db.Exec(query, user.ID, user.UserName, user.FullName, user.PasswordHashed, user.Email)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == 1062 {
				return appErrors.ErrorResponse{
					Code:    appErrors.ErrConflict,
					Message: "This username already taken.",
				}
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to save user Storage.SaveUser(), Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Registration failed, try again later.",
		}
	}
	return nil
}

func (mySql *MySQLStorage) ValidateUser(ctx context.Context, credentials auth.UserCredentialsPure) (auth.User, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, username, fullname, hashed_password, email FROM user WHERE username = ?;"
	row := mySql.db.QueryRow(query, credentials.UserName)
	var user auth.User
	err := row.Scan(&user.ID, &user.UserName, &user.FullName, &user.PasswordHashed, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Username or Password is incorrect",
			}
		}

		logging.Logger.Errorf("[TraceID=%s] | failed to scan user row in Storage.ValidateUser() function | Error : %v", traceID, err)
		return auth.User{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to validate user, try again later.",
		}
	}
	if !auth.ComparePasswords(user.PasswordHashed, credentials.PasswordPlain) {
		return auth.User{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Username or Password is incorrect",
		}
	}

	return user, nil
}

func (mySql *MySQLStorage) IsUserExists(ctx context.Context, username string) (bool, error) {
	query := "SELECT 1 FROM user WHERE username = ?;"

	var dummy int
	row := mySql.db.QueryRow(query, username)
	err := row.Scan(&dummy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		traceID := contextutil.TraceIDFromContext(ctx)
		logging.Logger.Errorf("[TraceID=%s] | failed to check user existance in Storage.IsUserExists() function |  Error: %v", traceID, err)
		return false, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to check user existance, try again later.",
		}
	}

	return true, nil
}

func (mySql *MySQLStorage) SaveSession(ctx context.Context, session auth.Session) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO session (id, token, created_at, expire_at, user_id) VALUES (?, ?, ?, ?, ?);"
	_, err := mySql.db.Exec(query, session.ID, session.Token, session.CreatedAt, session.ExpireAt, session.UserID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to save session in Storage.SaveSession() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to check session, try again later.",
		}
	}
	return nil
}

func (mySql *MySQLStorage) CheckSession(ctx context.Context, token string) (string, error) {
	query := `SELECT user_id, expire_at FROM session WHERE token = ?`

	var userID string
	var expireAt time.Time
	traceID := contextutil.TraceIDFromContext(ctx)

	err := mySql.db.QueryRow(query, token).Scan(&userID, &expireAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Session does not exist, please login.",
			}
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to check session existance in Storage.CheckSession() function | Error: %v", traceID, err)
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to check session, please try again later.",
		}
	}

	now := time.Now().UTC()
	if expireAt.Before(now) {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Your session expired, please login again.",
		}
	}

	return userID, nil
}

func (mySql *MySQLStorage) GetSessionByToken(ctx context.Context, token string) (auth.Session, error) {
	query := `SELECT id, token, created_at, expire_at, user_id FROM session WHERE token = ?`
	var dbS dbSession

	err := mySql.db.QueryRow(query, token).Scan(
		&dbS.ID,
		&dbS.Token,
		&dbS.CreatedAt,
		&dbS.ExpireAt,
		&dbS.UserID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Session{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Session does not exist, please login.",
			}
		}
		return auth.Session{}, err
	}

	return auth.Session{
		ID:        dbS.ID,
		Token:     dbS.Token,
		CreatedAt: dbS.CreatedAt,
		ExpireAt:  dbS.ExpireAt,
		UserID:    dbS.UserID,
	}, nil
}

func (mySql *MySQLStorage) UpdateSession(ctx context.Context, userId string, newExpireDate time.Time) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := `UPDATE session SET expire_at = ? WHERE user_id = ?`
	res, err := mySql.db.Exec(query, newExpireDate, userId)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to update session in Storage.UpdateSession() function | Error: %v", traceID, err)

		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to check session, please try again later.",
		}
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check affected rows in Storage.UpdateSession() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to check session, please try again later.",
		}
	}

	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Session does not exist, please login.",
		}
	}

	return nil
}

func (mySql *MySQLStorage) LogoutUser(ctx context.Context, userId string, token string) error {
	traceID := contextutil.TraceIDFromContext(ctx)
	query := "UPDATE session SET expire_at = UTC_TIMESTAMP() - INTERVAL 1 SECOND WHERE user_id = ? AND token = ?"

	_, err := mySql.db.Exec(query, userId, token)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to logout user in Storage.LogoutUser() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to logout, try again later.",
		}
	}

	return nil
}

func (mySql *MySQLStorage) SaveTransaction(ctx context.Context, t finance.Transaction) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO transaction (id, user_id, kind, amount, category_name, date, note, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);"
	_, err := mySql.db.Exec(query, t.ID, t.UserID, t.Kind, t.Amount, t.CategoryName, t.Date, t.Note, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to save transaction in Storage.SaveTransaction() function, | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to save transaction, try again later.",
		}
	}
	return nil
}

func (mySql *MySQLStorage) processTransactionRows(ctx context.Context, rows *sql.Rows) ([]finance.Transaction, error) {
	traceID := contextutil.TraceIDFromContext(ctx)
	defer rows.Close()

	var transactions []finance.Transaction

	for rows.Next() {
		var transaction finance.Transaction

		err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Kind, &transaction.Amount, &transaction.CategoryName, &transaction.Date, &transaction.Note, &transaction.CreatedAt, &transaction.UpdatedAt)
		if err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.processTransactionRows() | Error : %v", traceID, err)
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: "Failed to process transactions, try again later.",
			}
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.processTransactionRows() | Error : %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to process transactions, try again later.",
		}
	}

	return transactions, nil
}

func (mySql *MySQLStorage) GetFilteredTransactions(ctx context.Context, userID string, filters *finance.TransactionList) ([]finance.Transaction, error) {
	traceID := contextutil.TraceIDFromContext(ctx)
	query := "SELECT id, user_id, kind, amount, category_name, date, note, created_at, updated_at FROM transaction WHERE user_id = ?"
	args := []interface{}{userID}

	if filters.IsAllNil {
		query += " ORDER BY date DESC;"
		rows, err := mySql.db.Query(query, args...)
		if err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to get all transactions from Storage.GetFilteredTransactions() function | Error : %v", traceID, err)
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: "Failed to get transactions, try again later.",
			}
		}

		transactions, err := mySql.processTransactionRows(ctx, rows)
		if err != nil {
			return nil, err
		}

		return transactions, nil
	}

	if len(filters.CategoryNames) > 0 {
		query += " AND category_name IN (?" + strings.Repeat(",?", len(filters.CategoryNames)-1) + ")"
		for _, name := range filters.CategoryNames {
			args = append(args, name)
		}
	}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}

	if !filters.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filters.From)
	}

	if !filters.To.IsZero() {
		query += " AND date <= ?"
		args = append(args, filters.To)
	}

	query += " ORDER BY date DESC;"
	rows, err := mySql.db.Query(query, args...)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get filtered transactions from Storage.GetFilteredTransactions() function | Error : %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get transactions, try again later.",
		}
	}

	transactions, err := mySql.processTransactionRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (mySql *MySQLStorage) GetTransactionById(ctx context.Context, userID string, transactionId string) (finance.Transaction, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, user_id, kind, amount, category_name, date, note, created_at, updated_at FROM transaction WHERE user_id = ? AND id = ?;"
	row := mySql.db.QueryRow(query, userID, transactionId)
	var transaction finance.Transaction
	err := row.Scan(&transaction.ID, &transaction.UserID, &transaction.Kind, &transaction.Amount, &transaction.CategoryName, &transaction.Date, &transaction.Note, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return finance.Transaction{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrNotFound,
				Message: "Transaction not found.",
			}
		}

		logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.GetTransactionById() function | Error : %v", traceID, err)
		return finance.Transaction{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get transaction, try again later.",
		}
	}

	return transaction, nil
}

func (mySql *MySQLStorage) DeleteTransaction(ctx context.Context, userID string, transactionId string) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "DELETE FROM transaction WHERE user_id = ? AND id = ?;"
	result, err := mySql.db.Exec(query, userID, transactionId)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete transaction in Storage.DeleteTransaction() function | Error : %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete transaction, try again later.",
		}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check transaction delete status in Storage.DeleteTransaction() function | Error : %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete transaction, try again later.",
		}
	}
	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Transaction not found.",
		}
	}

	return nil
}

func (mySql *MySQLStorage) SaveCategory(ctx context.Context, category finance.Category) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO category (id, name, kind, color) VALUES (?, ?, ?, ?);"
	_, err := mySql.db.Exec(query, category.ID, category.Name, category.Kind, category.Color)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == 1062 {
				return appErrors.ErrorResponse{
					Code:    appErrors.ErrConflict,
					Message: "The category already exists.",
				}
			}
		}

		logging.Logger.Errorf("[TraceID=%s] | failed to save category in Storage.SaveCategory() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to save the category, try again later.",
		}
	}
	return nil
}

func (mySql *MySQLStorage) GetCategories(ctx context.Context, userID string) ([]finance.Category, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, name, kind, color FROM category ORDER BY name ASC;"
	rows, err := mySql.db.Query(query)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get categories in Storage.GetCategories() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get categories, try again later.",
		}
	}
	defer rows.Close()

	var categories []finance.Category
	for rows.Next() {
		var category finance.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Kind, &category.Color); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.GetCategories() function | Error: %v", traceID, err)
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: "Failed to get categories, try again later.",
			}
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.GetCategories() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get categories, try again later.",
		}
	}

	return categories, nil
}

func (mySql *MySQLStorage) SaveBudget(ctx context.Context, budget finance.Budget) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO budget (id, user_id, category_name, amount, period, start_date, end_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?);"
	_, err := mySql.db.Exec(query, budget.ID, budget.UserID, budget.CategoryName, budget.Amount, budget.Period, budget.StartDate, budget.EndDate, budget.CreatedAt)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == 1062 {
				return appErrors.ErrorResponse{
					Code:    appErrors.ErrConflict,
					Message: "A budget for this category and period already exists.",
				}
			}
		}

		logging.Logger.Errorf("[TraceID=%s] | failed to save budget in Storage.SaveBudget() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to save the budget, try again later.",
		}
	}
	return nil
}

func (mySql *MySQLStorage) GetBudgets(ctx context.Context, userID string) ([]finance.Budget, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, user_id, category_name, amount, period, start_date, end_date, created_at FROM budget WHERE user_id = ? ORDER BY created_at DESC;"
	rows, err := mySql.db.Query(query, userID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get budgets in Storage.GetBudgets() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get budgets, try again later.",
		}
	}
	defer rows.Close()

	var budgets []finance.Budget
	for rows.Next() {
		var budget finance.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryName, &budget.Amount, &budget.Period, &budget.StartDate, &budget.EndDate, &budget.CreatedAt); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.GetBudgets() function | Error: %v", traceID, err)
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: "Failed to get budgets, try again later.",
			}
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.GetBudgets() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get budgets, try again later.",
		}
	}

	return budgets, nil
}

func (mySql *MySQLStorage) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "DELETE FROM budget WHERE user_id = ? AND id = ?;"
	result, err := mySql.db.Exec(query, userID, budgetID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete budget in Storage.DeleteBudget() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete the budget, try again later.",
		}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check budget delete status in Storage.DeleteBudget() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete the budget, try again later.",
		}
	}
	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Budget not found.",
		}
	}

	return nil
}

func (mySql *MySQLStorage) SaveGoal(ctx context.Context, goal finance.Goal) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO goal (id, user_id, title, target_amount, current_amount, target_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);"
	_, err := mySql.db.Exec(query, goal.ID, goal.UserID, goal.Title, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Status, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to save goal in Storage.SaveGoal() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to save the goal, try again later.",
		}
	}
	return nil
}

func (mySql *MySQLStorage) GetGoals(ctx context.Context, userID string) ([]finance.Goal, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT id, user_id, title, target_amount, current_amount, target_date, status, created_at, updated_at FROM goal WHERE user_id = ? ORDER BY created_at DESC;"
	rows, err := mySql.db.Query(query, userID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get goals in Storage.GetGoals() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get goals, try again later.",
		}
	}
	defer rows.Close()

	var goals []finance.Goal
	for rows.Next() {
		var dbG dbGoal
		if err := rows.Scan(&dbG.ID, &dbG.UserID, &dbG.Title, &dbG.TargetAmount, &dbG.CurrentAmount, &dbG.TargetDate, &dbG.Status, &dbG.CreatedAt, &dbG.UpdatedAt); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.GetGoals() function | Error: %v", traceID, err)
			return nil, appErrors.ErrorResponse{
				Code:    appErrors.ErrInternal,
				Message: "Failed to get goals, try again later.",
			}
		}
		goals = append(goals, finance.Goal{
			ID:            dbG.ID,
			UserID:        dbG.UserID,
			Title:         dbG.Title,
			TargetAmount:  dbG.TargetAmount,
			CurrentAmount: dbG.CurrentAmount,
			TargetDate:    dbG.TargetDate,
			Status:        dbG.Status,
			CreatedAt:     dbG.CreatedAt,
			UpdatedAt:     dbG.UpdatedAt,
		})
	}

	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.GetGoals() function | Error: %v", traceID, err)
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to get goals, try again later.",
		}
	}

	return goals, nil
}

func (mySql *MySQLStorage) UpdateGoalProgress(ctx context.Context, userID string, goalID string, amount float64, updatedAt time.Time) (finance.Goal, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := `UPDATE goal
		SET current_amount = ?,
		    updated_at = ?,
		    status = IF(? >= target_amount AND status = ?, ?, status)
		WHERE user_id = ? AND id = ?;`
	result, err := mySql.db.Exec(query, amount, updatedAt, amount, finance.GoalActive, finance.GoalCompleted, userID, goalID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to update goal progress in Storage.UpdateGoalProgress() function | Error: %v", traceID, err)
		return finance.Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to update goal progress, try again later.",
		}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check goal update status in Storage.UpdateGoalProgress() function | Error: %v", traceID, err)
		return finance.Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to update goal progress, try again later.",
		}
	}
	if rowsAffected == 0 {
		return finance.Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Goal not found.",
		}
	}

	selectQuery := "SELECT id, user_id, title, target_amount, current_amount, target_date, status, created_at, updated_at FROM goal WHERE user_id = ? AND id = ?;"
	row := mySql.db.QueryRow(selectQuery, userID, goalID)

	var dbG dbGoal
	if err := row.Scan(&dbG.ID, &dbG.UserID, &dbG.Title, &dbG.TargetAmount, &dbG.CurrentAmount, &dbG.TargetDate, &dbG.Status, &dbG.CreatedAt, &dbG.UpdatedAt); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.UpdateGoalProgress() function | Error: %v", traceID, err)
		return finance.Goal{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to update goal progress, try again later.",
		}
	}

	return finance.Goal{
		ID:            dbG.ID,
		UserID:        dbG.UserID,
		Title:         dbG.Title,
		TargetAmount:  dbG.TargetAmount,
		CurrentAmount: dbG.CurrentAmount,
		TargetDate:    dbG.TargetDate,
		Status:        dbG.Status,
		CreatedAt:     dbG.CreatedAt,
		UpdatedAt:     dbG.UpdatedAt,
	}, nil
}

func (mySql *MySQLStorage) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "DELETE FROM goal WHERE user_id = ? AND id = ?;"
	result, err := mySql.db.Exec(query, userID, goalID)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to delete goal in Storage.DeleteGoal() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete the goal, try again later.",
		}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to check goal delete status in Storage.DeleteGoal() function | Error: %v", traceID, err)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to delete the goal, try again later.",
		}
	}
	if rowsAffected == 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Goal not found.",
		}
	}

	return nil
}
