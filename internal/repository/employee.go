package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/customer360/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrEmployeeNotFound is returned when no employee matches the lookup
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("employee email already exists")
)

// unique_violation
const pqUniqueViolation = "23505"

// Repository provides employee database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateEmployee creates a new employee in the database
func (r *Repository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO customer360.employees (email, password_hash, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, employee.Email, employee.PasswordHash).
		Scan(&employee.ID, &employee.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// FindEmployeeByEmail retrieves an employee by email
func (r *Repository) FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	employee := &models.Employee{}
	query := `
		SELECT id, email, password_hash, created_at
		FROM customer360.employees
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&employee.ID, &employee.Email, &employee.PasswordHash, &employee.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}
