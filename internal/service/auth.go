package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/customer360/internal/auth"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/Dan9191/customer360/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmployeeExists is returned when registering an email twice
	ErrEmployeeExists = errors.New("employee already exists")
)

// Register creates a new employee with hashed password
func (s *Service) Register(ctx context.Context, email, password string) (*models.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &models.Employee{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.employees.CreateEmployee(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.log.Warnf("Employee already registered: %s", email)
			return nil, fmt.Errorf("%w: %s", ErrEmployeeExists, email)
		}
		return nil, err
	}

	s.log.Infof("Employee registered: %s", employee.Email)
	return employee, nil
}

// Login authenticates an employee and returns a JWT access token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	employee, err := s.employees.FindEmployeeByEmail(ctx, email)
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		s.log.Warnf("Authentication failed, employee not found: %s", email)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		s.log.Warnf("Authentication failed, invalid password for %s", email)
		return "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.config.JWTSecret, employee.Email, employee.ID, s.config.TokenTTL(), s.now())
	if err != nil {
		return "", err
	}

	s.log.Infof("Employee logged in: %s", employee.Email)
	return token, nil
}

// CurrentEmployee returns the employee behind an authenticated request
func (s *Service) CurrentEmployee(ctx context.Context, email string) (*models.Employee, error) {
	employee, err := s.employees.FindEmployeeByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return employee, nil
}
