package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/customer360/internal/analytics"
	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInput marks requests rejected before any calculation runs
var ErrInvalidInput = errors.New("invalid input")

// RecordStore loads the records every calculation works from
type RecordStore interface {
	LoadEvents(ctx context.Context) ([]models.CommunicationEvent, error)
	LoadLoans(ctx context.Context) ([]models.Loan, error)
	LoadPayments(ctx context.Context) ([]models.PaymentRecord, error)
	LoadCustomers(ctx context.Context) ([]models.Customer, error)
}

// EmployeeStore persists dashboard operators
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
}

// Service handles business logic
type Service struct {
	records   RecordStore
	employees EmployeeStore
	log       *logrus.Logger
	config    *config.Config
	now       func() time.Time
}

// NewService initializes a new service. The clock reads wall time in the configured timezone.
func NewService(records RecordStore, employees EmployeeStore, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Service{
		records:   records,
		employees: employees,
		log:       log,
		config:    cfg,
		now:       func() time.Time { return time.Now().In(loc) },
	}, nil
}

// WithClock replaces the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// calculate runs fn and turns any failure, a panic included, into a CalculationError
// so callers never see partial results
func calculate[T any](s *Service, op string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Panic while calculating %s: %v", op, r)
			var zero T
			result, err = zero, analytics.NewCalculationError(op, fmt.Errorf("panic: %v", r))
		}
	}()

	result, err = fn()
	if err != nil {
		s.log.Errorf("Failed to calculate %s: %v", op, err)
		var zero T
		return zero, analytics.NewCalculationError(op, err)
	}
	return result, nil
}

// bestEffortEvents loads events for KPIs that degrade to empty results when the
// source cannot be read
func (s *Service) bestEffortEvents(ctx context.Context, op string) ([]models.CommunicationEvent, error) {
	events, err := s.records.LoadEvents(ctx)
	if errors.Is(err, analytics.ErrDataLoad) {
		s.log.Warnf("Calculating %s without events: %v", op, err)
		return []models.CommunicationEvent{}, nil
	}
	if err != nil {
		return nil, err
	}
	return events, nil
}
