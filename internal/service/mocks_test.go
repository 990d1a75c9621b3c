package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) LoadEvents(ctx context.Context) ([]models.CommunicationEvent, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]models.CommunicationEvent)
	return events, args.Error(1)
}

func (m *mockRecordStore) LoadLoans(ctx context.Context) ([]models.Loan, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]models.Loan)
	return loans, args.Error(1)
}

func (m *mockRecordStore) LoadPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	args := m.Called(ctx)
	payments, _ := args.Get(0).([]models.PaymentRecord)
	return payments, args.Error(1)
}

func (m *mockRecordStore) LoadCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	customers, _ := args.Get(0).([]models.Customer)
	return customers, args.Error(1)
}

type mockEmployeeStore struct {
	mock.Mock
}

func (m *mockEmployeeStore) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *mockEmployeeStore) FindEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error) {
	args := m.Called(ctx, email)
	employee, _ := args.Get(0).(*models.Employee)
	return employee, args.Error(1)
}

func newTestService(t *testing.T, records RecordStore, employees EmployeeStore) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.Defaults()
	cfg.Timezone = "UTC"
	svc, err := NewService(records, employees, log, cfg)
	require.NoError(t, err)
	return svc.WithClock(func() time.Time { return now })
}

func hoursAgo(h int) time.Time {
	return now.Add(-time.Duration(h) * time.Hour)
}

func fixtureEvents() []models.CommunicationEvent {
	return []models.CommunicationEvent{
		{ID: "E1", CustomerID: "CUST1", LAN: "LAN1", Channel: models.ChannelSMS, Status: models.StatusDelivered, Timestamp: hoursAgo(1)},
		{ID: "E2", CustomerID: "CUST1", LAN: "LAN1", Channel: models.ChannelEmail, Status: models.StatusFailed, Timestamp: hoursAgo(2)},
		{ID: "E3", CustomerID: "CUST1", LAN: "LAN2", Channel: models.ChannelWhatsApp, Status: models.StatusDelivered, Timestamp: hoursAgo(3), Escalated: true},
		{ID: "E4", CustomerID: "CUST2", LAN: "LAN9", Channel: models.ChannelSMS, Status: models.StatusSent, Timestamp: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)},
	}
}

func fixtureCustomers() []models.Customer {
	return []models.Customer{
		{CustomerID: "CUST1", Name: "Asha Rao", Mobile: "+91 98765 43210", Email: "asha@example.com", PAN: "ABCDE1234F", Risk: "Low"},
		{CustomerID: "CUST2", Name: "Ravi Iyer", Mobile: "9123456780", Email: "ravi@example.com", PAN: "PQRSX9876Z", Risk: "High"},
		{CustomerID: "CUST3", Name: "Asha Menon", Mobile: "9000000001", Email: "menon@example.com", PAN: "LMNOP4321Q", Risk: "Low"},
	}
}

func fixtureLoans() []models.Loan {
	return []models.Loan{
		{CustomerID: "CUST1", LAN: "LAN1", Type: "Home", ExpectedEMI: 1200, Active: true},
		{CustomerID: "CUST1", LAN: "LAN2", Type: "Auto", ExpectedEMI: 800, Active: true},
		{CustomerID: "CUST2", LAN: "LAN9", Type: "Personal", ExpectedEMI: 500, Active: true},
	}
}
