package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/sirupsen/logrus"
)

// PostgresStore loads records from the customer360 schema
type PostgresStore struct {
	db  *sql.DB
	loc *time.Location
	log *logrus.Logger
}

// NewPostgresStore initializes a store over an open database
func NewPostgresStore(db *sql.DB, cfg *config.Config, log *logrus.Logger) (*PostgresStore, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, loc: loc, log: log}, nil
}

// LoadEvents reads all communication events
func (s *PostgresStore) LoadEvents(ctx context.Context) ([]models.CommunicationEvent, error) {
	query := `
		SELECT id, customer_id, lan, channel, direction, status, occurred_at,
		       resolution_time_seconds, csat_score, escalated, resolved, issue_type, message, template
		FROM customer360.communications
		ORDER BY occurred_at NULLS LAST, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return []models.CommunicationEvent{}, loadError("customer360.communications", err)
	}
	defer rows.Close()

	events := []models.CommunicationEvent{}
	for rows.Next() {
		var (
			e                                    models.CommunicationEvent
			lan, direction, issue, msg, template sql.NullString
			occurredAt                           sql.NullTime
			resolution, csat                     sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.CustomerID, &lan, &e.Channel, &direction, &e.Status, &occurredAt,
			&resolution, &csat, &e.Escalated, &e.Resolved, &issue, &msg, &template); err != nil {
			s.log.Warnf("Skipping malformed communication row: %v", err)
			continue
		}
		e.LAN = lan.String
		e.Channel = normalizeChannel(e.Channel)
		e.Direction = direction.String
		e.Status = normalizeStatus(e.Status)
		e.IssueType = issue.String
		e.Message = msg.String
		e.Template = template.String
		if occurredAt.Valid {
			e.Timestamp = occurredAt.Time.In(s.loc)
		}
		if resolution.Valid {
			v := resolution.Float64
			e.ResolutionTimeSeconds = &v
		}
		if csat.Valid {
			v := csat.Float64
			e.CSATScore = &v
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return []models.CommunicationEvent{}, loadError("customer360.communications", err)
	}
	return events, nil
}

// LoadLoans reads all loans
func (s *PostgresStore) LoadLoans(ctx context.Context) ([]models.Loan, error) {
	query := `
		SELECT customer_id, lan, type, zone, status, outstanding, emi, active
		FROM customer360.loans
		ORDER BY customer_id, lan`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return []models.Loan{}, loadError("customer360.loans", err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		var (
			l      models.Loan
			active sql.NullBool
		)
		if err := rows.Scan(&l.CustomerID, &l.LAN, &l.Type, &l.Zone, &l.Status,
			&l.OutstandingAmount, &l.ExpectedEMI, &active); err != nil {
			s.log.Warnf("Skipping malformed loan row: %v", err)
			continue
		}
		l.Active = !active.Valid || active.Bool
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return []models.Loan{}, loadError("customer360.loans", err)
	}
	return loans, nil
}

// LoadPayments reads all EMI payment records
func (s *PostgresStore) LoadPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	query := `
		SELECT customer_id, lan, due_date, payment_date, amount_due, amount_paid, status, payment_method
		FROM customer360.payments
		ORDER BY customer_id, lan, due_date, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return []models.PaymentRecord{}, loadError("customer360.payments", err)
	}
	defer rows.Close()

	payments := []models.PaymentRecord{}
	for rows.Next() {
		var (
			p           models.PaymentRecord
			paymentDate sql.NullTime
			amountDue   sql.NullFloat64
			method      sql.NullString
		)
		if err := rows.Scan(&p.CustomerID, &p.LAN, &p.DueDate, &paymentDate, &amountDue,
			&p.AmountPaid, &p.Status, &method); err != nil {
			s.log.Warnf("Skipping malformed payment row: %v", err)
			continue
		}
		p.DueDate = inLocation(p.DueDate, s.loc)
		if paymentDate.Valid {
			d := inLocation(paymentDate.Time, s.loc)
			p.PaymentDate = &d
		}
		if amountDue.Valid {
			v := amountDue.Float64
			p.AmountDue = &v
		}
		p.PaymentMethod = method.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return []models.PaymentRecord{}, loadError("customer360.payments", err)
	}
	return payments, nil
}

// LoadCustomers reads all customer profiles
func (s *PostgresStore) LoadCustomers(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT customer_id, name, ucic_id, mobile, email, pan, branch, risk
		FROM customer360.customers
		ORDER BY customer_id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return []models.Customer{}, loadError("customer360.customers", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var (
			c    models.Customer
			risk sql.NullString
		)
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.UCICID, &c.Mobile, &c.Email, &c.PAN, &c.Branch, &risk); err != nil {
			s.log.Warnf("Skipping malformed customer row: %v", err)
			continue
		}
		c.Risk = risk.String
		if c.Risk == "" {
			c.Risk = models.DefaultRisk
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return []models.Customer{}, loadError("customer360.customers", err)
	}
	return customers, nil
}

// inLocation keeps the calendar date of a DATE column in the configured zone
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
