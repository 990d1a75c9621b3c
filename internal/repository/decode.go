package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/customer360/internal/analytics"
	"github.com/Dan9191/customer360/internal/models"
)

// timestamp layouts accepted by the decoders, zone-aware first
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime parses s in one of timeLayouts. Values without a zone are read in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// flexString accepts both JSON strings and numbers
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

type rawEvent struct {
	ID                    flexString `json:"id"`
	CustomerID            flexString `json:"customer_id"`
	LAN                   flexString `json:"lan"`
	Channel               string     `json:"channel"`
	Type                  string     `json:"type"`
	Status                string     `json:"status"`
	Datetime              string     `json:"datetime"`
	ResolutionTimeSeconds *float64   `json:"resolution_time_seconds"`
	CSATScore             *float64   `json:"csat_score"`
	Escalated             bool       `json:"escalated"`
	Resolved              bool       `json:"resolved"`
	IssueType             *string    `json:"issue_type"`
	Message               string     `json:"message"`
	Template              string     `json:"template"`
	SentTime              string     `json:"sent_time"`
	DeliveredTime         string     `json:"delivered_time"`
}

type rawLoan struct {
	CustomerID  flexString `json:"customer_id"`
	LAN         flexString `json:"lan"`
	Type        string     `json:"type"`
	Zone        string     `json:"zone"`
	Status      string     `json:"status"`
	Outstanding float64    `json:"outstanding"`
	EMI         float64    `json:"emi"`
	Active      *bool      `json:"active"`
}

type rawPayment struct {
	CustomerID    flexString `json:"customer_id"`
	LAN           flexString `json:"lan"`
	DueDate       string     `json:"due_date"`
	PaymentDate   *string    `json:"payment_date"`
	AmountDue     *float64   `json:"amount_due"`
	AmountPaid    float64    `json:"amount_paid"`
	Status        string     `json:"status"`
	PaymentMethod *string    `json:"payment_method"`
}

type rawCustomer struct {
	CustomerID flexString `json:"customer_id"`
	Name       string     `json:"name"`
	UCICID     flexString `json:"ucic_id"`
	Mobile     flexString `json:"mobile"`
	Email      string     `json:"email"`
	PAN        string     `json:"pan"`
	Branch     string     `json:"branch"`
	Risk       string     `json:"risk"`
}

// toEvent applies defaults and normalization. An unparseable datetime leaves
// Timestamp zero so the filter drops the event from windowed calculations.
func (r rawEvent) toEvent(loc *time.Location) models.CommunicationEvent {
	e := models.CommunicationEvent{
		ID:                    trim(r.ID),
		CustomerID:            trim(r.CustomerID),
		LAN:                   trim(r.LAN),
		Channel:               normalizeChannel(r.Channel),
		Direction:             strings.TrimSpace(r.Type),
		Status:                normalizeStatus(r.Status),
		ResolutionTimeSeconds: r.ResolutionTimeSeconds,
		CSATScore:             r.CSATScore,
		Escalated:             r.Escalated,
		Resolved:              r.Resolved,
		Message:               r.Message,
		Template:              r.Template,
		SentTime:              r.SentTime,
		DeliveredTime:         r.DeliveredTime,
	}
	if r.IssueType != nil {
		e.IssueType = strings.TrimSpace(*r.IssueType)
	}
	if ts, err := parseTime(r.Datetime, loc); err == nil {
		e.Timestamp = ts
	}
	return e
}

func (r rawLoan) toLoan() (models.Loan, error) {
	l := models.Loan{
		CustomerID:        trim(r.CustomerID),
		LAN:               trim(r.LAN),
		Type:              strings.TrimSpace(r.Type),
		Zone:              strings.TrimSpace(r.Zone),
		Status:            strings.TrimSpace(r.Status),
		OutstandingAmount: r.Outstanding,
		ExpectedEMI:       r.EMI,
		Active:            true,
	}
	if r.Active != nil {
		l.Active = *r.Active
	}
	if l.CustomerID == "" || l.LAN == "" {
		return models.Loan{}, fmt.Errorf("loan requires customer_id and lan")
	}
	return l, nil
}

func (r rawPayment) toPayment(loc *time.Location) (models.PaymentRecord, error) {
	due, err := parseTime(r.DueDate, loc)
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("invalid due_date: %w", err)
	}
	p := models.PaymentRecord{
		CustomerID: trim(r.CustomerID),
		LAN:        trim(r.LAN),
		DueDate:    due,
		AmountDue:  r.AmountDue,
		AmountPaid: r.AmountPaid,
		Status:     strings.TrimSpace(r.Status),
	}
	if r.PaymentDate != nil && strings.TrimSpace(*r.PaymentDate) != "" {
		paid, err := parseTime(*r.PaymentDate, loc)
		if err != nil {
			return models.PaymentRecord{}, fmt.Errorf("invalid payment_date: %w", err)
		}
		p.PaymentDate = &paid
	}
	if r.PaymentMethod != nil {
		p.PaymentMethod = strings.TrimSpace(*r.PaymentMethod)
	}
	return p, nil
}

func (r rawCustomer) toCustomer() (models.Customer, error) {
	c := models.Customer{
		CustomerID: trim(r.CustomerID),
		Name:       strings.TrimSpace(r.Name),
		UCICID:     trim(r.UCICID),
		Mobile:     trim(r.Mobile),
		Email:      strings.TrimSpace(r.Email),
		PAN:        strings.TrimSpace(r.PAN),
		Branch:     strings.TrimSpace(r.Branch),
		Risk:       strings.TrimSpace(r.Risk),
	}
	if c.CustomerID == "" {
		return models.Customer{}, fmt.Errorf("customer requires customer_id")
	}
	if c.Risk == "" {
		c.Risk = models.DefaultRisk
	}
	return c, nil
}

// normalizeChannel maps a channel name onto its canonical spelling
func normalizeChannel(ch string) string {
	ch = strings.TrimSpace(ch)
	for _, c := range models.Channels {
		if strings.EqualFold(c, ch) {
			return c
		}
	}
	return ch
}

func normalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

func trim(f flexString) string {
	return strings.TrimSpace(string(f))
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// loadError marks err as a data load failure for the named source
func loadError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", analytics.ErrDataLoad, source, err)
}
