package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Dan9191/customer360/internal/analytics"
	"github.com/Dan9191/customer360/internal/models"
)

var (
	// ErrCustomerNotFound is returned when no customer matches the lookup
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrLoanNotFound is returned when the customer has no loan with the requested LAN
	ErrLoanNotFound = errors.New("loan not found")
)

// Pagination bounds for customer listings
const (
	DefaultCustomerLimit = 20
	MaxCustomerLimit     = 100
)

// Timeline filter types
const (
	FilterAll       = "ALL"
	FilterFailed    = "Failed"
	FilterDelivered = "Delivered"
)

var timelineFilters = []string{
	FilterAll,
	models.ChannelEmail,
	models.ChannelSMS,
	models.ChannelWhatsApp,
	models.ChannelPost,
	models.ChannelIVR,
	FilterFailed,
	FilterDelivered,
}

// CustomerQuery selects a page of customers. Search matches name, id, mobile, email or PAN.
type CustomerQuery struct {
	Search string
	Limit  int
	Offset int
}

// CustomerPage is one page of a customer listing
type CustomerPage struct {
	Customers []models.Customer `json:"customers"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// CustomerProfile is a customer with every loan they hold
type CustomerProfile struct {
	Customer   models.Customer `json:"customer"`
	Loans      []models.Loan   `json:"loans"`
	TotalLoans int             `json:"total_loans"`
}

// LoanPaymentBehaviour is the payment ledger of one loan
type LoanPaymentBehaviour struct {
	Customer         models.Customer         `json:"customer"`
	Loan             models.Loan             `json:"loan"`
	PaymentBehaviour models.PaymentBehaviour `json:"payment_behaviour"`
}

// DetailsQuery locates a customer by the first populated identifier and narrows the
// communication timeline by loan and filter type
type DetailsQuery struct {
	CustomerID string
	Name       string
	Mobile     string
	Email      string
	PAN        string
	LANs       []string
	FilterType string
}

// LoanTimeline is a loan with its communications
type LoanTimeline struct {
	models.Loan
	Communications []models.CommunicationEvent `json:"communications"`
}

// CustomerDetails is the communication timeline of a customer grouped per loan
type CustomerDetails struct {
	Customer            models.Customer `json:"customer"`
	Loans               []LoanTimeline  `json:"loans"`
	TotalCommunications int             `json:"total_communications"`
	FilteredByLAN       []string        `json:"filtered_by_lan"`
	FilterType          string          `json:"filter_type"`
}

// ListCustomers returns a page of customers matching q.Search
func (s *Service) ListCustomers(ctx context.Context, q CustomerQuery) (*CustomerPage, error) {
	if q.Limit == 0 {
		q.Limit = DefaultCustomerLimit
	}
	if q.Limit < 1 || q.Limit > MaxCustomerLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxCustomerLimit)
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}

	return calculate(s, "customer list", func() (*CustomerPage, error) {
		customers, err := s.records.LoadCustomers(ctx)
		if err != nil {
			return nil, err
		}

		search := strings.ToLower(strings.TrimSpace(q.Search))
		matched := make([]models.Customer, 0, len(customers))
		for _, c := range customers {
			if search == "" || customerMatches(c, search) {
				matched = append(matched, c)
			}
		}

		page := &CustomerPage{Customers: []models.Customer{}, Total: len(matched), Limit: q.Limit, Offset: q.Offset}
		if q.Offset < len(matched) {
			end := min(q.Offset+q.Limit, len(matched))
			page.Customers = matched[q.Offset:end]
		}
		s.log.Infof("Fetched %d customers (total: %d, search: %q)", len(page.Customers), page.Total, q.Search)
		return page, nil
	})
}

// CustomerByID returns a customer profile with all of their loans
func (s *Service) CustomerByID(ctx context.Context, customerID string) (*CustomerProfile, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", ErrInvalidInput)
	}

	profile, err := calculate(s, "customer profile", func() (*CustomerProfile, error) {
		customer, err := s.findCustomer(ctx, customerID)
		if err != nil || customer == nil {
			return nil, err
		}
		loans, err := s.records.LoadLoans(ctx)
		if err != nil {
			return nil, err
		}
		owned := loansOf(loans, customerID)
		return &CustomerProfile{Customer: *customer, Loans: owned, TotalLoans: len(owned)}, nil
	})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	s.log.Infof("Fetched customer %s with %d loans", customerID, profile.TotalLoans)
	return profile, nil
}

// PaymentBehaviour reconstructs the last six months of EMI payments of one loan
func (s *Service) PaymentBehaviour(ctx context.Context, customerID, lan string) (*LoanPaymentBehaviour, error) {
	customerID = strings.TrimSpace(customerID)
	lan = strings.TrimSpace(lan)
	if customerID == "" || lan == "" {
		return nil, fmt.Errorf("%w: customer_id and lan are required", ErrInvalidInput)
	}

	var notFound error
	result, err := calculate(s, "payment behaviour", func() (*LoanPaymentBehaviour, error) {
		customer, err := s.findCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			notFound = fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
			return nil, nil
		}

		loans, err := s.records.LoadLoans(ctx)
		if err != nil {
			return nil, err
		}
		var loan *models.Loan
		for _, l := range loansOf(loans, customerID) {
			if l.LAN == lan {
				loan = &l
				break
			}
		}
		if loan == nil {
			notFound = fmt.Errorf("%w: %s/%s", ErrLoanNotFound, customerID, lan)
			return nil, nil
		}

		payments, err := s.records.LoadPayments(ctx)
		if err != nil {
			return nil, err
		}
		return &LoanPaymentBehaviour{
			Customer:         *customer,
			Loan:             *loan,
			PaymentBehaviour: analytics.ReconstructPayments(*loan, payments, s.now()),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if notFound != nil {
		return nil, notFound
	}
	s.log.Infof("Fetched payment behaviour for customer %s, loan %s (missed: %d)",
		customerID, lan, result.PaymentBehaviour.MissedCount)
	return result, nil
}

// CustomerDetails returns the communication timeline of the first customer matching q
func (s *Service) CustomerDetails(ctx context.Context, q DetailsQuery) (*CustomerDetails, error) {
	if q.FilterType == "" {
		q.FilterType = FilterAll
	}
	if !isTimelineFilter(q.FilterType) {
		return nil, fmt.Errorf("%w: filter_type %q must be one of %v", ErrInvalidInput, q.FilterType, timelineFilters)
	}
	if q.CustomerID == "" && q.Name == "" && q.Mobile == "" && q.Email == "" && q.PAN == "" {
		return nil, fmt.Errorf("%w: one of customer_id, name, mobile, email or pan is required", ErrInvalidInput)
	}
	allowed := lanSet(q.LANs)

	details, err := calculate(s, "customer details", func() (*CustomerDetails, error) {
		customers, err := s.records.LoadCustomers(ctx)
		if err != nil {
			return nil, err
		}
		customer := lookupCustomer(customers, q)
		if customer == nil {
			return nil, nil
		}

		loans, err := s.records.LoadLoans(ctx)
		if err != nil {
			return nil, err
		}
		events, err := s.records.LoadEvents(ctx)
		if err != nil {
			return nil, err
		}

		comms := analytics.Select(events,
			analytics.WithCustomer(customer.CustomerID),
			withLANs(allowed),
			withTimelineFilter(q.FilterType),
		)
		byLAN := analytics.GroupBy(comms, func(e models.CommunicationEvent) string { return e.LAN })

		timeline := []LoanTimeline{}
		for _, loan := range loansOf(loans, customer.CustomerID) {
			if allowed != nil {
				if _, ok := allowed[loan.LAN]; !ok {
					continue
				}
			}
			entries := byLAN.Members[loan.LAN]
			if entries == nil {
				entries = []models.CommunicationEvent{}
			}
			timeline = append(timeline, LoanTimeline{Loan: loan, Communications: entries})
		}

		return &CustomerDetails{
			Customer:            *customer,
			Loans:               timeline,
			TotalCommunications: len(comms),
			FilteredByLAN:       sortedKeys(allowed),
			FilterType:          q.FilterType,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrCustomerNotFound
	}
	s.log.Infof("Fetched customer details for %s (loans: %d, communications: %d, filter: %s)",
		details.Customer.CustomerID, len(details.Loans), details.TotalCommunications, q.FilterType)
	return details, nil
}

// findCustomer returns nil without error when no customer has the id
func (s *Service) findCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	customers, err := s.records.LoadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].CustomerID == customerID {
			return &customers[i], nil
		}
	}
	return nil, nil
}

func customerMatches(c models.Customer, search string) bool {
	mobile := strings.ReplaceAll(c.Mobile, " ", "")
	for _, field := range []string{c.Name, c.CustomerID, mobile, c.Email, c.PAN} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// lookupCustomer returns the first customer matching any identifier in q. Id, PAN and
// mobile match exactly, name and email by case-insensitive substring.
func lookupCustomer(customers []models.Customer, q DetailsQuery) *models.Customer {
	id := strings.TrimSpace(q.CustomerID)
	pan := strings.TrimSpace(q.PAN)
	mobile := normalizeMobile(q.Mobile)
	name := strings.ToLower(strings.TrimSpace(q.Name))
	email := strings.ToLower(strings.TrimSpace(q.Email))

	for i := range customers {
		c := &customers[i]
		switch {
		case id != "" && c.CustomerID == id,
			pan != "" && c.PAN == pan,
			mobile != "" && normalizeMobile(c.Mobile) == mobile,
			name != "" && strings.Contains(strings.ToLower(c.Name), name),
			email != "" && strings.Contains(strings.ToLower(c.Email), email):
			return c
		}
	}
	return nil
}

func normalizeMobile(m string) string {
	m = strings.TrimSpace(m)
	m = strings.TrimPrefix(m, "+91")
	return strings.ReplaceAll(m, " ", "")
}

func loansOf(loans []models.Loan, customerID string) []models.Loan {
	owned := []models.Loan{}
	for _, l := range loans {
		if l.CustomerID == customerID {
			owned = append(owned, l)
		}
	}
	return owned
}

// lanSet returns nil when no LAN filter applies
func lanSet(lans []string) map[string]struct{} {
	var set map[string]struct{}
	for _, raw := range lans {
		for _, lan := range strings.Split(raw, ",") {
			if lan = strings.TrimSpace(lan); lan != "" {
				if set == nil {
					set = make(map[string]struct{})
				}
				set[lan] = struct{}{}
			}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	if set == nil {
		return []string{FilterAll}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func withLANs(allowed map[string]struct{}) analytics.Predicate {
	return func(e models.CommunicationEvent) bool {
		if allowed == nil {
			return true
		}
		_, ok := allowed[e.LAN]
		return ok
	}
}

// withTimelineFilter matches filterType against the channel or, case-insensitively, the status
func withTimelineFilter(filterType string) analytics.Predicate {
	return func(e models.CommunicationEvent) bool {
		return filterType == FilterAll || e.Channel == filterType || strings.EqualFold(e.Status, filterType)
	}
}

func isTimelineFilter(filterType string) bool {
	for _, f := range timelineFilters {
		if f == filterType {
			return true
		}
	}
	return false
}
