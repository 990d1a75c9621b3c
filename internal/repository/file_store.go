package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/sirupsen/logrus"
)

// FileStore loads records from JSON files under the configured data directory.
// The events file may also be an XML feed.
type FileStore struct {
	cfg  *config.Config
	loc  *time.Location
	log  *logrus.Logger
	feed Feed
}

// Feed supplies a remote XML events feed
type Feed interface {
	Source() string
	Fetch(ctx context.Context) ([]byte, error)
}

// NewFileStore initializes a store reading from cfg.DataDir
func NewFileStore(cfg *config.Config, log *logrus.Logger) (*FileStore, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &FileStore{cfg: cfg, loc: loc, log: log}, nil
}

// WithFeed makes LoadEvents read the remote feed instead of EventsFile
func (s *FileStore) WithFeed(f Feed) *FileStore {
	s.feed = f
	return s
}

// LoadEvents reads the communication events feed
func (s *FileStore) LoadEvents(ctx context.Context) ([]models.CommunicationEvent, error) {
	if s.feed != nil {
		body, err := s.feed.Fetch(ctx)
		if err != nil {
			return []models.CommunicationEvent{}, loadError(s.feed.Source(), err)
		}
		return s.decodeXMLEvents(s.feed.Source(), body)
	}

	path := s.cfg.DataPath(s.cfg.EventsFile)
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return s.loadXMLEvents(path)
	}

	items, err := s.readList(path)
	if err != nil || items == nil {
		return []models.CommunicationEvent{}, err
	}
	events := make([]models.CommunicationEvent, 0, len(items))
	for i, item := range items {
		var raw rawEvent
		if err := json.Unmarshal(item, &raw); err != nil {
			s.log.Warnf("Skipping malformed event #%d in %s: %v", i, path, err)
			continue
		}
		e := raw.toEvent(s.loc)
		if !e.HasTimestamp() {
			s.log.Debugf("Event %s in %s has no usable datetime", e.ID, path)
		}
		events = append(events, e)
	}
	s.log.Debugf("Loaded %d events from %s", len(events), path)
	return events, nil
}

// LoadLoans reads the loan ledger
func (s *FileStore) LoadLoans(ctx context.Context) ([]models.Loan, error) {
	path := s.cfg.DataPath(s.cfg.LoansFile)
	items, err := s.readList(path)
	if err != nil || items == nil {
		return []models.Loan{}, err
	}
	loans := make([]models.Loan, 0, len(items))
	for i, item := range items {
		var raw rawLoan
		if err := json.Unmarshal(item, &raw); err != nil {
			s.log.Warnf("Skipping malformed loan #%d in %s: %v", i, path, err)
			continue
		}
		loan, err := raw.toLoan()
		if err != nil {
			s.log.Warnf("Skipping loan #%d in %s: %v", i, path, err)
			continue
		}
		loans = append(loans, loan)
	}
	return loans, nil
}

// LoadPayments reads the EMI payment records
func (s *FileStore) LoadPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	path := s.cfg.DataPath(s.cfg.PaymentsFile)
	items, err := s.readList(path)
	if err != nil || items == nil {
		return []models.PaymentRecord{}, err
	}
	payments := make([]models.PaymentRecord, 0, len(items))
	for i, item := range items {
		var raw rawPayment
		if err := json.Unmarshal(item, &raw); err != nil {
			s.log.Warnf("Skipping malformed payment #%d in %s: %v", i, path, err)
			continue
		}
		p, err := raw.toPayment(s.loc)
		if err != nil {
			s.log.Warnf("Skipping payment #%d in %s: %v", i, path, err)
			continue
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// LoadCustomers reads customer profiles
func (s *FileStore) LoadCustomers(ctx context.Context) ([]models.Customer, error) {
	path := s.cfg.DataPath(s.cfg.CustomersFile)
	items, err := s.readList(path)
	if err != nil || items == nil {
		return []models.Customer{}, err
	}
	customers := make([]models.Customer, 0, len(items))
	for i, item := range items {
		var raw rawCustomer
		if err := json.Unmarshal(item, &raw); err != nil {
			s.log.Warnf("Skipping malformed customer #%d in %s: %v", i, path, err)
			continue
		}
		c, err := raw.toCustomer()
		if err != nil {
			s.log.Warnf("Skipping customer #%d in %s: %v", i, path, err)
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// readList reads a JSON array of records. A missing file yields nil items and no error.
func (s *FileStore) readList(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warnf("Data file not found: %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, loadError(path, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, loadError(path, fmt.Errorf("failed to decode record list: %w", err))
	}
	return items, nil
}
