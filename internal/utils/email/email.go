package email

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/customer360/internal/config"
	"github.com/Dan9191/customer360/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// ErrNoRecipients is returned when a digest has nobody to go to
var ErrNoRecipients = errors.New("no digest recipients")

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDailyDigest mails today's KPI tiles to the operations team
func (s *Sender) SendDailyDigest(recipients []string, summary models.TodaySummary) error {
	e, err := s.digestEmail(recipients, summary)
	if err != nil {
		return err
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", strings.Join(e.To, ", "), err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(e.To, ", "), e.Subject)
	return nil
}

func (s *Sender) digestEmail(recipients []string, summary models.TodaySummary) (*email.Email, error) {
	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = to
	e.Subject = fmt.Sprintf("Customer 360 daily digest for %s", summary.Date)
	e.Text = []byte(DigestBody(summary))
	return e, nil
}

// DigestBody renders the plain text digest
func DigestBody(summary models.TodaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Communication KPIs for %s\n\n", summary.Date)
	fmt.Fprintf(&b, "Delivery rate:           %.1f%%\n", summary.DeliveryRate)
	fmt.Fprintf(&b, "Failed messages:         %d\n", summary.FailedMessages)
	fmt.Fprintf(&b, "Active escalations:      %d\n", summary.ActiveEscalations)
	fmt.Fprintf(&b, "CSAT score:              %.1f\n", summary.CSATScore)
	fmt.Fprintf(&b, "Avg resolution time:     %.1f s\n", summary.AvgResolutionTime)
	b.WriteString("\nBest regards,\nCustomer 360")
	return b.String()
}
