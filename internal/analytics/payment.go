package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/customer360/internal/models"
)

// ledgerMonths is the length of the reconstructed payment ledger
const ledgerMonths = 6

// ReconstructPayments builds the last six calendar months (oldest first) of EMI status for
// one loan. Months without a payment record are inferred as Missed when they precede the
// current month and Pending for the current month.
func ReconstructPayments(loan models.Loan, payments []models.PaymentRecord, now time.Time) models.PaymentBehaviour {
	var relevant []models.PaymentRecord
	for _, p := range payments {
		if p.CustomerID == loan.CustomerID && p.LAN == loan.LAN && !p.DueDate.IsZero() {
			relevant = append(relevant, p)
		}
	}

	currentMonth := monthStart(now, 0)
	ledger := make([]models.MonthlyEMI, ledgerMonths)
	missed := 0
	for i := 0; i < ledgerMonths; i++ {
		month := monthStart(now, -i)
		entry := monthEntry(month, currentMonth, loan.ExpectedEMI, findByDueMonth(relevant, month))
		if entry.Missed {
			missed++
		}
		ledger[ledgerMonths-1-i] = entry
	}

	return models.PaymentBehaviour{
		LastSixEMIs: ledger,
		MissedCount: missed,
		MissedNote:  missedNote(missed),
	}
}

func monthEntry(month, currentMonth time.Time, expectedEMI float64, record *models.PaymentRecord) models.MonthlyEMI {
	entry := models.MonthlyEMI{Month: month.Format("2006-01")}

	if record == nil {
		entry.EMIAmount = expectedEMI
		if month.Before(currentMonth) {
			entry.Status = models.PaymentMissed
		} else {
			entry.Status = models.PaymentPending
		}
		entry.Missed = entry.Status == models.PaymentMissed
		return entry
	}

	// The status field is authoritative, a Missed record may still carry a payment date.
	entry.Status = strings.TrimSpace(record.Status)
	entry.Missed = entry.Status == models.PaymentMissed
	entry.PaidAmount = record.AmountPaid
	entry.EMIAmount = expectedEMI
	if record.AmountDue != nil {
		entry.EMIAmount = *record.AmountDue
	}

	due := record.DueDate.Format("2006-01-02")
	entry.DueDate = &due
	if record.PaymentDate != nil {
		paid := record.PaymentDate.Format("2006-01-02")
		entry.PaymentDate = &paid
	}
	if record.PaymentMethod != "" {
		method := record.PaymentMethod
		entry.PaymentMethod = &method
	}
	return entry
}

// findByDueMonth returns the first record whose due date falls in month
func findByDueMonth(payments []models.PaymentRecord, month time.Time) *models.PaymentRecord {
	for i := range payments {
		due := payments[i].DueDate
		if due.Year() == month.Year() && due.Month() == month.Month() {
			return &payments[i]
		}
	}
	return nil
}

func missedNote(n int) string {
	if n == 1 {
		return "1 missed payment in last 6 months"
	}
	return fmt.Sprintf("%d missed payments in last 6 months", n)
}
