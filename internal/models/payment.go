package models

import "time"

// Payment statuses. Pending is only ever inferred, never stored.
const (
	PaymentPaid    = "Paid"
	PaymentMissed  = "Missed"
	PaymentPending = "Pending"
)

// PaymentRecord represents one scheduled EMI installment
type PaymentRecord struct {
	CustomerID    string     `json:"customer_id"`
	LAN           string     `json:"lan"`
	DueDate       time.Time  `json:"due_date"`
	PaymentDate   *time.Time `json:"payment_date"`
	AmountDue     *float64   `json:"amount_due,omitempty"`
	AmountPaid    float64    `json:"amount_paid"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}
