package models

// DefaultRisk is assigned to customers without a risk classification
const DefaultRisk = "Low"

// Customer represents a borrower profile
type Customer struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	UCICID     string `json:"ucic_id"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	PAN        string `json:"pan"`
	Branch     string `json:"branch"`
	Risk       string `json:"risk"`
}
