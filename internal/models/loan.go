package models

// Loan represents one credit account of a customer
type Loan struct {
	CustomerID        string  `json:"customer_id"`
	LAN               string  `json:"lan"`
	Type              string  `json:"type"`
	Zone              string  `json:"zone"`
	Status            string  `json:"status"`
	OutstandingAmount float64 `json:"outstanding"`
	ExpectedEMI       float64 `json:"emi"`
	Active            bool    `json:"active"`
}
