package models

// TodaySummary bundles the dashboard KPI tiles computed over today's events
type TodaySummary struct {
	Date              string  `json:"date"` // Format: YYYY-MM-DD
	DeliveryRate      float64 `json:"delivery_rate"`
	FailedMessages    int     `json:"failed_messages"`
	ActiveEscalations int     `json:"active_escalations"`
	CSATScore         float64 `json:"csat_score"`
	AvgResolutionTime float64 `json:"avg_resolution_time"` // seconds
}

// ChannelPerformance represents volume and delivery statistics for one channel
type ChannelPerformance struct {
	Channel      string  `json:"channel"`
	Volume       int     `json:"volume"`
	DeliveryRate float64 `json:"delivery_rate"`
	AvgTime      float64 `json:"avg_time"`
}

// StatusCount is a count paired with its percent change against a baseline
type StatusCount struct {
	Count  int     `json:"count"`
	Change float64 `json:"change"`
}

// DeliveryStatus is the delivery donut: today's counts vs the six prior days
type DeliveryStatus struct {
	Delivered StatusCount `json:"delivered"`
	Failed    StatusCount `json:"failed"`
	Pending   StatusCount `json:"pending"`
}

// DailyVolume represents message volume for a calendar day
type DailyVolume struct {
	Date        string  `json:"date"` // Format: YYYY-MM-DD
	Sent        int     `json:"sent"`
	Delivered   int     `json:"delivered"`
	Failed      int     `json:"failed"`
	FailureRate float64 `json:"failure_rate"`
}

// VolumeTrends represents daily volume over a period
type VolumeTrends struct {
	Data             []DailyVolume `json:"data"`
	PeakHour         *string       `json:"peak_hour"`
	TotalSent        int           `json:"total_sent"`
	TotalDelivered   int           `json:"total_delivered"`
	TotalFailed      int           `json:"total_failed"`
	TotalFailureRate float64       `json:"total_failure_rate"`
	Note             string        `json:"note,omitempty"`
}

// TopCause is the most frequent issue type within a bucket
type TopCause struct {
	Type       *string `json:"type"`
	Percentage float64 `json:"percentage"`
}

// ResolutionBucket holds resolution statistics for one hour or day. Times are minutes.
type ResolutionBucket struct {
	Bucket        string   `json:"bucket"`
	AvgResolution float64  `json:"avg_resolution"`
	SLAMet        float64  `json:"sla_met"`
	Fastest       float64  `json:"fastest"`
	Slowest       float64  `json:"slowest"`
	Resolved      int      `json:"resolved"`
	TopCause      TopCause `json:"top_cause"`
}

// ResolutionTrend represents resolution time buckets plus the overall improvement
type ResolutionTrend struct {
	Data          []ResolutionBucket `json:"data"`
	Improvement   float64            `json:"improvement"`
	Note          string             `json:"note"`
	TotalResolved int                `json:"total_resolved"`
	OverallAvg    float64            `json:"overall_avg"`
}

// IssueSummary represents one row of the top issues table
type IssueSummary struct {
	IssueType      string  `json:"issue_type"`
	Volume         int     `json:"volume"`
	PrimaryChannel *string `json:"primary_channel"`
	PercentChange  float64 `json:"percent_change"`
}

// MonthlyEMI represents one month of the reconstructed payment ledger
type MonthlyEMI struct {
	Month         string  `json:"month"` // Format: YYYY-MM
	DueDate       *string `json:"due_date"`
	PaymentDate   *string `json:"payment_date"`
	PaymentMethod *string `json:"payment_method"`
	EMIAmount     float64 `json:"emi_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	Status        string  `json:"status"`
	Missed        bool    `json:"missed"`
}

// PaymentBehaviour represents the last six months of EMI status for a loan
type PaymentBehaviour struct {
	LastSixEMIs []MonthlyEMI `json:"last_6_emis"`
	MissedCount int          `json:"missed_count"`
	MissedNote  string       `json:"missed_note"`
}
