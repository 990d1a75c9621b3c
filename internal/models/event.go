package models

import "time"

// Communication channels
const (
	ChannelSMS      = "SMS"
	ChannelEmail    = "Email"
	ChannelWhatsApp = "WhatsApp"
	ChannelPost     = "Post"
	ChannelIVR      = "IVR"
)

// Communication event statuses
const (
	StatusSent      = "SENT"
	StatusDelivered = "DELIVERED"
	StatusFailed    = "FAILED"
	StatusPending   = "PENDING"
	StatusResolved  = "RESOLVED"
)

// Channels lists every supported communication channel
var Channels = []string{ChannelSMS, ChannelEmail, ChannelWhatsApp, ChannelPost, ChannelIVR}

// CommunicationEvent represents one outbound or inbound customer message.
// A zero Timestamp means the source value was missing or unparseable.
type CommunicationEvent struct {
	ID                    string    `json:"id"`
	CustomerID            string    `json:"customer_id"`
	LAN                   string    `json:"lan,omitempty"`
	Channel               string    `json:"channel"`
	Direction             string    `json:"direction"`
	Status                string    `json:"status"`
	Timestamp             time.Time `json:"datetime"`
	ResolutionTimeSeconds *float64  `json:"resolution_time_seconds,omitempty"`
	CSATScore             *float64  `json:"csat_score,omitempty"`
	Escalated             bool      `json:"escalated"`
	Resolved              bool      `json:"resolved"`
	IssueType             string    `json:"issue_type,omitempty"`
	Message               string    `json:"message,omitempty"`
	Template              string    `json:"template,omitempty"`
	SentTime              string    `json:"sent_time,omitempty"`
	DeliveredTime         string    `json:"delivered_time,omitempty"`
}

// HasTimestamp reports whether the event carries a usable timestamp
func (e CommunicationEvent) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

// IsChannel reports whether ch is one of the supported channels
func IsChannel(ch string) bool {
	for _, c := range Channels {
		if c == ch {
			return true
		}
	}
	return false
}
