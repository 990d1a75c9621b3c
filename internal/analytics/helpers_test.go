package analytics

import (
	"time"

	"github.com/Dan9191/customer360/internal/models"
)

var now = time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

func at(daysAgo, hour int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func event(channel, status string, ts time.Time) models.CommunicationEvent {
	return models.CommunicationEvent{Channel: channel, Status: status, Timestamp: ts}
}
