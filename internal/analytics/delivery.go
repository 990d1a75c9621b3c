package analytics

import (
	"time"

	"github.com/Dan9191/customer360/internal/models"
)

// priorDays is the baseline length of the delivery status comparison
const priorDays = 6

// DeliveryStatus counts today's delivered, failed and pending events and compares each
// with the six calendar days before today
func DeliveryStatus(events []models.CommunicationEvent, now time.Time) models.DeliveryStatus {
	today := dayRange(now, 1)
	prior := DaysBefore(today, priorDays)

	current := Filter(events, today)
	previous := Filter(events, prior)

	status := func(s string) models.StatusCount {
		curr := countStatus(current, s)
		return models.StatusCount{
			Count:  curr,
			Change: PercentChange(float64(curr), float64(countStatus(previous, s))),
		}
	}

	return models.DeliveryStatus{
		Delivered: status(models.StatusDelivered),
		Failed:    status(models.StatusFailed),
		Pending:   status(models.StatusPending),
	}
}
