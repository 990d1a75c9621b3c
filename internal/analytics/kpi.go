package analytics

import (
	"time"

	"github.com/Dan9191/customer360/internal/models"
)

// DeliveryRate returns delivered/total*100 over the given events
func DeliveryRate(events []models.CommunicationEvent) float64 {
	return Rate(countStatus(events, models.StatusDelivered), len(events))
}

// FailedMessages counts events with FAILED status
func FailedMessages(events []models.CommunicationEvent) int {
	return countStatus(events, models.StatusFailed)
}

// ActiveEscalations counts escalated events that are not yet resolved
func ActiveEscalations(events []models.CommunicationEvent) int {
	n := 0
	for _, e := range events {
		if e.Escalated && !e.Resolved {
			n++
		}
	}
	return n
}

// CSATScore returns the mean of present CSAT scores
func CSATScore(events []models.CommunicationEvent) float64 {
	var scores []float64
	for _, e := range events {
		if e.CSATScore != nil {
			scores = append(scores, *e.CSATScore)
		}
	}
	return Round1(mean(scores))
}

// AvgResolutionTime returns the mean resolution time in seconds of resolved events
func AvgResolutionTime(events []models.CommunicationEvent) float64 {
	var times []float64
	for _, e := range events {
		if e.Resolved && e.ResolutionTimeSeconds != nil {
			times = append(times, *e.ResolutionTimeSeconds)
		}
	}
	return Round1(mean(times))
}

// Today computes every dashboard tile over the events of now's calendar day
func Today(events []models.CommunicationEvent, now time.Time) models.TodaySummary {
	w := dayRange(now, 1)
	today := Filter(events, w)
	return models.TodaySummary{
		Date:              w.Start.Format("2006-01-02"),
		DeliveryRate:      DeliveryRate(today),
		FailedMessages:    FailedMessages(today),
		ActiveEscalations: ActiveEscalations(today),
		CSATScore:         CSATScore(today),
		AvgResolutionTime: AvgResolutionTime(today),
	}
}

func countStatus(events []models.CommunicationEvent, status string) int {
	n := 0
	for _, e := range events {
		if e.Status == status {
			n++
		}
	}
	return n
}
