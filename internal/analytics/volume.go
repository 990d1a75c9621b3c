package analytics

import (
	"fmt"

	"github.com/Dan9191/customer360/internal/models"
)

const (
	noteNoData     = "No data available"
	noteNoMessages = "No messages in period"
)

// VolumeTrends reports per-day sent, delivered and failed counts inside w, restricted to the
// channel allow-list when one is given, plus the busiest hour of day across the selection
func VolumeTrends(events []models.CommunicationEvent, w Window, channels []string) models.VolumeTrends {
	if len(events) == 0 {
		return models.VolumeTrends{Data: []models.DailyVolume{}, Note: noteNoData}
	}

	filtered := Filter(events, w, WithChannels(channels...))
	if len(filtered) == 0 {
		return models.VolumeTrends{Data: []models.DailyVolume{}, Note: noteNoMessages}
	}

	days := BucketByCalendarUnit(filtered, CalendarDay)
	result := models.VolumeTrends{Data: make([]models.DailyVolume, 0, len(days))}
	for _, day := range SortedLabels(days) {
		members := days[day]
		delivered := countStatus(members, models.StatusDelivered)
		failed := countStatus(members, models.StatusFailed)
		result.Data = append(result.Data, models.DailyVolume{
			Date:        day,
			Sent:        len(members),
			Delivered:   delivered,
			Failed:      failed,
			FailureRate: Rate(failed, len(members)),
		})
		result.TotalSent += len(members)
		result.TotalDelivered += delivered
		result.TotalFailed += failed
	}
	// Every message not delivered counts against the period, pending and sent included
	result.TotalFailureRate = Rate(result.TotalSent-result.TotalDelivered, result.TotalSent)

	hours := make(map[string]int)
	for label, members := range BucketByCalendarUnit(filtered, HourOfDay) {
		hours[label] = len(members)
	}
	if peak, ok := PeakBucket(hours); ok {
		span := peakSpan(peak)
		result.PeakHour = &span
	}
	return result
}

// peakSpan renders an hour label as a one hour range, e.g. "14:00 – 15:00"
func peakSpan(label string) string {
	h, _ := parseHourLabel(label)
	return fmt.Sprintf("%s – %02d:00", label, h+1)
}
