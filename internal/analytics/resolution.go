package analytics

import (
	"fmt"
	"strings"

	"github.com/Dan9191/customer360/internal/models"
)

// SLAThresholdSeconds is the resolution time under which a case meets SLA
const SLAThresholdSeconds = 30 * 60

// ResolutionTrend buckets resolved events inside w by hour (24h timeline) or by day, and
// compares the mean resolution time with the immediately preceding window of equal length.
// Improvement is the drop of the rounded current mean relative to the previous mean, positive
// when resolutions got faster.
func ResolutionTrend(events []models.CommunicationEvent, w Window, timeline, channel string) models.ResolutionTrend {
	if len(events) == 0 {
		return models.ResolutionTrend{Data: []models.ResolutionBucket{}, Note: noteNoData}
	}

	current := resolvedIn(events, w, channel)
	if len(current) == 0 {
		return models.ResolutionTrend{Data: []models.ResolutionBucket{}, Note: "No resolutions in period"}
	}

	unit := CalendarDay
	if timeline == Period24h {
		unit = HourOfDay
	}
	buckets := BucketByCalendarUnit(current, unit)

	result := models.ResolutionTrend{
		Data:          make([]models.ResolutionBucket, 0, len(buckets)),
		TotalResolved: len(current),
	}
	for _, label := range SortedLabels(buckets) {
		result.Data = append(result.Data, resolutionBucket(label, buckets[label]))
	}

	result.OverallAvg = Round1(mean(resolutionMinutes(current)))

	previous := resolvedIn(events, Previous(w), channel)
	if len(previous) > 0 {
		result.Improvement = improvement(result.OverallAvg, mean(resolutionMinutes(previous)))
	}

	if result.Improvement > 0 {
		result.Note = fmt.Sprintf("Resolution Time Improved by %.1f%% vs last %s.", result.Improvement, timelineLabel(timeline))
	} else {
		result.Note = "No improvement in resolution time."
	}
	return result
}

// improvement is the percent decrease from previous to current, measured against previous
func improvement(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return Round1((previous - current) / previous * 100)
}

// resolvedIn selects RESOLVED events with a positive resolution time
func resolvedIn(events []models.CommunicationEvent, w Window, channel string) []models.CommunicationEvent {
	return Filter(events, w,
		WithStatus(models.StatusResolved),
		WithChannel(channel),
		func(e models.CommunicationEvent) bool {
			return e.ResolutionTimeSeconds != nil && *e.ResolutionTimeSeconds > 0
		},
	)
}

func resolutionBucket(label string, members []models.CommunicationEvent) models.ResolutionBucket {
	minutes := resolutionMinutes(members)

	fastest, slowest := minutes[0], minutes[0]
	metSLA := 0
	issues := make([]string, 0, len(members))
	for i, m := range minutes {
		if m < fastest {
			fastest = m
		}
		if m > slowest {
			slowest = m
		}
		if *members[i].ResolutionTimeSeconds < SLAThresholdSeconds {
			metSLA++
		}
		issues = append(issues, members[i].IssueType)
	}

	cause := models.TopCause{}
	if issue, count, ok := MostFrequent(issues); ok {
		cause.Type = &issue
		cause.Percentage = Rate(count, len(members))
	}

	return models.ResolutionBucket{
		Bucket:        label,
		AvgResolution: Round1(mean(minutes)),
		SLAMet:        Rate(metSLA, len(members)),
		Fastest:       Round1(fastest),
		Slowest:       Round1(slowest),
		Resolved:      len(members),
		TopCause:      cause,
	}
}

func resolutionMinutes(events []models.CommunicationEvent) []float64 {
	minutes := make([]float64, 0, len(events))
	for _, e := range events {
		minutes = append(minutes, *e.ResolutionTimeSeconds/60)
	}
	return minutes
}

// timelineLabel turns "24h" into "24 hours" and "7days" into "7 days"
func timelineLabel(timeline string) string {
	if strings.HasSuffix(timeline, "h") {
		return strings.TrimSuffix(timeline, "h") + " hours"
	}
	return strings.TrimSuffix(timeline, "days") + " days"
}
