package analytics

import (
	"time"

	"github.com/Dan9191/customer360/internal/models"
)

// TopIssues ranks issue types by volume over the trailing 7 days and compares each with
// the preceding 7 days. Issues absent from the current period are not reported.
func TopIssues(events []models.CommunicationEvent, now time.Time) []models.IssueSummary {
	current := dayRange(now, 7)
	previous := Previous(current)

	byIssue := func(e models.CommunicationEvent) string { return e.IssueType }
	curr := GroupBy(Filter(events, current, WithIssueType()), byIssue)
	prev := GroupBy(Filter(events, previous, WithIssueType()), byIssue)

	result := make([]models.IssueSummary, 0, len(curr.Keys))
	for _, issue := range curr.Keys {
		members := curr.Members[issue]
		if len(members) == 0 {
			continue
		}

		channels := make([]string, 0, len(members))
		for _, e := range members {
			channels = append(channels, e.Channel)
		}
		summary := models.IssueSummary{
			IssueType:     issue,
			Volume:        len(members),
			PercentChange: PercentChange(float64(len(members)), float64(len(prev.Members[issue]))),
		}
		if ch, _, ok := MostFrequent(channels); ok {
			summary.PrimaryChannel = &ch
		}
		result = append(result, summary)
	}

	RankDesc(result, func(s models.IssueSummary) int { return s.Volume })
	return result
}
