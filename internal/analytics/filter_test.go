package analytics

import (
	"testing"
	"time"

	"github.com/Dan9191/customer360/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	w, err := Resolve(Period7Days, now)
	require.NoError(t, err)

	events := []models.CommunicationEvent{
		{ID: "1", Channel: models.ChannelSMS, Status: models.StatusDelivered, Timestamp: at(0, 9)},
		{ID: "2", Channel: models.ChannelEmail, Status: models.StatusFailed, Timestamp: at(6, 0)},
		{ID: "3", Channel: models.ChannelSMS, Status: models.StatusFailed, Timestamp: at(7, 23)},
		{ID: "4", Channel: models.ChannelIVR, Status: models.StatusDelivered},
		{ID: "5", Channel: models.ChannelWhatsApp, Status: models.StatusPending, Timestamp: at(3, 12), IssueType: "KYC"},
	}

	tests := []struct {
		name  string
		preds []Predicate
		want  []string
	}{
		{name: "window only drops out of range and missing timestamps", want: []string{"1", "2", "5"}},
		{name: "channel allow-list", preds: []Predicate{WithChannels(models.ChannelSMS, models.ChannelEmail)}, want: []string{"1", "2"}},
		{name: "empty allow-list keeps all", preds: []Predicate{WithChannels()}, want: []string{"1", "2", "5"}},
		{name: "status", preds: []Predicate{WithStatus(models.StatusFailed)}, want: []string{"2"}},
		{name: "issue type present", preds: []Predicate{WithIssueType()}, want: []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, e := range Filter(events, w, tt.preds...) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestBucketByCalendarUnit(t *testing.T) {
	events := []models.CommunicationEvent{
		{ID: "a", Timestamp: at(1, 9)},
		{ID: "b", Timestamp: at(0, 9)},
		{ID: "c", Timestamp: at(1, 17)},
		{ID: "d"},
	}

	days := BucketByCalendarUnit(events, CalendarDay)
	require.Len(t, days, 2)
	assert.Equal(t, []string{"2026-03-14", "2026-03-15"}, SortedLabels(days))
	assert.Equal(t, "a", days["2026-03-14"][0].ID)
	assert.Equal(t, "c", days["2026-03-14"][1].ID)

	hours := BucketByCalendarUnit(events, HourOfDay)
	require.Len(t, hours, 2)
	assert.Len(t, hours["09:00"], 2)
	assert.Len(t, hours["17:00"], 1)
	assert.Equal(t, []string{"09:00", "17:00"}, SortedLabels(hours))
}

func TestGroupByKeepsFirstEncounteredOrder(t *testing.T) {
	events := []models.CommunicationEvent{
		{Channel: models.ChannelEmail},
		{Channel: models.ChannelSMS},
		{Channel: ""},
		{Channel: models.ChannelEmail},
	}
	g := GroupBy(events, func(e models.CommunicationEvent) string { return e.Channel })

	assert.Equal(t, []string{models.ChannelEmail, models.ChannelSMS}, g.Keys)
	assert.Len(t, g.Members[models.ChannelEmail], 2)
	assert.NotContains(t, g.Members, "")
}

func TestPeakBucket(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   string
		found  bool
	}{
		{name: "empty", counts: map[string]int{}, found: false},
		{name: "single max", counts: map[string]int{"09:00": 2, "14:00": 5}, want: "14:00", found: true},
		{name: "hour tie goes to earliest hour", counts: map[string]int{"14:00": 3, "09:00": 3, "23:00": 3}, want: "09:00", found: true},
		{name: "day tie goes to earliest day", counts: map[string]int{"2026-03-02": 4, "2026-02-28": 4}, want: "2026-02-28", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PeakBucket(tt.counts)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "00:00", HourLabel(0))
	assert.Equal(t, "23:00", HourLabel(23))
	assert.Equal(t, "07:00", BucketLabel(models.CommunicationEvent{Timestamp: time.Date(2026, 1, 1, 7, 59, 0, 0, time.UTC)}, HourOfDay))
}
