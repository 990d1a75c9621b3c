package analytics

import (
	"testing"

	"github.com/Dan9191/customer360/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayTilesOnEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, DeliveryRate(nil))
	assert.Equal(t, 0, FailedMessages(nil))
	assert.Equal(t, 0, ActiveEscalations(nil))
	assert.Equal(t, 0.0, CSATScore(nil))
	assert.Equal(t, 0.0, AvgResolutionTime(nil))

	summary := Today(nil, now)
	assert.Equal(t, models.TodaySummary{Date: "2026-03-15"}, summary)
}

func TestTodayScenario(t *testing.T) {
	events := []models.CommunicationEvent{
		event(models.ChannelSMS, models.StatusDelivered, at(0, 9)),
		event(models.ChannelSMS, models.StatusFailed, at(0, 10)),
		event(models.ChannelEmail, models.StatusDelivered, at(0, 11)),
	}

	summary := Today(events, now)
	assert.Equal(t, 66.7, summary.DeliveryRate)
	assert.Equal(t, 1, summary.FailedMessages)

	perf := ChannelPerformance(events, SortByVolume)
	require.Len(t, perf, 2)
	assert.Equal(t, models.ChannelPerformance{Channel: models.ChannelSMS, Volume: 2, DeliveryRate: 50.0}, perf[0])
	assert.Equal(t, models.ChannelPerformance{Channel: models.ChannelEmail, Volume: 1, DeliveryRate: 100.0}, perf[1])
}

func TestTodayIgnoresOtherDays(t *testing.T) {
	events := []models.CommunicationEvent{
		{Status: models.StatusFailed, Timestamp: at(1, 23), Escalated: true},
		{Status: models.StatusFailed, Timestamp: at(0, 0), Escalated: true, Resolved: true},
		{Status: models.StatusResolved, Timestamp: at(0, 8), Escalated: true, Resolved: true, ResolutionTimeSeconds: ptr(120.0), CSATScore: ptr(80.0)},
		{Status: models.StatusPending, Timestamp: at(0, 9), Escalated: true, CSATScore: ptr(95.0)},
		{Status: models.StatusDelivered, Timestamp: at(0, 10), Resolved: true, ResolutionTimeSeconds: ptr(45.0)},
		{Status: models.StatusDelivered, Timestamp: at(0, 11), ResolutionTimeSeconds: ptr(999.0)},
	}

	summary := Today(events, now)
	assert.Equal(t, 1, summary.FailedMessages)
	assert.Equal(t, 1, summary.ActiveEscalations)
	assert.Equal(t, 87.5, summary.CSATScore)
	assert.Equal(t, 82.5, summary.AvgResolutionTime)
	assert.Equal(t, 40.0, summary.DeliveryRate)
}

func TestTodayIsDeterministic(t *testing.T) {
	events := []models.CommunicationEvent{
		event(models.ChannelSMS, models.StatusDelivered, at(0, 9)),
		event(models.ChannelWhatsApp, models.StatusFailed, at(0, 13)),
	}
	assert.Equal(t, Today(events, now), Today(events, now))
	assert.Equal(t, ChannelPerformance(events, SortByDeliveryRate), ChannelPerformance(events, SortByDeliveryRate))
}

func TestChannelPerformance(t *testing.T) {
	events := []models.CommunicationEvent{
		{Channel: models.ChannelEmail, Status: models.StatusFailed},
		{Channel: models.ChannelIVR, Status: models.StatusDelivered, ResolutionTimeSeconds: ptr(10.0)},
		{Channel: models.ChannelEmail, Status: models.StatusDelivered, ResolutionTimeSeconds: ptr(3.0)},
		{Channel: models.ChannelEmail, Status: models.StatusDelivered},
		{Channel: models.ChannelIVR, Status: models.StatusDelivered, ResolutionTimeSeconds: ptr(5.0)},
		{Channel: models.ChannelIVR, Status: models.StatusFailed, ResolutionTimeSeconds: ptr(500.0)},
		{Channel: "", Status: models.StatusDelivered},
		{Channel: models.ChannelPost, Status: models.StatusDelivered},
	}

	t.Run("by volume with first-encountered tie-break", func(t *testing.T) {
		perf := ChannelPerformance(events, SortByVolume)
		require.Len(t, perf, 3)
		assert.Equal(t, models.ChannelEmail, perf[0].Channel)
		assert.Equal(t, models.ChannelIVR, perf[1].Channel)
		assert.Equal(t, models.ChannelPost, perf[2].Channel)
		assert.Equal(t, 66.7, perf[0].DeliveryRate)
		assert.Equal(t, 3.0, perf[0].AvgTime)
		assert.Equal(t, 7.5, perf[1].AvgTime)
	})

	t.Run("by delivery rate", func(t *testing.T) {
		perf := ChannelPerformance(events, SortByDeliveryRate)
		require.Len(t, perf, 3)
		assert.Equal(t, models.ChannelPost, perf[0].Channel)
		assert.Equal(t, 100.0, perf[0].DeliveryRate)
		assert.Equal(t, models.ChannelEmail, perf[1].Channel)
		assert.Equal(t, models.ChannelIVR, perf[2].Channel)
	})

	t.Run("volumes add up to channel-tagged records", func(t *testing.T) {
		total := 0
		for _, p := range ChannelPerformance(events, SortByVolume) {
			total += p.Volume
		}
		assert.Equal(t, 7, total)
	})
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByVolume, key)

	key, err = ParseSortKey(SortByDeliveryRate)
	require.NoError(t, err)
	assert.Equal(t, SortByDeliveryRate, key)

	_, err = ParseSortKey("csat")
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestDeliveryStatus(t *testing.T) {
	events := []models.CommunicationEvent{
		event(models.ChannelSMS, models.StatusDelivered, at(0, 8)),
		event(models.ChannelSMS, models.StatusDelivered, at(0, 9)),
		event(models.ChannelSMS, models.StatusDelivered, at(0, 10)),
		event(models.ChannelSMS, models.StatusFailed, at(0, 11)),
		event(models.ChannelSMS, models.StatusDelivered, at(1, 8)),
		event(models.ChannelSMS, models.StatusDelivered, at(6, 8)),
		event(models.ChannelSMS, models.StatusDelivered, at(7, 8)),
		event(models.ChannelSMS, models.StatusFailed, at(2, 8)),
		event(models.ChannelSMS, models.StatusFailed, at(3, 8)),
		event(models.ChannelSMS, models.StatusPending, at(4, 8)),
	}

	status := DeliveryStatus(events, now)
	assert.Equal(t, models.StatusCount{Count: 3, Change: 50.0}, status.Delivered)
	assert.Equal(t, models.StatusCount{Count: 1, Change: -50.0}, status.Failed)
	assert.Equal(t, models.StatusCount{Count: 0, Change: -100.0}, status.Pending)
}

func TestDeliveryStatusEmpty(t *testing.T) {
	status := DeliveryStatus(nil, now)
	assert.Equal(t, models.DeliveryStatus{}, status)
}
