package analytics

import (
	"testing"

	"github.com/Dan9191/customer360/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeTrends(t *testing.T) {
	events := []models.CommunicationEvent{
		event(models.ChannelSMS, models.StatusDelivered, at(0, 9)),
		event(models.ChannelSMS, models.StatusFailed, at(0, 14)),
		event(models.ChannelEmail, models.StatusDelivered, at(0, 14)),
		event(models.ChannelSMS, models.StatusPending, at(2, 9)),
		event(models.ChannelWhatsApp, models.StatusFailed, at(2, 20)),
		event(models.ChannelSMS, models.StatusDelivered, at(10, 9)),
	}
	w, err := Resolve(Period7Days, now)
	require.NoError(t, err)

	t.Run("all channels", func(t *testing.T) {
		trends := VolumeTrends(events, w, nil)
		require.Len(t, trends.Data, 2)
		assert.Equal(t, models.DailyVolume{Date: "2026-03-13", Sent: 2, Delivered: 0, Failed: 1, FailureRate: 50.0}, trends.Data[0])
		assert.Equal(t, models.DailyVolume{Date: "2026-03-15", Sent: 3, Delivered: 2, Failed: 1, FailureRate: 33.3}, trends.Data[1])
		assert.Equal(t, 5, trends.TotalSent)
		assert.Equal(t, 2, trends.TotalDelivered)
		assert.Equal(t, 2, trends.TotalFailed)
		assert.Equal(t, 60.0, trends.TotalFailureRate)
		require.NotNil(t, trends.PeakHour)
		assert.Equal(t, "09:00 – 10:00", *trends.PeakHour)
		assert.Empty(t, trends.Note)
	})

	t.Run("channel allow-list", func(t *testing.T) {
		trends := VolumeTrends(events, w, []string{models.ChannelEmail, models.ChannelWhatsApp})
		require.Len(t, trends.Data, 2)
		assert.Equal(t, 2, trends.TotalSent)
		require.NotNil(t, trends.PeakHour)
		assert.Equal(t, "14:00 – 15:00", *trends.PeakHour)
	})

	t.Run("undelivered counts as failure", func(t *testing.T) {
		pending := []models.CommunicationEvent{
			event(models.ChannelSMS, models.StatusDelivered, at(0, 9)),
			event(models.ChannelSMS, models.StatusPending, at(0, 10)),
		}
		trends := VolumeTrends(pending, w, nil)
		assert.Equal(t, 0, trends.TotalFailed)
		assert.Equal(t, 0.0, trends.Data[0].FailureRate)
		assert.Equal(t, 50.0, trends.TotalFailureRate)
	})

	t.Run("no data", func(t *testing.T) {
		trends := VolumeTrends(nil, w, nil)
		assert.Empty(t, trends.Data)
		assert.Nil(t, trends.PeakHour)
		assert.Equal(t, "No data available", trends.Note)
	})

	t.Run("nothing in period", func(t *testing.T) {
		today, err := Resolve(PeriodToday, now)
		require.NoError(t, err)
		trends := VolumeTrends(events, today, []string{models.ChannelPost})
		assert.Empty(t, trends.Data)
		assert.Equal(t, "No messages in period", trends.Note)
	})
}

func resolvedEvent(channel, issue string, seconds float64, daysAgo, hour int) models.CommunicationEvent {
	return models.CommunicationEvent{
		Channel:               channel,
		Status:                models.StatusResolved,
		Timestamp:             at(daysAgo, hour),
		ResolutionTimeSeconds: ptr(seconds),
		Resolved:              true,
		IssueType:             issue,
	}
}

func TestResolutionTrendDaily(t *testing.T) {
	events := []models.CommunicationEvent{
		resolvedEvent(models.ChannelEmail, "Payment", 600, 0, 9),
		resolvedEvent(models.ChannelEmail, "KYC", 2400, 0, 10),
		resolvedEvent(models.ChannelSMS, "Payment", 1200, 0, 11),
		resolvedEvent(models.ChannelSMS, "", 1800, 1, 9),
		{Channel: models.ChannelSMS, Status: models.StatusDelivered, Timestamp: at(0, 9), ResolutionTimeSeconds: ptr(60.0)},
		{Channel: models.ChannelSMS, Status: models.StatusResolved, Timestamp: at(0, 9), ResolutionTimeSeconds: ptr(0.0)},
		resolvedEvent(models.ChannelEmail, "Payment", 3600, 8, 9),
	}
	w, err := Resolve(Period7Days, now)
	require.NoError(t, err)

	trend := ResolutionTrend(events, w, Period7Days, "")
	require.Len(t, trend.Data, 2)
	assert.Equal(t, 4, trend.TotalResolved)

	yesterday := trend.Data[0]
	assert.Equal(t, "2026-03-14", yesterday.Bucket)
	assert.Equal(t, 30.0, yesterday.AvgResolution)
	assert.Equal(t, 0.0, yesterday.SLAMet)
	assert.Nil(t, yesterday.TopCause.Type)
	assert.Equal(t, 0.0, yesterday.TopCause.Percentage)

	today := trend.Data[1]
	assert.Equal(t, "2026-03-15", today.Bucket)
	assert.Equal(t, 3, today.Resolved)
	assert.Equal(t, 23.3, today.AvgResolution)
	assert.Equal(t, 66.7, today.SLAMet)
	assert.Equal(t, 10.0, today.Fastest)
	assert.Equal(t, 40.0, today.Slowest)
	require.NotNil(t, today.TopCause.Type)
	assert.Equal(t, "Payment", *today.TopCause.Type)
	assert.Equal(t, 66.7, today.TopCause.Percentage)

	// current mean 25 minutes, previous mean 60 minutes
	assert.Equal(t, 25.0, trend.OverallAvg)
	assert.Equal(t, 58.3, trend.Improvement)
	assert.Equal(t, "Resolution Time Improved by 58.3% vs last 7 days.", trend.Note)
}

func TestResolutionTrendHourlyWithChannel(t *testing.T) {
	events := []models.CommunicationEvent{
		resolvedEvent(models.ChannelEmail, "Payment", 600, 0, 9),
		resolvedEvent(models.ChannelEmail, "Payment", 1200, 0, 13),
		resolvedEvent(models.ChannelSMS, "KYC", 300, 0, 13),
		resolvedEvent(models.ChannelEmail, "KYC", 600, 1, 13),
	}
	w, err := Resolve(Period24h, now)
	require.NoError(t, err)

	trend := ResolutionTrend(events, w, Period24h, models.ChannelEmail)
	require.Len(t, trend.Data, 2)
	assert.Equal(t, "09:00", trend.Data[0].Bucket)
	assert.Equal(t, "13:00", trend.Data[1].Bucket)
	assert.Equal(t, 1, trend.Data[1].Resolved)
	// previous 24h holds one 10 minute Email resolution, current mean is 15 minutes
	assert.Equal(t, -50.0, trend.Improvement)
	assert.Equal(t, "No improvement in resolution time.", trend.Note)
}

func TestResolutionTrendImprovement(t *testing.T) {
	w, err := Resolve(Period7Days, now)
	require.NoError(t, err)

	tests := []struct {
		name    string
		current float64
		want    float64
		note    string
	}{
		{name: "halved", current: 600, want: 50.0, note: "Resolution Time Improved by 50.0% vs last 7 days."},
		{name: "measured from the rounded average", current: 602.4, want: 50.0, note: "Resolution Time Improved by 50.0% vs last 7 days."},
		{name: "unchanged", current: 1200, want: 0.0, note: "No improvement in resolution time."},
		{name: "slower", current: 1800, want: -50.0, note: "No improvement in resolution time."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []models.CommunicationEvent{
				resolvedEvent(models.ChannelSMS, "Payment", tt.current, 1, 9),
				resolvedEvent(models.ChannelSMS, "Payment", 1200, 8, 9),
			}
			trend := ResolutionTrend(events, w, Period7Days, "")
			assert.Equal(t, tt.want, trend.Improvement)
			assert.Equal(t, tt.note, trend.Note)
			assert.LessOrEqual(t, trend.Improvement, 100.0)
		})
	}
}

func TestResolutionTrendEmpty(t *testing.T) {
	w, err := Resolve(Period30Days, now)
	require.NoError(t, err)

	trend := ResolutionTrend(nil, w, Period30Days, "")
	assert.Empty(t, trend.Data)
	assert.Equal(t, "No data available", trend.Note)

	trend = ResolutionTrend([]models.CommunicationEvent{event(models.ChannelSMS, models.StatusSent, at(0, 9))}, w, Period30Days, "")
	assert.Empty(t, trend.Data)
	assert.Equal(t, "No resolutions in period", trend.Note)
}

func TestTimelineLabel(t *testing.T) {
	assert.Equal(t, "24 hours", timelineLabel(Period24h))
	assert.Equal(t, "30 days", timelineLabel(Period30Days))
}

func TestTopIssues(t *testing.T) {
	issue := func(issueType, channel string, daysAgo int) models.CommunicationEvent {
		return models.CommunicationEvent{IssueType: issueType, Channel: channel, Timestamp: at(daysAgo, 10)}
	}
	events := []models.CommunicationEvent{
		issue("KYC", models.ChannelEmail, 0),
		issue("Payment", models.ChannelSMS, 1),
		issue("Payment", models.ChannelEmail, 2),
		issue("KYC", models.ChannelSMS, 3),
		issue("Payment", models.ChannelSMS, 6),
		issue("KYC", models.ChannelSMS, 4),
		issue("Login", models.ChannelIVR, 5),
		issue("Payment", models.ChannelSMS, 7),
		issue("Payment", models.ChannelSMS, 13),
		issue("Refund", models.ChannelPost, 9),
		issue("Payment", models.ChannelSMS, 14),
		{Channel: models.ChannelSMS, Timestamp: at(0, 9)},
	}

	issues := TopIssues(events, now)
	require.Len(t, issues, 3)

	assert.Equal(t, "KYC", issues[0].IssueType)
	assert.Equal(t, 3, issues[0].Volume)
	require.NotNil(t, issues[0].PrimaryChannel)
	assert.Equal(t, models.ChannelSMS, *issues[0].PrimaryChannel)
	assert.Equal(t, 100.0, issues[0].PercentChange)

	assert.Equal(t, "Payment", issues[1].IssueType)
	assert.Equal(t, 3, issues[1].Volume)
	assert.Equal(t, models.ChannelSMS, *issues[1].PrimaryChannel)
	assert.Equal(t, 50.0, issues[1].PercentChange)

	assert.Equal(t, "Login", issues[2].IssueType)
	assert.Equal(t, 1, issues[2].Volume)

	for _, i := range issues {
		assert.NotEqual(t, "Refund", i.IssueType)
		assert.Positive(t, i.Volume)
	}
}

func TestTopIssuesPrimaryChannelTie(t *testing.T) {
	events := []models.CommunicationEvent{
		{IssueType: "KYC", Channel: models.ChannelWhatsApp, Timestamp: at(0, 9)},
		{IssueType: "KYC", Channel: models.ChannelEmail, Timestamp: at(0, 10)},
	}
	issues := TopIssues(events, now)
	require.Len(t, issues, 1)
	assert.Equal(t, models.ChannelWhatsApp, *issues[0].PrimaryChannel)
}
