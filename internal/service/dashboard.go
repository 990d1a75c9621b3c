package service

import (
	"context"
	"strings"

	"github.com/Dan9191/customer360/internal/analytics"
	"github.com/Dan9191/customer360/internal/models"
)

// TodaySummary computes the dashboard tiles for the current day
func (s *Service) TodaySummary(ctx context.Context) (models.TodaySummary, error) {
	const op = "today summary"
	return calculate(s, op, func() (models.TodaySummary, error) {
		events, err := s.bestEffortEvents(ctx, op)
		if err != nil {
			return models.TodaySummary{}, err
		}
		return analytics.Today(events, s.now()), nil
	})
}

// ChannelPerformance ranks channels by sortBy, "volume" when empty
func (s *Service) ChannelPerformance(ctx context.Context, sortBy string) ([]models.ChannelPerformance, error) {
	const op = "channel performance"
	key, err := analytics.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	return calculate(s, op, func() ([]models.ChannelPerformance, error) {
		events, err := s.bestEffortEvents(ctx, op)
		if err != nil {
			return nil, err
		}
		return analytics.ChannelPerformance(events, key), nil
	})
}

// DeliveryStatus compares today's delivery outcomes with the six prior days
func (s *Service) DeliveryStatus(ctx context.Context) (models.DeliveryStatus, error) {
	const op = "delivery status"
	return calculate(s, op, func() (models.DeliveryStatus, error) {
		events, err := s.bestEffortEvents(ctx, op)
		if err != nil {
			return models.DeliveryStatus{}, err
		}
		return analytics.DeliveryStatus(events, s.now()), nil
	})
}

// VolumeTrends reports daily message volume for period, "7days" when empty
func (s *Service) VolumeTrends(ctx context.Context, period string, channels []string) (models.VolumeTrends, error) {
	const op = "volume trends"
	if period == "" {
		period = analytics.Period7Days
	}
	if err := analytics.ValidateToken(period, analytics.PeriodToday, analytics.Period7Days,
		analytics.Period30Days, analytics.Period90Days); err != nil {
		return models.VolumeTrends{}, err
	}
	return calculate(s, op, func() (models.VolumeTrends, error) {
		events, err := s.bestEffortEvents(ctx, op)
		if err != nil {
			return models.VolumeTrends{}, err
		}
		w, err := analytics.Resolve(period, s.now())
		if err != nil {
			return models.VolumeTrends{}, err
		}
		return analytics.VolumeTrends(events, w, normalizeChannels(channels)), nil
	})
}

// ResolutionTrend reports resolution times for timeline, "7days" when empty.
// An empty channel covers every channel.
func (s *Service) ResolutionTrend(ctx context.Context, timeline, channel string) (models.ResolutionTrend, error) {
	const op = "resolution trend"
	if timeline == "" {
		timeline = analytics.Period7Days
	}
	if err := analytics.ValidateToken(timeline, analytics.Period24h, analytics.Period7Days,
		analytics.Period30Days); err != nil {
		return models.ResolutionTrend{}, err
	}
	return calculate(s, op, func() (models.ResolutionTrend, error) {
		events, err := s.bestEffortEvents(ctx, op)
		if err != nil {
			return models.ResolutionTrend{}, err
		}
		w, err := analytics.Resolve(timeline, s.now())
		if err != nil {
			return models.ResolutionTrend{}, err
		}
		return analytics.ResolutionTrend(events, w, timeline, canonicalChannel(channel)), nil
	})
}

// TopIssues ranks issue types of the last seven days
func (s *Service) TopIssues(ctx context.Context) ([]models.IssueSummary, error) {
	const op = "top issues"
	return calculate(s, op, func() ([]models.IssueSummary, error) {
		events, err := s.bestEffortEvents(ctx, op)
		if err != nil {
			return nil, err
		}
		return analytics.TopIssues(events, s.now()), nil
	})
}

// normalizeChannels accepts repeated or comma separated channel names
func normalizeChannels(channels []string) []string {
	var out []string
	for _, raw := range channels {
		for _, ch := range strings.Split(raw, ",") {
			if ch = canonicalChannel(ch); ch != "" {
				out = append(out, ch)
			}
		}
	}
	return out
}

func canonicalChannel(ch string) string {
	ch = strings.TrimSpace(ch)
	for _, c := range models.Channels {
		if strings.EqualFold(c, ch) {
			return c
		}
	}
	return ch
}
