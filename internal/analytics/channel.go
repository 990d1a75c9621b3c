package analytics

import (
	"fmt"

	"github.com/Dan9191/customer360/internal/models"
)

// Channel performance sort keys
const (
	SortByVolume       = "volume"
	SortByDeliveryRate = "delivery_rate"
)

// ParseSortKey validates a channel performance sort key. Empty means volume.
func ParseSortKey(key string) (string, error) {
	switch key {
	case "", SortByVolume:
		return SortByVolume, nil
	case SortByDeliveryRate:
		return SortByDeliveryRate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
}

// ChannelPerformance aggregates volume, delivery rate and average resolution time per channel
// over all events, sorted descending by sortBy. Ties keep the first channel encountered.
func ChannelPerformance(events []models.CommunicationEvent, sortBy string) []models.ChannelPerformance {
	groups := GroupBy(events, func(e models.CommunicationEvent) string { return e.Channel })

	result := make([]models.ChannelPerformance, 0, len(groups.Keys))
	for _, ch := range groups.Keys {
		members := groups.Members[ch]
		delivered := 0
		var times []float64
		for _, e := range members {
			if e.Status != models.StatusDelivered {
				continue
			}
			delivered++
			if e.ResolutionTimeSeconds != nil {
				times = append(times, *e.ResolutionTimeSeconds)
			}
		}
		result = append(result, models.ChannelPerformance{
			Channel:      ch,
			Volume:       len(members),
			DeliveryRate: Rate(delivered, len(members)),
			AvgTime:      Round1(mean(times)),
		})
	}

	if sortBy == SortByDeliveryRate {
		RankDesc(result, func(c models.ChannelPerformance) float64 { return c.DeliveryRate })
	} else {
		RankDesc(result, func(c models.ChannelPerformance) int { return c.Volume })
	}
	return result
}
