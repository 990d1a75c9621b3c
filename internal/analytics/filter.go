package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Dan9191/customer360/internal/models"
)

// Predicate narrows the events selected by Filter
type Predicate func(models.CommunicationEvent) bool

// WithChannels keeps events whose channel is in the allow-list. An empty list allows all.
func WithChannels(channels ...string) Predicate {
	if len(channels) == 0 {
		return func(models.CommunicationEvent) bool { return true }
	}
	allowed := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		allowed[ch] = struct{}{}
	}
	return func(e models.CommunicationEvent) bool {
		_, ok := allowed[e.Channel]
		return ok
	}
}

// WithChannel keeps events of a single channel. An empty channel allows all.
func WithChannel(channel string) Predicate {
	if channel == "" {
		return WithChannels()
	}
	return WithChannels(channel)
}

// WithStatus keeps events with the given status
func WithStatus(status string) Predicate {
	return func(e models.CommunicationEvent) bool {
		return e.Status == status
	}
}

// WithIssueType keeps events that carry an issue type
func WithIssueType() Predicate {
	return func(e models.CommunicationEvent) bool {
		return e.IssueType != ""
	}
}

// WithCustomer keeps events of one customer
func WithCustomer(customerID string) Predicate {
	return func(e models.CommunicationEvent) bool {
		return e.CustomerID == customerID
	}
}

// WithLAN keeps events linked to one loan account
func WithLAN(lan string) Predicate {
	return func(e models.CommunicationEvent) bool {
		return e.LAN == lan
	}
}

// Filter keeps events inside w that satisfy every predicate.
// Events without a timestamp are dropped.
func Filter(events []models.CommunicationEvent, w Window, preds ...Predicate) []models.CommunicationEvent {
	var out []models.CommunicationEvent
	for _, e := range events {
		if !e.HasTimestamp() || !w.Contains(e.Timestamp) {
			continue
		}
		if matchAll(e, preds) {
			out = append(out, e)
		}
	}
	return out
}

// Select applies predicates without a time window
func Select(events []models.CommunicationEvent, preds ...Predicate) []models.CommunicationEvent {
	var out []models.CommunicationEvent
	for _, e := range events {
		if matchAll(e, preds) {
			out = append(out, e)
		}
	}
	return out
}

func matchAll(e models.CommunicationEvent, preds []Predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

// Calendar units for bucketing
type Unit int

const (
	HourOfDay Unit = iota
	CalendarDay
)

// BucketLabel returns the bucket label of e for unit
func BucketLabel(e models.CommunicationEvent, unit Unit) string {
	if unit == HourOfDay {
		return HourLabel(e.Timestamp.Hour())
	}
	return e.Timestamp.Format("2006-01-02")
}

// HourLabel formats an hour of day as HH:00
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// BucketByCalendarUnit groups events by hour-of-day or calendar day.
// Members keep their input order and empty buckets are omitted.
func BucketByCalendarUnit(events []models.CommunicationEvent, unit Unit) map[string][]models.CommunicationEvent {
	buckets := make(map[string][]models.CommunicationEvent)
	for _, e := range events {
		if !e.HasTimestamp() {
			continue
		}
		label := BucketLabel(e, unit)
		buckets[label] = append(buckets[label], e)
	}
	return buckets
}

// SortedLabels returns bucket labels in ascending order
func SortedLabels[T any](buckets map[string][]T) []string {
	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labelLess(labels[i], labels[j])
	})
	return labels
}

// Groups is an unordered grouping that remembers first-encountered key order
type Groups[K comparable, T any] struct {
	Keys    []K
	Members map[K][]T
}

// GroupBy groups items by keyFn. Items with an empty key are skipped.
func GroupBy[K comparable, T any](items []T, keyFn func(T) K) Groups[K, T] {
	var zero K
	g := Groups[K, T]{Members: make(map[K][]T)}
	for _, item := range items {
		key := keyFn(item)
		if key == zero {
			continue
		}
		if _, seen := g.Members[key]; !seen {
			g.Keys = append(g.Keys, key)
		}
		g.Members[key] = append(g.Members[key], item)
	}
	return g
}

// PeakBucket returns the label with the highest count. Ties go to the smallest label.
func PeakBucket(countsByLabel map[string]int) (string, bool) {
	var (
		peak  string
		best  int
		found bool
	)
	for label, count := range countsByLabel {
		if !found || count > best || (count == best && labelLess(label, peak)) {
			peak, best, found = label, count, true
		}
	}
	return peak, found
}

// labelLess orders hour labels numerically and day labels lexicographically
func labelLess(a, b string) bool {
	ha, okA := parseHourLabel(a)
	hb, okB := parseHourLabel(b)
	if okA && okB {
		return ha < hb
	}
	return a < b
}

func parseHourLabel(label string) (int, bool) {
	if len(label) != 5 || label[2:] != ":00" {
		return 0, false
	}
	h, err := strconv.Atoi(label[:2])
	if err != nil {
		return 0, false
	}
	return h, true
}
