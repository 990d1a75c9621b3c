package analytics

import "math"

// PercentChange returns the relative change of current against previous, rounded to one decimal.
// A zero baseline yields 0 when nothing happened and 100 when new activity appeared.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return Round1((current - previous) / previous * 100)
}

// Round1 rounds half away from zero to one decimal place
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// Rate returns part/total as a percentage rounded to one decimal, or 0 for an empty total
func Rate(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return Round1(float64(part) / float64(total) * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
