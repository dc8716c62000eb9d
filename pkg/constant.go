package pkg

import (
	"fmt"
	"strings"
)

// enum of time-of-day bucket used as travel time table key
type Bucket uint8

const (
	MORNING_PEAK Bucket = iota
	EVENING_PEAK
	NORMAL
	NIGHT
	UNKNOWN_BUCKET
)

func (b Bucket) String() string {
	switch b {
	case MORNING_PEAK:
		return "matin"
	case EVENING_PEAK:
		return "soir"
	case NORMAL:
		return "normal"
	case NIGHT:
		return "nuit"
	default:
		return "unknown"
	}
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	parsed := GetBucket(string(text))
	if parsed == UNKNOWN_BUCKET {
		return fmt.Errorf("unknown time bucket %q", string(text))
	}
	*b = parsed
	return nil
}

// GetBucket. parse bucket key as stored in the travel time table (csv, postgres)
func GetBucket(key string) Bucket {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "matin", "morning", "morning_peak":
		return MORNING_PEAK
	case "soir", "evening", "evening_peak":
		return EVENING_PEAK
	case "normal":
		return NORMAL
	case "nuit", "night":
		return NIGHT
	default:
		return UNKNOWN_BUCKET
	}
}

// enum of congestion level, ordered from lightest to heaviest
type CongestionLevel uint8

const (
	FREE CongestionLevel = iota
	MODERATE
	DENSE
)

func (c CongestionLevel) String() string {
	switch c {
	case MODERATE:
		return "moderate"
	case DENSE:
		return "dense"
	default:
		return "free"
	}
}

// FrenchLabel. label used by the original fes web client
func (c CongestionLevel) FrenchLabel() string {
	switch c {
	case MODERATE:
		return "modéré"
	case DENSE:
		return "dense"
	default:
		return "fluide"
	}
}

func (c CongestionLevel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CongestionLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "free", "fluide":
		*c = FREE
	case "moderate", "modéré":
		*c = MODERATE
	case "dense":
		*c = DENSE
	default:
		return fmt.Errorf("unknown congestion level %q", string(text))
	}
	return nil
}

const (
	INF_WEIGHT float64 = 1e15

	DEFAULT_SPEED_KMH = 30.0

	WEEKDAY_DAY_FACTOR = 1.2
	WEEKEND_DAY_FACTOR = 0.8

	MIN_RANDOM_MULTIPLIER = 0.9
	MAX_RANDOM_MULTIPLIER = 1.1

	MAX_RELIABILITY = 90.0

	// reference instant for congestion: wednesday 14:00
	REFERENCE_HOUR    = 14
	REFERENCE_WEEKDAY = 3

	DENSE_RATIO_THRESHOLD    = 1.3
	MODERATE_RATIO_THRESHOLD = 1.1

	DEFAULT_MAX_HOPS      = 3
	DEFAULT_SEARCH_BUDGET = 100000
)

const (
	DEBUG = false
)
