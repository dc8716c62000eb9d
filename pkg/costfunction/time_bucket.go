package costfunction

import (
	"github.com/lintang-b-s/arterial/pkg"
)

// ClassifyBucket. hour 7-9 -> morning peak, 16-19 -> evening peak, everything else -> normal.
// NIGHT is a table key only and is never returned here.
func ClassifyBucket(hour int) pkg.Bucket {
	switch {
	case 7 <= hour && hour <= 9:
		return pkg.MORNING_PEAK
	case 16 <= hour && hour <= 19:
		return pkg.EVENING_PEAK
	default:
		return pkg.NORMAL
	}
}

func isWeekday(weekday int) bool {
	return weekday <= 5
}

func isNight(hour int) bool {
	return hour >= 22 || hour <= 5
}

// AdjustmentFactors. multiplicative (day, hour) factors for an hour 0..23 and an iso weekday 1..7 (1 = monday).
func AdjustmentFactors(hour, weekday int) (float64, float64) {
	dayFactor := pkg.WEEKEND_DAY_FACTOR
	if isWeekday(weekday) {
		dayFactor = pkg.WEEKDAY_DAY_FACTOR
	}

	hourFactor := 1.0
	if isWeekday(weekday) {
		switch {
		case 7 <= hour && hour <= 9:
			hourFactor = 1.5
		case 16 <= hour && hour <= 19:
			hourFactor = 1.4
		case isNight(hour):
			hourFactor = 0.7
		}
	} else {
		switch {
		case 10 <= hour && hour <= 18:
			hourFactor = 1.1
		case isNight(hour):
			hourFactor = 0.6
		}
	}

	return dayFactor, hourFactor
}
