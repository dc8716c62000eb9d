package costfunction

import (
	"time"

	"github.com/lintang-b-s/arterial/pkg/util"
)

// Clock. source of the current wall-clock time used to fill an unspecified departure
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

// Departure. optional hour of day (0..23) and iso weekday (1..7, 1 = monday).
// nil means unspecified and is substituted from a Clock before classification.
type Departure struct {
	Hour    *int
	Weekday *int
}

func NewDeparture(hour, weekday int) Departure {
	return Departure{Hour: &hour, Weekday: &weekday}
}

func Unspecified() Departure {
	return Departure{}
}

func (d Departure) WithHour(hour int) Departure {
	d.Hour = &hour
	return d
}

func (d Departure) WithWeekday(weekday int) Departure {
	d.Weekday = &weekday
	return d
}

func (d Departure) HasHour() bool {
	return d.Hour != nil
}

func (d Departure) HasWeekday() bool {
	return d.Weekday != nil
}

// Resolve. fills unspecified fields from now.
func (d Departure) Resolve(now time.Time) (int, int) {
	hour := now.Hour()
	if d.Hour != nil {
		hour = *d.Hour
	}
	weekday := util.IsoWeekday(now)
	if d.Weekday != nil {
		weekday = *d.Weekday
	}
	return hour, weekday
}
