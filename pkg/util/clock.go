package util

import (
	"strconv"
	"strings"
	"time"
)

var frenchWeekdays = map[string]int{
	"lundi":    1,
	"mardi":    2,
	"mercredi": 3,
	"jeudi":    4,
	"vendredi": 5,
	"samedi":   6,
	"dimanche": 7,
}

// ParseDepartureHour. parse "HH" or "HH:MM" wall-clock string into an hour.
// empty or unparseable input means the hour is unspecified (ok == false).
func ParseDepartureHour(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return hour, true
}

// ParseWeekday. parse french weekday name (lundi..dimanche) into 1..7, 1 = monday.
func ParseWeekday(s string) (int, bool) {
	day, ok := frenchWeekdays[strings.ToLower(strings.TrimSpace(s))]
	return day, ok
}

// IsoWeekday. 1 = monday ... 7 = sunday
func IsoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
