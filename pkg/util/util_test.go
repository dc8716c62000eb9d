package util

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDepartureHour(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		hour   int
		parsed bool
	}{
		{name: "hour only", input: "08", hour: 8, parsed: true},
		{name: "hour and minute", input: "17:45", hour: 17, parsed: true},
		{name: "surrounding spaces", input: " 9 ", hour: 9, parsed: true},
		{name: "empty", input: "", parsed: false},
		{name: "garbage", input: "soon", parsed: false},
		{name: "garbage before colon", input: "xx:30", parsed: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			hour, ok := ParseDepartureHour(tt.input)
			assert.Equal(t, tt.parsed, ok)
			if tt.parsed {
				assert.Equal(t, tt.hour, hour)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	testCases := []struct {
		input  string
		day    int
		parsed bool
	}{
		{input: "lundi", day: 1, parsed: true},
		{input: "Mercredi", day: 3, parsed: true},
		{input: "DIMANCHE", day: 7, parsed: true},
		{input: "monday", parsed: false},
		{input: "", parsed: false},
	}

	for _, tt := range testCases {
		t.Run(tt.input, func(t *testing.T) {
			day, ok := ParseWeekday(tt.input)
			assert.Equal(t, tt.parsed, ok)
			assert.Equal(t, tt.day, day)
		})
	}
}

func TestIsoWeekday(t *testing.T) {
	// 2026-10-18 is a sunday
	sunday := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, IsoWeekday(sunday))
	assert.Equal(t, 1, IsoWeekday(sunday.AddDate(0, 0, 1)))
}

func TestErrorCode(t *testing.T) {
	cause := errors.New("boom")
	err := WrapErrorf(cause, ErrNotFound, "segment %d not found", 7)
	wrapped := fmt.Errorf("handler: %w", err)

	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, ErrNotFound, ErrorCode(wrapped))
	assert.Equal(t, ErrInternalServerError, ErrorCode(cause))

	var ierr *Error
	assert.ErrorAs(t, wrapped, &ierr)
	assert.Equal(t, "segment 7 not found", ierr.Message())
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 12.3, RoundFloat(12.345, 1))
	assert.Equal(t, 12.0, RoundFloat(11.96, 1))
}
