package eventform

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Meridiem is the AM/PM half of a 12-hour clock time.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// TimestampLayout parses the canonical event timestamp produced by ComposeTimestamp.
const TimestampLayout = "Mon Jan 2 2006 15:04:05 -07:00"

var (
	offsetPattern = regexp.MustCompile(`^[+-]([01][0-9]):([0-5][0-9])$`)
	minutePattern = regexp.MustCompile(`^[0-5][0-9]$`)
)

// ComposeTimestamp builds the canonical "Ddd Mon D YYYY H:MM:00 ±HH:MM" string
// from a calendar date and a 12-hour wall clock time in the given offset.
//
// PM adds 12 to hours 1..11; 12 PM is already an afternoon hour and stays 12.
// AM hours pass through unchanged, so 12 AM is stored as hour 12, not 0.
// That last case is a known quirk kept for compatibility with stored events.
func ComposeTimestamp(date time.Time, hour, minute string, meridiem Meridiem, offset string) (string, error) {
	if date.IsZero() {
		return "", fmt.Errorf("compose timestamp: missing date")
	}
	h, err := hour24(hour, meridiem)
	if err != nil {
		return "", fmt.Errorf("compose timestamp: %w", err)
	}
	if !minutePattern.MatchString(minute) {
		return "", fmt.Errorf("compose timestamp: invalid minute %q", minute)
	}
	if !ValidOffset(offset) {
		return "", fmt.Errorf("compose timestamp: invalid timezone offset %q", offset)
	}
	return fmt.Sprintf("%s %s %d %04d %d:%s:00 %s",
		date.Weekday().String()[:3],
		date.Month().String()[:3],
		date.Day(),
		date.Year(),
		h, minute, offset,
	), nil
}

// ParseTimestamp returns the instant a canonical timestamp denotes. Ordering
// events by this instant is the chronological order of their timestamps.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ValidOffset reports whether offset looks like "-06:00" within ±14:00.
func ValidOffset(offset string) bool {
	m := offsetPattern.FindStringSubmatch(offset)
	if m == nil {
		return false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return hh < 14 || (hh == 14 && mm == 0)
}

func hour24(hour string, meridiem Meridiem) (int, error) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 1 || h > 12 || hour != strconv.Itoa(h) {
		return 0, fmt.Errorf("invalid hour %q", hour)
	}
	switch meridiem {
	case AM:
		return h, nil
	case PM:
		if h < 12 {
			h += 12
		}
		return h, nil
	default:
		return 0, fmt.Errorf("invalid meridiem %q", meridiem)
	}
}

// OffsetOf formats the UTC offset of t's zone as ±HH:MM.
func OffsetOf(t time.Time) string {
	_, secs := t.Zone()
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d:%02d", sign, secs/3600, (secs%3600)/60)
}
