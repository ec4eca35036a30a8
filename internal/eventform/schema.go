package eventform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"photobooth/internal/domain"
)

// Field names, as they appear in JSON payloads and field error maps.
const (
	FieldTitle    = "event_title"
	FieldSlug     = "event_slug"
	FieldDate     = "event_date"
	FieldHour     = "event_time_hour"
	FieldMinute   = "event_time_min"
	FieldMeridiem = "event_time_ampm"
	FieldTimezone = "event_timezone"
)

// FieldErrors maps a field name to its user-facing error message.
type FieldErrors map[string]string

var (
	titlePattern = regexp.MustCompile(`^[a-zA-Z0-9\s&@.,_\-'"]+$`)
	slugPattern  = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Validate applies the creation form schema to d. The result is empty when
// every field is present and well formed.
func Validate(d domain.EventDraft) FieldErrors {
	errs := FieldErrors{}

	switch {
	case strings.TrimSpace(d.Title) == "":
		errs[FieldTitle] = "Please enter an event name."
	case !titlePattern.MatchString(d.Title):
		errs[FieldTitle] = "Input must contain only letters, numbers, spaces, &, @, ., _, or -, single quotes, or double quotes"
	}

	switch {
	case strings.TrimSpace(d.Slug) == "":
		errs[FieldSlug] = "Please enter slug for the event url."
	case !slugPattern.MatchString(strings.TrimSpace(d.Slug)):
		errs[FieldSlug] = "Input must contain only letters, numbers, or -"
	}

	if d.Date.IsZero() {
		errs[FieldDate] = "A date for this event is required."
	}
	if h, err := strconv.Atoi(d.Hour); err != nil || h < 1 || h > 12 || d.Hour != strconv.Itoa(h) {
		errs[FieldHour] = "A time for this event is required."
	}
	if !minutePattern.MatchString(d.Minute) {
		errs[FieldMinute] = "A time for this event is required."
	}
	if m := Meridiem(d.Meridiem); m != AM && m != PM {
		errs[FieldMeridiem] = "Please select AM or PM."
	}

	switch {
	case d.Timezone == "":
		errs[FieldTimezone] = "The timezone for this event is required."
	case !ValidOffset(d.Timezone):
		errs[FieldTimezone] = "The timezone for this event must look like -06:00."
	}
	return errs
}

// Complete reports whether every required field of d is non-empty.
func Complete(d domain.EventDraft) bool {
	return strings.TrimSpace(d.Title) != "" &&
		strings.TrimSpace(d.Slug) != "" &&
		!d.Date.IsZero() &&
		d.Hour != "" &&
		d.Minute != "" &&
		d.Meridiem != "" &&
		d.Timezone != ""
}

// DefaultDraft is the initial form content: empty title and slug, and the
// current wall clock time rounded to the minute in now's zone.
func DefaultDraft(now time.Time) domain.EventDraft {
	h := now.Hour() % 12
	if h == 0 {
		h = 12
	}
	meridiem := AM
	if now.Hour() >= 12 {
		meridiem = PM
	}
	return domain.EventDraft{
		Hour:     strconv.Itoa(h),
		Minute:   fmt.Sprintf("%02d", now.Minute()),
		Meridiem: string(meridiem),
		Timezone: OffsetOf(now),
	}
}
