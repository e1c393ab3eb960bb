package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventhub/internal/domain"
)

var (
	slugStripRe  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugHyphenRe = regexp.MustCompile(`-+`)
	timeInputRe  = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s*([AaPp][Mm]))?$`)
)

// slugify converts a title into a URL-safe slug: lowercase, special
// characters stripped, whitespace runs collapsed to single hyphens.
// An empty result is not an error here; uniqueness and non-emptiness
// are enforced where the slug is used.
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// dateLayouts are tried in order by normalizeDate. Layouts carrying a
// time component discard it; the canonical form is the UTC calendar date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
}

// normalizeDate parses a free-form date string and returns the canonical
// YYYY-MM-DD form. Unparseable input fails with domain.ErrInvalidDateFormat.
func normalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidDateFormat, input)
}

// normalizeTime parses H:MM or HH:MM, with an optional case-insensitive
// AM/PM marker, and returns the canonical zero-padded 24-hour HH:MM form.
// A meridiem marker on an hour that is already 24-hour (e.g. "13:00 PM")
// pushes the hour out of range and fails, as does any unmatched shape.
func normalizeTime(input string) (string, error) {
	m := timeInputRe.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, input)
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, input)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, input)
	}
	if meridiem := strings.ToUpper(m[3]); meridiem != "" {
		if meridiem == "PM" && hour != 12 {
			hour += 12
		} else if meridiem == "AM" && hour == 12 {
			hour = 0
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, input)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// normalizeEvent is the pre-save pipeline for events. prev is the last
// persisted version, or nil for a new record. Slug is recomputed only
// when the title changed (or the record is new); date and time likewise.
// Any normalizer failure aborts the save; the event is mutated in place
// only on the fields whose source changed.
func normalizeEvent(e *domain.Event, prev *domain.Event) error {
	if prev == nil || e.Title != prev.Title {
		e.Slug = slugify(e.Title)
	}
	if prev == nil || e.Date != prev.Date {
		date, err := normalizeDate(e.Date)
		if err != nil {
			return err
		}
		e.Date = date
	}
	if prev == nil || e.Time != prev.Time {
		t, err := normalizeTime(e.Time)
		if err != nil {
			return err
		}
		e.Time = t
	}
	return nil
}
