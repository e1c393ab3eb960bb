package services

import (
	"errors"
	"regexp"
	"testing"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"basic", "Tech Summit 2024!!", "tech-summit-2024"},
		{"already clean", "tech-summit-2024", "tech-summit-2024"},
		{"surrounding whitespace", "  GopherCon  ", "gophercon"},
		{"internal whitespace run", "AI \t\n Bootcamp", "ai-bootcamp"},
		{"consecutive hyphens", "north--south---meetup", "north-south-meetup"},
		{"leading and trailing hyphens", "--hello world--", "hello-world"},
		{"special characters only", "!!!@@@###", ""},
		{"empty", "", ""},
		{"unicode stripped", "café & crêpes night", "caf-crpes-night"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, slugify(tt.title))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	shape := regexp.MustCompile(`^$|^[a-z0-9]+(-[a-z0-9]+)*$`)
	titles := []string{
		"Tech Summit 2024!!",
		"  Go  Meetup -- Berlin  ",
		"???",
		"a",
		"Already-Clean-Input",
	}
	for _, title := range titles {
		got := slugify(title)
		require.Equal(t, got, slugify(got), "slugify must be idempotent for %q", title)
		require.Regexp(t, shape, got, "slug shape for %q", title)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"long month name", "March 5, 2024", "2024-03-05", false},
		{"abbreviated month", "Mar 5, 2024", "2024-03-05", false},
		{"already canonical", "2024-03-05", "2024-03-05", false},
		{"rfc3339 discards time", "2024-03-05T18:30:00Z", "2024-03-05", false},
		{"date with time", "2024-03-05 18:30", "2024-03-05", false},
		{"slash format", "03/05/2024", "2024-03-05", false},
		{"day first", "5 March 2024", "2024-03-05", false},
		{"surrounding whitespace", "  2024-03-05  ", "2024-03-05", false},
		{"not a date", "not-a-date", "", true},
		{"impossible date", "2024-13-45", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, domain.ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"pm conversion", "2:30 PM", "14:30", false},
		{"already 24 hour", "14:30", "14:30", false},
		{"single digit hour", "9:05", "09:05", false},
		{"midnight am", "12:00 AM", "00:00", false},
		{"noon pm", "12:00 PM", "12:00", false},
		{"lowercase meridiem", "2:30pm", "14:30", false},
		{"24 hour with pm marker", "13:00 PM", "", true},
		{"hour out of range", "25:00", "", true},
		{"minute out of range", "10:75", "", true},
		{"no colon", "1430", "", true},
		{"empty", "", "", true},
		{"garbage", "half past two", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEvent_New(t *testing.T) {
	e := &domain.Event{
		Title: "Tech Summit 2024!!",
		Date:  "March 5, 2024",
		Time:  "2:30 PM",
	}
	require.NoError(t, normalizeEvent(e, nil))
	require.Equal(t, "tech-summit-2024", e.Slug)
	require.Equal(t, "2024-03-05", e.Date)
	require.Equal(t, "14:30", e.Time)
}

func TestNormalizeEvent_UnchangedFieldsUntouched(t *testing.T) {
	prev := &domain.Event{
		Title: "Tech Summit",
		Slug:  "tech-summit",
		Date:  "2024-03-05",
		Time:  "14:30",
	}
	e := &domain.Event{
		Title:    "Tech Summit",
		Slug:     "tech-summit",
		Date:     "2024-03-05",
		Time:     "14:30",
		Audience: "developers",
	}
	require.NoError(t, normalizeEvent(e, prev))
	require.Equal(t, "tech-summit", e.Slug)
	require.Equal(t, "2024-03-05", e.Date)
	require.Equal(t, "14:30", e.Time)
}

func TestNormalizeEvent_ChangedTitleRegeneratesSlug(t *testing.T) {
	prev := &domain.Event{Title: "Old Title", Slug: "old-title", Date: "2024-03-05", Time: "14:30"}
	e := &domain.Event{Title: "New Title!", Slug: "old-title", Date: "2024-03-05", Time: "14:30"}
	require.NoError(t, normalizeEvent(e, prev))
	require.Equal(t, "new-title", e.Slug)
}

func TestNormalizeEvent_BadDateAborts(t *testing.T) {
	e := &domain.Event{Title: "T", Date: "sometime soon", Time: "14:30"}
	err := normalizeEvent(e, nil)
	require.True(t, errors.Is(err, domain.ErrInvalidDateFormat))
}
