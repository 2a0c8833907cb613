package sqlite

import (
	"sort"
	"testing"
	"time"
)

func TestFormatTimestampIsFixedWidthUTC(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		time.Date(2025, 1, 2, 3, 4, 5, 100, time.UTC),
		time.Date(2025, 1, 2, 3, 4, 5, 120000000, time.FixedZone("CET", 3600)),
		time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC),
	}

	var formatted []string
	for _, ts := range times {
		s := formatTimestamp(ts)
		if len(s) != len("2006-01-02T15:04:05.000000000Z") {
			t.Errorf("formatTimestamp(%v) = %q, not fixed width", ts, s)
		}
		if s[len(s)-1] != 'Z' {
			t.Errorf("formatTimestamp(%v) = %q, want UTC suffix", ts, s)
		}
		formatted = append(formatted, s)
	}

	// CET 03:04:05.12 is 02:04:05.12 UTC, earliest of the set.
	if !sort.StringsAreSorted([]string{formatted[2], formatted[0], formatted[1], formatted[3]}) {
		t.Errorf("lexical order does not match time order: %v", formatted)
	}
}

func TestParseTimeString(t *testing.T) {
	want := time.Date(2025, 6, 1, 12, 0, 0, 500000000, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{formatTimestamp(want), want},
		{"2025-06-01T12:00:00.5Z", want},
		{"2025-06-01T12:00:00.5", want},
		{"2025-06-01 12:00:00", want.Truncate(time.Second)},
		{"", time.Time{}},
		{"garbage", time.Time{}},
	}
	for _, tt := range tests {
		got := parseTimeString(tt.in)
		if !got.Equal(tt.want) {
			t.Errorf("parseTimeString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
