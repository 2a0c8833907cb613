package sqlite

import "time"

// timestampLayout is a fixed-width RFC 3339 layout. Always format in UTC:
// equal-length strings with a constant "Z" suffix sort lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp renders t for the created_at column.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimeString parses a time string from database TEXT columns (non-nullable).
// Returns zero time if parsing fails.
func parseTimeString(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	// RFC3339Nano also covers timestampLayout; the bare layouts match rows
	// written by tools that store naive local ISO-8601 strings.
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
