package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// DayLayout is the calendar-day format used for every series date.
const DayLayout = "2006-01-02"

// FormatDay renders t as a UTC calendar day.
func FormatDay(t time.Time) string {
    return t.UTC().Format(DayLayout)
}

// ParseDay parses a calendar day in DayLayout.
func ParseDay(s string) (time.Time, bool) {
    t, err := time.Parse(DayLayout, s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// MonthsAhead returns the calendar day n months after now.
// Overflowing days roll into the next month (Jan 31 + 1 -> Mar 2/3).
func MonthsAhead(now time.Time, n int) string {
    return FormatDay(now.AddDate(0, n, 0))
}

// MonthsAgo returns the instant n months before now.
func MonthsAgo(now time.Time, n int) time.Time {
    return now.AddDate(0, -n, 0)
}
