package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestMonthsAhead(t *testing.T) {
    now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
    if got := MonthsAhead(now, 1); got != "2024-02-15" {
        t.Fatalf("unexpected day %s", got)
    }
    if got := MonthsAhead(now, 12); got != "2025-01-15" {
        t.Fatalf("unexpected day %s", got)
    }
    // day overflow normalizes forward
    end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
    if got := MonthsAhead(end, 1); got != "2024-03-02" {
        t.Fatalf("unexpected overflow day %s", got)
    }
}

func TestParseDay(t *testing.T) {
    if _, ok := ParseDay("2024-13-01"); ok {
        t.Fatalf("expected invalid month")
    }
    got, ok := ParseDay("2024-02-29")
    if !ok || FormatDay(got) != "2024-02-29" {
        t.Fatalf("unexpected day %v", got)
    }
    if !MonthsAgo(got, 2).Equal(time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)) {
        t.Fatalf("unexpected months ago")
    }
}
