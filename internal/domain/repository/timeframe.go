package repository

// Interval is the bucket width of a stored price series.
type Interval string

const (
	IntervalDaily   Interval = "1d"
	IntervalWeekly  Interval = "1w"
	IntervalMonthly Interval = "1mo"
)

// IsValidInterval returns true if iv is a supported bucket width.
func IsValidInterval(iv Interval) bool {
	switch iv {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	default:
		return false
	}
}

// DefaultInterval returns the default bucket width.
func DefaultInterval() Interval { return IntervalMonthly }

// NormalizeInterval converts raw string to a valid interval (or default).
func NormalizeInterval(s string) Interval {
	if s == "" {
		return DefaultInterval()
	}
	iv := Interval(s)
	if IsValidInterval(iv) {
		return iv
	}
	return DefaultInterval()
}

// BucketExpr is the ClickHouse function that truncates a timestamp to iv.
func (iv Interval) BucketExpr() string {
	switch iv {
	case IntervalDaily:
		return "toDate"
	case IntervalWeekly:
		return "toMonday"
	default:
		return "toStartOfMonth"
	}
}
