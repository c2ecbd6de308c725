package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInterval(t *testing.T) {
	assert.Equal(t, IntervalMonthly, NormalizeInterval(""))
	assert.Equal(t, IntervalDaily, NormalizeInterval("1d"))
	assert.Equal(t, IntervalMonthly, NormalizeInterval("5m"))
	assert.Equal(t, "toDate", IntervalDaily.BucketExpr())
	assert.Equal(t, "toMonday", IntervalWeekly.BucketExpr())
	assert.Equal(t, "toStartOfMonth", Interval("x").BucketExpr())
}
