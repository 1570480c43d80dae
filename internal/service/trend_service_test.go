package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubase/edubase-backend/internal/model"
	"github.com/edubase/edubase-backend/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityDaily, g)

	g, err = ParseGranularity("weekly")
	require.NoError(t, err)
	assert.Equal(t, GranularityWeekly, g)

	_, err = ParseGranularity("hourly")
	assert.ErrorIs(t, err, ErrUnknownGranularity)
}

func TestMaterializeBucketsDailyWindowSize(t *testing.T) {
	from := day(2026, 3, 1)
	to := from.AddDate(0, 0, 30)

	buckets := materializeBuckets(from, to, GranularityDaily, nil)

	// inclusive on both ends: a 30 day lookback yields 31 points
	require.Len(t, buckets, 31)
	assert.Equal(t, "2026-03-01", buckets[0].Start)
	assert.Equal(t, "2026-03-31", buckets[30].End)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Counts.Total)
		assert.Equal(t, 0, b.Counts.Percentage)
	}
}

func TestMaterializeBucketsZeroFillsGaps(t *testing.T) {
	from := day(2026, 3, 1)
	to := day(2026, 3, 5)
	rows := []repository.DateStatusCountRow{
		{Date: day(2026, 3, 1), Status: model.AttendancePresent, Count: 9},
		{Date: day(2026, 3, 1), Status: model.AttendanceAbsent, Count: 1},
		{Date: day(2026, 3, 4), Status: model.AttendancePresent, Count: 10},
	}

	buckets := materializeBuckets(from, to, GranularityDaily, rows)

	require.Len(t, buckets, 5)
	assert.Equal(t, 10, buckets[0].Counts.Total)
	assert.Equal(t, 90, buckets[0].Counts.Percentage)
	assert.Equal(t, 0, buckets[1].Counts.Total)
	assert.Equal(t, 0, buckets[2].Counts.Total)
	assert.Equal(t, 10, buckets[3].Counts.Total)
	assert.Equal(t, 100, buckets[3].Counts.Percentage)
	assert.Equal(t, 0, buckets[4].Counts.Total)
}

func TestMaterializeBucketsDelta(t *testing.T) {
	from := day(2026, 3, 1)
	to := day(2026, 3, 3)
	rows := []repository.DateStatusCountRow{
		{Date: day(2026, 3, 1), Status: model.AttendancePresent, Count: 8},
		{Date: day(2026, 3, 1), Status: model.AttendanceAbsent, Count: 2},
		{Date: day(2026, 3, 2), Status: model.AttendancePresent, Count: 10},
		{Date: day(2026, 3, 3), Status: model.AttendancePresent, Count: 7},
		{Date: day(2026, 3, 3), Status: model.AttendanceAbsent, Count: 3},
	}

	buckets := materializeBuckets(from, to, GranularityDaily, rows)

	require.Len(t, buckets, 3)
	assert.Equal(t, 0, buckets[0].DeltaPercentage)
	assert.Equal(t, 20, buckets[1].DeltaPercentage)
	assert.Equal(t, -30, buckets[2].DeltaPercentage)
}

func TestMaterializeBucketsWeeklyMondayAnchor(t *testing.T) {
	// 2026-03-04 is a Wednesday; the first bucket is clipped, subsequent
	// buckets run Monday through Sunday.
	from := day(2026, 3, 4)
	to := day(2026, 3, 17)

	buckets := materializeBuckets(from, to, GranularityWeekly, nil)

	require.Len(t, buckets, 3)
	assert.Equal(t, "2026-03-04", buckets[0].Start)
	assert.Equal(t, "2026-03-08", buckets[0].End)
	assert.Equal(t, "2026-03-09", buckets[1].Start)
	assert.Equal(t, "2026-03-15", buckets[1].End)
	assert.Equal(t, "2026-03-16", buckets[2].Start)
	assert.Equal(t, "2026-03-17", buckets[2].End)
}

func TestMaterializeBucketsMonthlyClipped(t *testing.T) {
	from := day(2026, 1, 15)
	to := day(2026, 3, 10)

	buckets := materializeBuckets(from, to, GranularityMonthly, nil)

	require.Len(t, buckets, 3)
	assert.Equal(t, "2026-01-15", buckets[0].Start)
	assert.Equal(t, "2026-01-31", buckets[0].End)
	assert.Equal(t, "2026-02-01", buckets[1].Start)
	assert.Equal(t, "2026-02-28", buckets[1].End)
	assert.Equal(t, "2026-03-01", buckets[2].Start)
	assert.Equal(t, "2026-03-10", buckets[2].End)
	assert.Equal(t, "2026-01", buckets[0].Label)
	assert.Equal(t, "2026-02", buckets[1].Label)
}

func TestMaterializeBucketsWeeklyAggregates(t *testing.T) {
	from := day(2026, 3, 9) // Monday
	to := day(2026, 3, 22)  // Sunday two weeks later
	rows := []repository.DateStatusCountRow{
		{Date: day(2026, 3, 9), Status: model.AttendancePresent, Count: 20},
		{Date: day(2026, 3, 11), Status: model.AttendancePresent, Count: 18},
		{Date: day(2026, 3, 11), Status: model.AttendanceLate, Count: 2},
		{Date: day(2026, 3, 18), Status: model.AttendancePresent, Count: 19},
		{Date: day(2026, 3, 18), Status: model.AttendanceAbsent, Count: 1},
	}

	buckets := materializeBuckets(from, to, GranularityWeekly, rows)

	require.Len(t, buckets, 2)
	assert.Equal(t, 40, buckets[0].Counts.Total)
	assert.Equal(t, 38, buckets[0].Counts.Present)
	assert.Equal(t, 2, buckets[0].Counts.Late)
	assert.Equal(t, 20, buckets[1].Counts.Total)
	assert.Equal(t, 19, buckets[1].Counts.Present)
}
