package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-15 is a Monday
func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
}

func TestIsAlwaysOpen(t *testing.T) {
	for _, raw := range []string{"24/7", " 24/7 ", "24H", "Mo-Su 00:00-24:00", "mo-su 00:00 - 24:00", "Open 24/7", "24h service", "24/7; Su off"} {
		assert.True(t, IsAlwaysOpen(raw), raw)
	}
	for _, raw := range []string{"", "Mo-Fr 00:00-24:00", "Mo-Su 00:00-24:00; Sa off", "Mo 08:00-24:00"} {
		assert.False(t, IsAlwaysOpen(raw), raw)
	}
}

func TestParseScheduleWeekly(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Schedule
	}{
		{
			name: "day range",
			raw:  "Mo-Fr 08:00-18:00",
			want: Schedule{
				time.Monday:    {{800, 1800}},
				time.Tuesday:   {{800, 1800}},
				time.Wednesday: {{800, 1800}},
				time.Thursday:  {{800, 1800}},
				time.Friday:    {{800, 1800}},
			},
		},
		{
			name: "wrapping day range",
			raw:  "Sa-Mo 10:00-14:00",
			want: Schedule{
				time.Saturday: {{1000, 1400}},
				time.Sunday:   {{1000, 1400}},
				time.Monday:   {{1000, 1400}},
			},
		},
		{
			name: "several rules and ranges",
			raw:  "Mo,We 08:00-12:00, 14:00-18:00; Sa 09:00-13:00",
			want: Schedule{
				time.Monday:    {{800, 1200}, {1400, 1800}},
				time.Wednesday: {{800, 1200}, {1400, 1800}},
				time.Saturday:  {{900, 1300}},
			},
		},
		{
			name: "full day names",
			raw:  "Monday 09:00-10:00",
			want: Schedule{time.Monday: {{900, 1000}}},
		},
		{
			name: "overnight range",
			raw:  "Fr 22:00-02:00",
			want: Schedule{time.Friday: {{2200, 2600}}},
		},
		{
			name: "rules accumulate on the same day",
			raw:  "Mo 08:00-10:00; Mo 12:00-14:00",
			want: Schedule{time.Monday: {{800, 1000}, {1200, 1400}}},
		},
		{
			name: "closed days carry no intervals",
			raw:  "Mo-Sa 08:00-18:00; Su off",
			want: Schedule{
				time.Monday:    {{800, 1800}},
				time.Tuesday:   {{800, 1800}},
				time.Wednesday: {{800, 1800}},
				time.Thursday:  {{800, 1800}},
				time.Friday:    {{800, 1800}},
				time.Saturday:  {{800, 1800}},
			},
		},
		{
			name: "unrecognized tokens are skipped",
			raw:  "PH off; Mo-Fr sometimes; Tu 09:00-17:00",
			want: Schedule{time.Tuesday: {{900, 1700}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := ParseSchedule(tt.raw, at(time.January, 15, 12, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.want, schedule)
		})
	}
}

func TestParseScheduleMalformedTimes(t *testing.T) {
	for _, raw := range []string{"Mo 25:00-26:00", "Mo 08:61-10:00", "Mo 08:00-24:30"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseSchedule(raw, at(time.January, 15, 12, 0))
			assert.Error(t, err)
		})
	}

	schedule, err := ParseSchedule("Mo 08:00-24:00", at(time.January, 15, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, Schedule{time.Monday: {{800, 2400}}}, schedule)
}

func TestParseScheduleMonthQualified(t *testing.T) {
	const seasonal = "Dec-Feb: Mo-Su 10:00-20:00; Mar-Nov: Mo-Su 08:00-22:00"

	winter, err := ParseSchedule(seasonal, at(time.January, 15, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, []Interval{{1000, 2000}}, winter[time.Monday])
	assert.Len(t, winter, 7)

	december, err := ParseSchedule(seasonal, time.Date(2024, time.December, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []Interval{{1000, 2000}}, december[time.Monday])

	summer, err := ParseSchedule(seasonal, time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []Interval{{800, 2200}}, summer[time.Monday])
}

func TestParseScheduleMonthEdgeCases(t *testing.T) {
	t.Run("off month yields an empty schedule", func(t *testing.T) {
		schedule, err := ParseSchedule("Jan off; Feb-Dec: Mo-Su 08:00-18:00", at(time.January, 15, 12, 0))
		require.NoError(t, err)
		assert.Empty(t, schedule)
	})

	t.Run("no matching month yields an empty schedule", func(t *testing.T) {
		schedule, err := ParseSchedule("Jun-Aug: Mo-Fr 08:00-18:00", at(time.January, 15, 12, 0))
		require.NoError(t, err)
		assert.Empty(t, schedule)
	})

	t.Run("only the matching segment is parsed", func(t *testing.T) {
		schedule, err := ParseSchedule("Jan-Mar: Mo-Fr 08:00-18:00; Sa 10:00-14:00; Apr-Dec: Mo-Su 07:00-23:00", at(time.February, 3, 11, 0))
		require.NoError(t, err)
		assert.Equal(t, []Interval{{800, 1800}}, schedule[time.Friday])
		assert.NotContains(t, schedule, time.Saturday)
		assert.False(t, schedule.IsOpenAt(at(time.February, 3, 11, 0)))
	})

	t.Run("month range without a colon", func(t *testing.T) {
		schedule, err := ParseSchedule("Dec Sa 10:00-16:00", time.Date(2024, time.December, 7, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, Schedule{time.Saturday: {{1000, 1600}}}, schedule)
	})

	t.Run("single month", func(t *testing.T) {
		schedule, err := ParseSchedule("Dec: Sa 10:00-16:00", time.Date(2024, time.December, 7, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, Schedule{time.Saturday: {{1000, 1600}}}, schedule)
	})
}

func TestMonthRuleIncludes(t *testing.T) {
	wrap := monthRule{from: time.November, to: time.February}
	for _, m := range []time.Month{time.November, time.December, time.January, time.February} {
		assert.True(t, wrap.includes(m), m.String())
	}
	for _, m := range []time.Month{time.March, time.July, time.October} {
		assert.False(t, wrap.includes(m), m.String())
	}

	single := monthRule{from: time.May, to: time.May}
	assert.True(t, single.includes(time.May))
	assert.False(t, single.includes(time.June))
}

func TestScheduleIsOpenAt(t *testing.T) {
	schedule := Schedule{
		time.Monday: {{800, 1200}, {1400, 1800}},
		time.Friday: {{2200, 2600}},
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside first range", at(time.January, 15, 9, 0), true},
		{"start is inclusive", at(time.January, 15, 8, 0), true},
		{"end is inclusive", at(time.January, 15, 18, 0), true},
		{"gap", at(time.January, 15, 13, 0), false},
		{"no entry for the day", at(time.January, 16, 10, 0), false},
		{"late friday", at(time.January, 19, 23, 30), true},
		{"early friday matches the overnight tail", at(time.January, 19, 1, 0), true},
		{"early saturday is not covered", at(time.January, 20, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.IsOpenAt(tt.at))
		})
	}
}
