package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPortion(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kind     SegmentKind
		complete bool
	}{
		{"days and times", "Mo-Fr 08:00-12:00", DayBearingSegment, true},
		{"days only", " Mo ", DayBearingSegment, false},
		{"times only", "14:00-18:00", ContinuationSegment, true},
		{"closed marker", "Su off", DayBearingSegment, true},
		{"noise", "ph", ContinuationSegment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := classifyPortion(tt.text)
			assert.Equal(t, tt.kind, p.kind)
			assert.Equal(t, tt.complete, p.complete)
		})
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name  string
		group string
		want  []string
	}{
		{
			name:  "single rule",
			group: "Mo-Fr 08:00-18:00",
			want:  []string{"Mo-Fr 08:00-18:00"},
		},
		{
			name:  "extra ranges stay with their days",
			group: "Su 08:00-11:00, 13:30-17:00",
			want:  []string{"Su 08:00-11:00,13:30-17:00"},
		},
		{
			name:  "second day-bearing portion starts a new rule",
			group: "Mo-Fr 08:00-12:00, Sa 09:00-13:00",
			want:  []string{"Mo-Fr 08:00-12:00", "Sa 09:00-13:00"},
		},
		{
			name:  "day list absorbs the next portion",
			group: "Mo,We 08:00-12:00",
			want:  []string{"Mo,We 08:00-12:00"},
		},
		{
			name:  "day list followed by more ranges",
			group: "Mo, We 08:00-12:00, 14:00-18:00, Fr 10:00-12:00",
			want:  []string{"Mo,We 08:00-12:00,14:00-18:00", "Fr 10:00-12:00"},
		},
		{
			name:  "leading ranges without days are dropped",
			group: "08:00-12:00, Sa 09:00-13:00",
			want:  []string{"Sa 09:00-13:00"},
		},
		{
			name:  "empty portions are skipped",
			group: "Mo 08:00-12:00,, ",
			want:  []string{"Mo 08:00-12:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSegments(tt.group))
		})
	}
}

func TestSegmentKindString(t *testing.T) {
	assert.Equal(t, "day-bearing", DayBearingSegment.String())
	assert.Equal(t, "continuation", ContinuationSegment.String())
}
