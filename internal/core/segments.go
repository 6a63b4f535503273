package core

import (
	"regexp"
	"strings"
)

var (
	dayTokenPattern  = regexp.MustCompile(`(?i)\b(mo|tu|we|th|fr|sa|su)`)
	timeTokenPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)
	offTokenPattern  = regexp.MustCompile(`(?i)\b(off|closed)\b`)
)

// SegmentKind tags a comma-separated portion of a day-group
type SegmentKind int

const (
	// DayBearingSegment names at least one weekday and may start a new rule
	DayBearingSegment SegmentKind = iota
	// ContinuationSegment carries more time ranges for the preceding days
	ContinuationSegment
)

func (k SegmentKind) String() string {
	if k == DayBearingSegment {
		return "day-bearing"
	}
	return "continuation"
}

// portion is one comma-separated piece of a day-group
type portion struct {
	kind     SegmentKind
	text     string
	complete bool // has a time range or an explicit off marker
}

func classifyPortion(text string) portion {
	text = strings.TrimSpace(text)
	kind := ContinuationSegment
	if dayTokenPattern.MatchString(text) {
		kind = DayBearingSegment
	}
	return portion{
		kind:     kind,
		text:     text,
		complete: timeTokenPattern.MatchString(text) || offTokenPattern.MatchString(text),
	}
}

// splitSegments breaks a day-group such as "Mo-Fr 08:00-12:00, Sa 09:00-13:00"
// into single rules. Portions without day tokens are extra time ranges for the
// rule before them, and a rule that has days but no times yet absorbs the next
// portion as part of its day list.
func splitSegments(group string) []string {
	var (
		segments []string
		current  portion
		open     bool
	)

	for _, raw := range strings.Split(group, ",") {
		p := classifyPortion(raw)
		if p.text == "" {
			continue
		}

		switch {
		case open && !current.complete:
			current.text += "," + p.text
			current.complete = p.complete
		case p.kind == DayBearingSegment:
			if open {
				segments = append(segments, current.text)
			}
			current, open = p, true
		case open:
			current.text += "," + p.text
			current.complete = current.complete || p.complete
		}
	}

	if open {
		segments = append(segments, current.text)
	}
	return segments
}
