package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlternation = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

var (
	monthTokenPattern = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)`)
	monthRangePattern = regexp.MustCompile(`(?i)^(` + monthAlternation + `)[a-z]*(?:\s*-\s*(` + monthAlternation + `)[a-z]*)?`)
	rulePattern       = regexp.MustCompile(`^([a-z]{2,}(?:\s*[-,]\s*[a-z]{2,})*)\s+(.+)$`)
	timeRangePattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})$`)

	alwaysOpenMarkers = []string{"24/7", "24h"}

	dayAbbreviations = map[string]time.Weekday{
		"su": time.Sunday,
		"mo": time.Monday,
		"tu": time.Tuesday,
		"we": time.Wednesday,
		"th": time.Thursday,
		"fr": time.Friday,
		"sa": time.Saturday,
	}
)

// IsAlwaysOpen reports whether the hours string carries a round-the-clock
// marker, or is exactly Mo-Su 00:00-24:00.
func IsAlwaysOpen(raw string) bool {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), "")
	if normalized == "mo-su00:00-24:00" {
		return true
	}
	for _, marker := range alwaysOpenMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

// IsOpenAt reports whether t falls inside any interval of t's weekday.
// Ranges past midnight only count on the day they start.
func (s Schedule) IsOpenAt(t time.Time) bool {
	intervals, ok := s[t.Weekday()]
	if !ok {
		return false
	}
	hhmm := t.Hour()*100 + t.Minute()
	for _, interval := range intervals {
		if interval.Contains(hhmm) {
			return true
		}
	}
	return false
}

// ParseSchedule parses an opening-hours string. now selects the active rule
// of month-qualified strings. Unrecognized tokens are skipped; malformed
// times and panics come back as errors.
func ParseSchedule(raw string, now time.Time) (schedule Schedule, err error) {
	defer func() {
		if r := recover(); r != nil {
			schedule, err = nil, fmt.Errorf("failed to parse opening hours: %v", r)
		}
	}()

	if monthTokenPattern.MatchString(raw) {
		return parseMonthQualified(raw, now.Month())
	}
	return parseWeekly(raw)
}

type monthRule struct {
	from, to time.Month
	off      bool
	body     string
}

func (r monthRule) includes(m time.Month) bool {
	start, end, current := int(r.from)-1, int(r.to)-1, int(m)-1
	return (current-start+12)%12 <= (end-start+12)%12
}

// parseMonthRule reads a segment that starts with a month range. The body is
// what follows the range and its optional colon.
func parseMonthRule(segment string) (monthRule, bool) {
	m := monthRangePattern.FindStringSubmatch(segment)
	if m == nil {
		return monthRule{}, false
	}

	rule := monthRule{from: monthIndex(m[1])}
	rule.to = rule.from
	if m[2] != "" {
		rule.to = monthIndex(m[2])
	}
	rest := strings.TrimSpace(segment[len(m[0]):])
	rule.off = offTokenPattern.MatchString(rest)
	rule.body = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	return rule, true
}

// parseMonthQualified parses the body of the first segment whose month range
// includes month. Segments without a leading month range are ignored.
func parseMonthQualified(raw string, month time.Month) (Schedule, error) {
	for _, segment := range strings.Split(raw, ";") {
		rule, ok := parseMonthRule(strings.TrimSpace(segment))
		if !ok || !rule.includes(month) {
			continue
		}
		if rule.off {
			return Schedule{}, nil
		}
		return parseWeekly(rule.body)
	}
	return Schedule{}, nil
}

func monthIndex(name string) time.Month {
	idx := strings.Index(monthAlternation, strings.ToLower(name[:3]))
	return time.Month(idx/4 + 1)
}

func parseWeekly(raw string) (Schedule, error) {
	schedule := Schedule{}
	for _, group := range strings.Split(raw, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		for _, segment := range splitSegments(group) {
			days, intervals, err := parseRule(segment)
			if err != nil {
				return nil, err
			}
			if len(intervals) == 0 {
				continue
			}
			for _, day := range days {
				schedule[day] = append(schedule[day], intervals...)
			}
		}
	}
	return schedule, nil
}

func parseRule(segment string) ([]time.Weekday, []Interval, error) {
	m := rulePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(segment)))
	if m == nil {
		return nil, nil, nil
	}
	intervals, err := parseTimes(m[2])
	if err != nil {
		return nil, nil, err
	}
	return parseDays(m[1]), intervals, nil
}

func parseDays(spec string) []time.Weekday {
	var (
		days []time.Weekday
		seen [7]bool
	)
	add := func(d time.Weekday) {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}

	for _, part := range strings.Split(spec, ",") {
		from, to, isRange := strings.Cut(strings.TrimSpace(part), "-")
		start, ok := dayIndex(from)
		if !ok {
			continue
		}
		if !isRange {
			add(start)
			continue
		}
		end, ok := dayIndex(to)
		if !ok {
			continue
		}
		for d := start; ; d = (d + 1) % 7 {
			add(d)
			if d == end {
				break
			}
		}
	}
	return days
}

func dayIndex(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return 0, false
	}
	d, ok := dayAbbreviations[name[:2]]
	return d, ok
}

func parseTimes(spec string) ([]Interval, error) {
	var intervals []Interval
	for _, token := range strings.Split(spec, ",") {
		m := timeRangePattern.FindStringSubmatch(strings.TrimSpace(token))
		if m == nil {
			continue
		}
		start, err := hhmm(m[1], m[2])
		if err != nil {
			return nil, err
		}
		end, err := hhmm(m[3], m[4])
		if err != nil {
			return nil, err
		}
		if end < start {
			end += 2400
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals, nil
}

func hhmm(hours, minutes string) (int, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, fmt.Errorf("malformed hour %q: %w", hours, err)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, fmt.Errorf("malformed minute %q: %w", minutes, err)
	}
	if h > 24 || m > 59 || (h == 24 && m > 0) {
		return 0, fmt.Errorf("malformed time %s:%s", hours, minutes)
	}
	return h*100 + m, nil
}
