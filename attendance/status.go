package attendance

import (
	"regexp"
	"strings"
)

var (
	weekOffPat = regexp.MustCompile(`(?i)WEEK\s*OFF|WO|OFF`)
	holidayPat = regexp.MustCompile(`(?i)HOLIDAY|PH`)
)

// Status holds the flags derived from a day's status text. The flags are
// independent: contradictory text such as "ABSENT/PRESENT" sets both.
type Status struct {
	WeekOff bool
	Holiday bool
	Absent  bool
	Present bool
}

// NormalizeStatus trims and uppercases raw status text.
func NormalizeStatus(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ClassifyStatus derives the status flags from raw status text.
func ClassifyStatus(raw string) Status {
	s := NormalizeStatus(raw)
	return Status{
		WeekOff: weekOffPat.MatchString(s),
		Holiday: holidayPat.MatchString(s),
		Absent:  strings.Contains(s, "ABSENT") || s == "A",
		Present: strings.Contains(s, "PRESENT") || s == "P",
	}
}

// KeepsRow reports whether the status alone justifies keeping a day without an in-time.
func (s Status) KeepsRow() bool {
	return s.Absent || s.WeekOff || s.Holiday
}
