package attendance

import (
	"regexp"
	"strings"

	"github.com/orayew2002/rast-attendance/excel"
)

// Field identifies a recognised column or metadata label.
type Field int

const (
	FieldNone Field = iota
	FieldEmpCode
	FieldEmpName
	FieldDepartment
	FieldDate
	FieldInTime
	FieldOutTime
	FieldStatus
	FieldPunch
	FieldShift
)

var fieldNames = map[Field]string{
	FieldEmpCode:    "emp_code",
	FieldEmpName:    "emp_name",
	FieldDepartment: "department",
	FieldDate:       "date",
	FieldInTime:     "in_time",
	FieldOutTime:    "out_time",
	FieldStatus:     "status",
	FieldPunch:      "punch",
	FieldShift:      "shift",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "none"
}

// MatchFunc reports whether a trimmed cell text is a label for a field.
type MatchFunc func(text string) bool

type rule struct {
	field Field
	match MatchFunc
	// loc locates the label inside the text so a trailing inline value can be cut off.
	loc func(text string) []int
}

// Labels holds the label rules used by the scanner.
//
// Header rules are checked in registration order and the first match wins.
// Metadata rules are checked independently, a cell may carry several labels.
type Labels struct {
	header []rule
	meta   []rule
}

// NewLabels creates an empty label registry.
func NewLabels() *Labels {
	return &Labels{}
}

// RegisterHeader adds a header column rule. Rules registered earlier take priority.
func (l *Labels) RegisterHeader(field Field, match MatchFunc) {
	l.header = append(l.header, rule{field: field, match: match})
}

// RegisterMeta adds a metadata label rule backed by pattern. The pattern's match
// position marks where the label ends and an inline value may begin.
func (l *Labels) RegisterMeta(field Field, pattern *regexp.Regexp) {
	l.meta = append(l.meta, rule{field: field, match: pattern.MatchString, loc: pattern.FindStringIndex})
}

// HeaderField returns the header column field text is a label for.
func (l *Labels) HeaderField(text string) (Field, bool) {
	for _, r := range l.header {
		if r.match(text) {
			return r.field, true
		}
	}
	return FieldNone, false
}

// Is reports whether text matches the header rule registered for field.
func (l *Labels) Is(field Field, text string) bool {
	for _, r := range l.header {
		if r.field == field {
			return r.match(text)
		}
	}
	return false
}

// MetaValue looks for a metadata label for field in row[col] and returns its value:
// either written inline after a ':' or '-' separator, or the nearest meaningful
// cell to the right.
func (l *Labels) MetaValue(field Field, row excel.Row, col int) (value string, inline, ok bool) {
	text := row.At(col).Trimmed()
	if text == "" {
		return "", false, false
	}

	for _, r := range l.meta {
		if r.field != field || !r.match(text) {
			continue
		}

		if v, found := inlineValue(text, r.loc(text)); found {
			return v, true, true
		}
		if v, found := ValueToRight(row, col); found {
			return v, false, true
		}
	}

	return "", false, false
}

var (
	inlineValuePat = regexp.MustCompile(`[:\-]\s*\S`)
	separatorPat   = regexp.MustCompile(`[:\-]`)
	leadingSepPat  = regexp.MustCompile(`^[:\-\s]+`)
)

// inlineValue returns the value that follows the first separator after the label,
// e.g. "Emp Code : E-101" → "E-101".
func inlineValue(text string, loc []int) (string, bool) {
	rest := text
	if loc != nil {
		rest = text[loc[1]:]
	}
	if !inlineValuePat.MatchString(rest) {
		return "", false
	}

	parts := separatorPat.Split(rest, 2)
	value := strings.TrimSpace(leadingSepPat.ReplaceAllString(parts[1], ""))
	return value, value != ""
}

// ValueToRight returns the first cell right of start that holds more than
// separator punctuation, with any leading separators stripped.
func ValueToRight(row excel.Row, start int) (string, bool) {
	for c := start + 1; c < len(row); c++ {
		cell := row.At(c).Trimmed()
		if cell == "" || cell == ":" || cell == "-" {
			continue
		}

		cell = strings.TrimSpace(leadingSepPat.ReplaceAllString(cell, ""))
		if cell != "" {
			return cell, true
		}
	}
	return "", false
}

var (
	empCodePat    = regexp.MustCompile(`(?i)Emp(?:loyee)?[\s.]*Code`)
	empNamePat    = regexp.MustCompile(`(?i)Emp(?:loyee)?[\s.]*Name`)
	departmentPat = regexp.MustCompile(`(?i)Department|Dept\.?`)

	datePat    = regexp.MustCompile(`(?i)^(?:ATT\.?\s*DATE|DATE)$`)
	inTimePat  = regexp.MustCompile(`(?i)^(?:In\s*Time|InTime)$`)
	outTimePat = regexp.MustCompile(`(?i)^(?:Out\s*Time|OutTime)$`)
	statusPat  = regexp.MustCompile(`(?i)^Status$`)
	punchPat   = regexp.MustCompile(`(?i)Punch`)
	shiftPat   = regexp.MustCompile(`(?i)^S\.|Shift`)
)

// DefaultLabels returns the label rules for the attendance exports we know about.
func DefaultLabels() *Labels {
	l := NewLabels()

	l.RegisterMeta(FieldEmpCode, empCodePat)
	l.RegisterMeta(FieldEmpName, empNamePat)
	l.RegisterMeta(FieldDepartment, departmentPat)

	// Date and status go before punch so "Punch Date" style cells never shadow them.
	l.RegisterHeader(FieldDate, datePat.MatchString)
	l.RegisterHeader(FieldInTime, func(text string) bool {
		return inTimePat.MatchString(text) && !shiftPat.MatchString(text)
	})
	l.RegisterHeader(FieldOutTime, func(text string) bool {
		return outTimePat.MatchString(text) && !shiftPat.MatchString(text)
	})
	l.RegisterHeader(FieldStatus, statusPat.MatchString)
	l.RegisterHeader(FieldPunch, punchPat.MatchString)
	l.RegisterHeader(FieldShift, shiftPat.MatchString)

	return l
}
