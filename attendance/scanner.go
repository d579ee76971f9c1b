package attendance

import (
	"strings"

	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
	"github.com/shopspring/decimal"
)

// HeaderLayout locates the attendance columns of one employee block.
// Punch is -1 when the block has no punch records column.
type HeaderLayout struct {
	Date    int
	InTime  int
	OutTime int
	Status  int
	Punch   int
}

// Phase is the scanner's position relative to employee blocks.
type Phase int

const (
	PhaseNoEmployee Phase = iota
	PhaseEmployeeNoHeader
	PhaseEmployeeWithHeader
)

// State is the scan context carried from row to row. It is never mutated in
// place: every Step returns a new State.
type State struct {
	Identity domain.EmployeeIdentity
	Layout   *HeaderLayout
}

// Phase derives the scanner phase from the state.
func (s State) Phase() Phase {
	switch {
	case s.Identity.Code == "":
		return PhaseNoEmployee
	case s.Layout == nil:
		return PhaseEmployeeNoHeader
	default:
		return PhaseEmployeeWithHeader
	}
}

// RowKind is how the scanner classified a row.
type RowKind int

const (
	RowNoise RowKind = iota
	RowMetadata
	RowHeader
	RowData
	RowDropped
)

func (k RowKind) String() string {
	switch k {
	case RowMetadata:
		return "metadata"
	case RowHeader:
		return "header"
	case RowData:
		return "data"
	case RowDropped:
		return "dropped"
	default:
		return "noise"
	}
}

// Step is the outcome of scanning one row.
type Step struct {
	State  State
	Kind   RowKind
	Record *domain.DailyRecord
}

// Scanner turns worksheet rows into daily records.
type Scanner struct {
	labels *Labels
}

// NewScanner creates a Scanner using the given label rules.
func NewScanner(labels *Labels) *Scanner {
	return &Scanner{labels: labels}
}

// ScanSheet folds Step over every row of sheet, starting from an empty state,
// and hands each accepted record to emit in row order together with the
// identity that was current when the record was read.
func (s *Scanner) ScanSheet(sheet excel.Sheet, emit func(domain.EmployeeIdentity, domain.DailyRecord)) {
	var state State
	for _, row := range sheet.Rows {
		step := s.Step(state, row)
		state = step.State
		if step.Record != nil {
			emit(state.Identity, *step.Record)
		}
	}
}

// Step classifies one row against the current state and returns the next state.
func (s *Scanner) Step(state State, row excel.Row) Step {
	if len(row) == 0 {
		return Step{State: state, Kind: RowNoise}
	}

	if next, ok := s.metadata(state, row); ok {
		return Step{State: next, Kind: RowMetadata}
	}

	if state.Identity.Code == "" {
		return Step{State: state, Kind: RowNoise}
	}

	if layout, ok := s.header(row); ok {
		state.Layout = layout
		return Step{State: state, Kind: RowHeader}
	}

	if state.Layout == nil {
		return Step{State: state, Kind: RowNoise}
	}

	return s.data(state, row)
}

// metadata collects employee code, name and department labels from the row and
// applies them. A code different from the tracked one starts a fresh block,
// dropping the previous identity and header layout.
func (s *Scanner) metadata(state State, row excel.Row) (State, bool) {
	var (
		code, name, dept string
		deptInline       bool
	)

	for c := range row {
		if v, _, ok := s.labels.MetaValue(FieldEmpCode, row, c); ok {
			code = v
		}
		if v, _, ok := s.labels.MetaValue(FieldEmpName, row, c); ok {
			name = strings.ToUpper(strings.Join(strings.Fields(v), " "))
		}
		if v, inline, ok := s.labels.MetaValue(FieldDepartment, row, c); ok {
			dept, deptInline = v, inline
		}
	}

	if code == "" && name == "" && !(dept != "" && deptInline) {
		return state, false
	}

	next := state
	if code != "" && state.Identity.Code != "" && code != state.Identity.Code {
		next = State{}
	}
	if code != "" {
		next.Identity.Code = code
	}
	if name != "" {
		next.Identity.Name = name
	}
	if dept != "" {
		next.Identity.Department = dept
	}

	return next, true
}

// header returns a layout when the row names the date, in-time, out-time and
// status columns. The punch column is optional.
func (s *Scanner) header(row excel.Row) (*HeaderLayout, bool) {
	found := make(map[Field]int)
	for c, cell := range row {
		text := cell.Trimmed()
		if text == "" {
			continue
		}
		if field, ok := s.labels.HeaderField(text); ok {
			found[field] = c
		}
	}

	layout := &HeaderLayout{Punch: -1}
	for field, dst := range map[Field]*int{
		FieldDate:    &layout.Date,
		FieldInTime:  &layout.InTime,
		FieldOutTime: &layout.OutTime,
		FieldStatus:  &layout.Status,
	} {
		col, ok := found[field]
		if !ok {
			return nil, false
		}
		*dst = col
	}
	if col, ok := found[FieldPunch]; ok {
		layout.Punch = col
	}

	return layout, true
}

func (s *Scanner) data(state State, row excel.Row) Step {
	layout := state.Layout

	date := row.At(layout.Date)
	if date.IsBlank() || s.labels.Is(FieldDate, date.Trimmed()) {
		return Step{State: state, Kind: RowNoise}
	}

	in := row.At(layout.InTime)
	hasIn := !in.IsBlank() && !s.labels.Is(FieldInTime, in.Trimmed())

	rawStatus := row.At(layout.Status).String()
	status := ClassifyStatus(rawStatus)
	if !hasIn && !status.KeepsRow() {
		return Step{State: state, Kind: RowDropped}
	}

	out := row.At(layout.OutTime)
	hasOut := !out.IsBlank() && !s.labels.Is(FieldOutTime, out.Trimmed())

	record := domain.DailyRecord{
		EmpCode: state.Identity.Code,
		EmpName: state.Identity.DisplayName(),
		Date:    ParseDate(date),
		Status:  rawStatus,
	}
	if hasIn {
		record.InTime = FormatTime(in)
	}
	if hasOut {
		record.OutTime = FormatTime(out)
		if hasIn {
			record.TotalWorkingHours = WorkingHours(in, out)
		}
	}
	if layout.Punch >= 0 {
		record.PunchRecords = row.At(layout.Punch).String()
	}

	return Step{State: state, Kind: RowData, Record: &record}
}

// WorkingHours is out minus in, in hours rounded to 2 places. A negative
// difference is taken as an overnight shift and wrapped by 24 hours.
func WorkingHours(in, out excel.Cell) decimal.NullDecimal {
	inHours, ok := ParseTime(in)
	if !ok {
		return decimal.NullDecimal{}
	}
	outHours, ok := ParseTime(out)
	if !ok {
		return decimal.NullDecimal{}
	}

	diff := outHours - inHours
	if diff < 0 {
		diff += 24
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(diff).Round(2))
}
