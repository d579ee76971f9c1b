package report

import (
	"slices"

	"github.com/maruel/natural"
	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
)

const (
	SummaryFileName  = "Department_Wise_Attendance_Report.xlsx"
	SummarySheetName = "Department_Report"
)

// summaryRow is one numbered employee line of the summary report.
type summaryRow struct {
	seq   int
	group domain.EmployeeGroup
}

var (
	summaryCell = excel.Style{Centered: true, Bordered: true}
	summaryName = excel.Style{Left: true, Bordered: true}
	summaryHead = excel.Style{Bold: true, Shaded: true, Centered: true, Bordered: true}
)

var summaryColumns = []columnDef[summaryRow]{
	{header: "Sl", width: 5, value: func(r summaryRow) excel.Cell { return excel.Num(float64(r.seq)) }},
	{header: "Emp Code", width: 15, value: func(r summaryRow) excel.Cell { return excel.Str(r.group.Code) }},
	{header: "Name", width: 30, value: func(r summaryRow) excel.Cell { return excel.Str(r.group.Name) }},
	{header: "P", width: 5, value: func(r summaryRow) excel.Cell { return excel.Num(float64(r.group.PresentDays)) }},
	{header: "A", width: 5, value: func(r summaryRow) excel.Cell { return excel.Num(float64(r.group.AbsentDays)) }},
	{header: "WO", width: 5, value: func(r summaryRow) excel.Cell { return excel.Num(float64(r.group.WeekOffDays)) }},
	{header: "Total Hr", width: 12, value: func(r summaryRow) excel.Cell { return hours(r.group.TotalWorkingHours) }},
}

// nameColumn is left aligned, every other summary column is centered.
const nameColumn = 2

// SortByCode returns a copy of groups ordered by employee code, comparing digit
// runs numerically so "EMP9" sorts before "EMP10".
func SortByCode(groups []domain.EmployeeGroup) []domain.EmployeeGroup {
	sorted := slices.Clone(groups)
	slices.SortStableFunc(sorted, func(a, b domain.EmployeeGroup) int {
		switch {
		case natural.Less(a.Code, b.Code):
			return -1
		case natural.Less(b.Code, a.Code):
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// BuildSummary projects the groups into the compact per-employee report.
func BuildSummary(groups []domain.EmployeeGroup) *excel.OutputWorkbook {
	sheet := excel.OutputSheet{Name: SummarySheetName}
	sheet.Rows = append(sheet.Rows, headerRow(summaryColumns, summaryHead))
	sheet.ColWidths = widths(summaryColumns)

	for i, g := range SortByCode(groups) {
		r := summaryRow{seq: i + 1, group: g}
		row := make([]excel.StyledCell, len(summaryColumns))
		for c, col := range summaryColumns {
			style := summaryCell
			if c == nameColumn {
				style = summaryName
			}
			row[c] = excel.StyledCell{Value: col.value(r), Style: style}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return &excel.OutputWorkbook{FileName: SummaryFileName, Sheets: []excel.OutputSheet{sheet}}
}
