package report

import (
	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
	"github.com/shopspring/decimal"
)

const (
	DetailedFileName  = "Final_Attendance_Report.xlsx"
	DetailedSheetName = "Attendance_Output"

	totalHoursLabel = "Total Hours"
	separatorRows   = 4
)

// columnDef describes one report column: header, width and value extractor.
type columnDef[T any] struct {
	header string
	width  float64
	value  func(T) excel.Cell
}

// ledgerColumns defines the detailed report columns in order. The last two are
// placeholders on day rows and carry the counts on the summary row.
var ledgerColumns = []columnDef[domain.DailyRecord]{
	{header: "Emp Code", width: 10, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.EmpCode) }},
	{header: "Emp Name", width: 25, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.EmpName) }},
	{header: "Att. Date", width: 15, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.Date) }},
	{header: "InTime", width: 10, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.InTime) }},
	{header: "OutTime", width: 10, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.OutTime) }},
	{header: "Status", width: 20, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.Status) }},
	{header: "Punch Records", width: 30, value: func(r domain.DailyRecord) excel.Cell { return excel.Str(r.PunchRecords) }},
	{header: "Total Working Hours", width: 15, value: func(r domain.DailyRecord) excel.Cell { return nullHours(r.TotalWorkingHours) }},
	{header: "AbsentDays", width: 10, value: func(domain.DailyRecord) excel.Cell { return excel.Blank() }},
	{header: "PresentDays", width: 10, value: func(domain.DailyRecord) excel.Cell { return excel.Blank() }},
}

var headerStyle = excel.Style{Bold: true, Shaded: true, Centered: true}

// BuildDetailed projects the groups into the per-day ledger report: one row per
// record, a bold total row per employee and four blank separator rows.
// Day rows with an in-time but no out-time are highlighted.
func BuildDetailed(groups []domain.EmployeeGroup) *excel.OutputWorkbook {
	sheet := excel.OutputSheet{Name: DetailedSheetName}
	sheet.Rows = append(sheet.Rows, headerRow(ledgerColumns, headerStyle))
	sheet.ColWidths = widths(ledgerColumns)

	for _, g := range groups {
		if len(g.Records) == 0 {
			continue
		}

		for _, r := range g.Records {
			style := excel.Style{Highlighted: r.MissingOutPunch()}
			row := make([]excel.StyledCell, len(ledgerColumns))
			for c, col := range ledgerColumns {
				row[c] = excel.StyledCell{Value: col.value(r), Style: style}
			}
			sheet.Rows = append(sheet.Rows, row)
		}

		sheet.Rows = append(sheet.Rows, totalRow(g))
		for range separatorRows {
			sheet.Rows = append(sheet.Rows, nil)
		}
	}

	return &excel.OutputWorkbook{FileName: DetailedFileName, Sheets: []excel.OutputSheet{sheet}}
}

func totalRow(g domain.EmployeeGroup) []excel.StyledCell {
	bold := excel.Style{Bold: true}
	return []excel.StyledCell{
		{Value: excel.Str(g.Code)},
		{Value: excel.Str(g.Name)},
		{}, {}, {}, {},
		{Value: excel.Str(totalHoursLabel), Style: bold},
		{Value: hours(recordHours(g.Records)), Style: bold},
		{Value: excel.Num(float64(g.AbsentDays)), Style: bold},
		{Value: excel.Num(float64(g.PresentDays)), Style: bold},
	}
}

// recordHours sums the numeric working hours of records.
func recordHours(records []domain.DailyRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if r.TotalWorkingHours.Valid {
			sum = sum.Add(r.TotalWorkingHours.Decimal)
		}
	}
	return sum
}

func headerRow[T any](cols []columnDef[T], style excel.Style) []excel.StyledCell {
	row := make([]excel.StyledCell, len(cols))
	for c, col := range cols {
		row[c] = excel.StyledCell{Value: excel.Str(col.header), Style: style}
	}
	return row
}

func widths[T any](cols []columnDef[T]) []float64 {
	w := make([]float64, len(cols))
	for c, col := range cols {
		w[c] = col.width
	}
	return w
}

// hours renders d rounded to 2 places as a numeric cell.
func hours(d decimal.Decimal) excel.Cell {
	return excel.Num(d.Round(2).InexactFloat64())
}

func nullHours(d decimal.NullDecimal) excel.Cell {
	if !d.Valid {
		return excel.Blank()
	}
	return hours(d.Decimal)
}
