// Package sample generates synthetic biometric attendance exports in the shapes
// real machines produce: metadata blocks, shifting header layouts and mixed
// time encodings.
package sample

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bxcodec/faker/v4"
	"github.com/orayew2002/rast-attendance/excel"
)

// EmployeesPerSheet is how many employee blocks go on one generated sheet.
const EmployeesPerSheet = 5

// Options controls the generated export. Zero values fall back to defaults.
type Options struct {
	Employees int
	Days      int
	Start     time.Time
	Seed      uint64
}

func (o Options) withDefaults() Options {
	if o.Employees <= 0 {
		o.Employees = 10
	}
	if o.Days <= 0 {
		o.Days = 31
	}
	if o.Start.IsZero() {
		o.Start = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

var departments = []string{"Production", "Quality", "Stores", "Maintenance", "Admin"}

// layout is one header variant. Column positions differ between variants so
// consecutive employee blocks never share a layout.
type layout struct {
	header []string
	date, in, out, status, punch int
	encode func(t time.Time) excel.Cell
	clock  func(minutes int) excel.Cell
}

var layouts = []layout{
	{
		header: []string{"Att. Date", "In Time", "Out Time", "Status", "Punch Records"},
		date:   0, in: 1, out: 2, status: 3, punch: 4,
		encode: serialDate,
		clock:  dayFraction,
	},
	{
		header: []string{"S. No", "Date", "Shift", "InTime", "OutTime", "Punch Records", "Status"},
		date:   1, in: 3, out: 4, status: 6, punch: 5,
		encode: func(t time.Time) excel.Cell { return excel.Str(t.Format("2006-01-02")) },
		clock:  func(m int) excel.Cell { return excel.Str(fmt.Sprintf("%02d:%02d", m/60, m%60)) },
	},
	{
		header: []string{"Date", "Status", "Out Time", "In Time"},
		date:   0, in: 3, out: 2, status: 1, punch: -1,
		encode: func(t time.Time) excel.Cell { return excel.Str(t.Format("02-Jan-2006")) },
		clock:  meridiem,
	},
}

// Generate builds a synthetic export. Every generated day row is one the
// scanner accepts, so a run over it yields Employees*Days records.
func Generate(opts Options) *excel.Workbook {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed*31+7))

	wb := &excel.Workbook{}
	for i := range opts.Employees {
		if i%EmployeesPerSheet == 0 {
			wb.Sheets = append(wb.Sheets, excel.Sheet{Name: fmt.Sprintf("Unit %d", len(wb.Sheets)+1)})
		}
		sheet := &wb.Sheets[len(wb.Sheets)-1]

		code := fmt.Sprintf("%d", 101+i)
		sheet.Rows = append(sheet.Rows, employeeBlock(rng, i, code, faker.Name(), opts)...)
	}

	return wb
}

func employeeBlock(rng *rand.Rand, i int, code, name string, opts Options) []excel.Row {
	var rows []excel.Row

	if i%2 == 0 {
		rows = append(rows,
			excel.Row{excel.Str("Emp. Code"), excel.Str(":"), excel.Str(code), excel.Blank(), excel.Str("Emp Name"), excel.Str(":"), excel.Str(name)},
			excel.Row{excel.Str("Department: " + departments[i%len(departments)])},
		)
	} else {
		rows = append(rows, excel.Row{excel.Str("Employee Code: " + code), excel.Blank(), excel.Str("Employee Name - " + name)})
	}

	l := layouts[i%len(layouts)]
	header := make(excel.Row, len(l.header))
	for c, h := range l.header {
		header[c] = excel.Str(h)
	}
	rows = append(rows, header)

	for d := range opts.Days {
		rows = append(rows, dayRow(rng, l, opts.Start.AddDate(0, 0, d), d))
	}

	return append(rows, nil)
}

func dayRow(rng *rand.Rand, l layout, day time.Time, n int) excel.Row {
	row := make(excel.Row, len(l.header))
	if l.header[0] == "S. No" {
		row[0] = excel.Num(float64(n + 1))
	}
	row[l.date] = l.encode(day)

	if day.Weekday() == time.Sunday {
		row[l.status] = excel.Str("WO")
		return row
	}

	switch p := rng.IntN(100); {
	case p < 8:
		row[l.status] = excel.Str("A")
		return row
	case p < 12:
		row[l.status] = excel.Str("PH")
		return row
	default:
		in := 9*60 + rng.IntN(45)
		row[l.status] = excel.Str("P")
		row[l.in] = l.clock(in)
		punches := fmt.Sprintf("%02d:%02d(in)", in/60, in%60)

		if p >= 20 {
			out := 17*60 + 30 + rng.IntN(90)
			row[l.out] = l.clock(out)
			punches += fmt.Sprintf(", %02d:%02d(out)", out/60, out%60)
		}
		if l.punch >= 0 {
			row[l.punch] = excel.Str(punches)
		}
		return row
	}
}

// serialDate encodes a day as a spreadsheet serial (days since 1899-12-30).
func serialDate(t time.Time) excel.Cell {
	return excel.Num(float64(t.Unix())/86400 + 25569)
}

func dayFraction(minutes int) excel.Cell {
	return excel.Num(float64(minutes) / (24 * 60))
}

func meridiem(minutes int) excel.Cell {
	h, m := minutes/60, minutes%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	if h > 12 {
		h -= 12
	}
	return excel.Str(fmt.Sprintf("%d:%02d %s", h, m, suffix))
}

// GenerateBytes builds a synthetic export and serialises it as xlsx.
func GenerateBytes(opts Options) ([]byte, error) {
	wb := Generate(opts)

	out := &excel.OutputWorkbook{FileName: "sample_export.xlsx"}
	for _, s := range wb.Sheets {
		sheet := excel.OutputSheet{Name: s.Name}
		for _, row := range s.Rows {
			cells := make([]excel.StyledCell, len(row))
			for c, v := range row {
				cells[c] = excel.StyledCell{Value: v}
			}
			sheet.Rows = append(sheet.Rows, cells)
		}
		out.Sheets = append(out.Sheets, sheet)
	}

	return excel.WriteBytes(out)
}
