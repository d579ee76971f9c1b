package attendance

import (
	"testing"

	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
	"github.com/orayew2002/rast-attendance/sample"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSheetWorkbook() *excel.Workbook {
	return &excel.Workbook{Sheets: []excel.Sheet{
		{Name: "Week 1", Rows: []excel.Row{
			str("Emp Code", "EMP1"),
			str("Emp Name", "Alice"),
			str("Att. Date", "In Time", "Out Time", "Status", "Punch Records"),
			{excel.Num(45366), excel.Num(0.375), excel.Num(0.7708333333), excel.Str("P"), excel.Str("09:00,18:30")},
			{excel.Num(45367), excel.Blank(), excel.Blank(), excel.Str("A")},

			str("Emp Code", "EMP2"),
			str("Date", "In Time", "Out Time", "Status"),
			str("2024-03-15", "09:00", "17:00", "P"),
			str("2024-03-16", "09:00", "", "P"),
		}},
		{Name: "Week 2", Rows: []excel.Row{
			// The sheet starts without an employee, these rows are ignored.
			str("Date", "In Time", "Out Time", "Status"),
			str("2024-03-18", "09:00", "17:00", "P"),

			str("Emp Code", "EMP1"),
			str("Date", "In Time", "Out Time", "Status"),
			str("2024-03-18", "", "", "WO"),
		}},
	}}
}

func TestEngineProcess(t *testing.T) {
	result, err := New().Process(twoSheetWorkbook())
	require.NoError(t, err)

	require.Len(t, result.Groups, 2)

	alice := result.Groups[0]
	assert.Equal(t, "EMP1", alice.Code)
	assert.Equal(t, "ALICE", alice.Name)
	assert.Len(t, alice.Records, 3, "records from both sheets")
	assert.Equal(t, 1, alice.PresentDays)
	assert.Equal(t, 1, alice.AbsentDays)
	assert.Equal(t, 1, alice.WeekOffDays)
	assert.True(t, decimal.RequireFromString("9.5").Equal(alice.TotalWorkingHours))

	bob := result.Groups[1]
	assert.Equal(t, "EMP2", bob.Code)
	assert.Equal(t, domain.UnknownName, bob.Name)
	assert.Len(t, bob.Records, 2)
	assert.Equal(t, 2, bob.PresentDays)
	assert.True(t, decimal.NewFromInt(8).Equal(bob.TotalWorkingHours))
	assert.True(t, bob.Records[1].MissingOutPunch())

	assert.Equal(t, 2, result.Stats.TotalEmployees)
	assert.Equal(t, 5, result.Stats.TotalRecords)
	assert.True(t, decimal.RequireFromString("17.5").Equal(result.Stats.TotalHours))
}

func TestEngineProcessIsIdempotent(t *testing.T) {
	engine := New()

	first, err := engine.Process(twoSheetWorkbook())
	require.NoError(t, err)
	second, err := engine.Process(twoSheetWorkbook())
	require.NoError(t, err)

	assert.Equal(t, first.Stats.TotalRecords, second.Stats.TotalRecords)
	assert.True(t, first.Stats.TotalHours.Equal(second.Stats.TotalHours))
	require.Len(t, second.Groups, len(first.Groups))
	for i := range first.Groups {
		assert.Equal(t, first.Groups[i].Records, second.Groups[i].Records)
	}
}

func TestEngineProcessEmpty(t *testing.T) {
	_, err := New().Process(&excel.Workbook{})
	assert.ErrorIs(t, err, domain.ErrEmptyResult)

	_, err = New().Process(&excel.Workbook{Sheets: []excel.Sheet{{
		Name: "Noise",
		Rows: []excel.Row{
			str("Date", "In Time", "Out Time", "Status"),
			str("2024-03-18", "09:00", "17:00", "P"),
		},
	}}})
	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}

func TestEngineProcessSample(t *testing.T) {
	opts := sample.Options{Employees: 7, Days: 10}

	result, err := New().Process(sample.Generate(opts))
	require.NoError(t, err)
	assert.Equal(t, 7, result.Stats.TotalEmployees)
	assert.Equal(t, 70, result.Stats.TotalRecords)

	data, err := sample.GenerateBytes(opts)
	require.NoError(t, err)
	wb, err := excel.ReadBytes(data, "sample.xlsx")
	require.NoError(t, err)

	decoded, err := New().Process(wb)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.TotalRecords, decoded.Stats.TotalRecords)
	assert.True(t, result.Stats.TotalHours.Equal(decoded.Stats.TotalHours))

	for i, g := range decoded.Groups {
		assert.Equal(t, result.Groups[i].Code, g.Code)
		assert.Equal(t, result.Groups[i].PresentDays, g.PresentDays)
	}
}

func TestEngineProcessXLSExport(t *testing.T) {
	wb, err := excel.ReadFile("../excel/testdata/attendance.xls")
	require.NoError(t, err)

	result, err := New().Process(wb)
	require.NoError(t, err)
	require.Len(t, result.Groups, 1)

	g := result.Groups[0]
	assert.Equal(t, "0012", g.Code)
	assert.Equal(t, "AYLAR BERDIYEVA", g.Name)
	require.Len(t, g.Records, 2)

	worked := g.Records[0]
	assert.Equal(t, "15-Mar-2024", worked.Date)
	assert.Equal(t, "09:00", worked.InTime)
	assert.Equal(t, "18:30", worked.OutTime)
	require.True(t, worked.TotalWorkingHours.Valid)
	assert.True(t, decimal.RequireFromString("9.5").Equal(worked.TotalWorkingHours.Decimal))

	assert.Equal(t, "16-Mar-2024", g.Records[1].Date)
	assert.Equal(t, 1, g.PresentDays)
	assert.Equal(t, 1, g.AbsentDays)
}
