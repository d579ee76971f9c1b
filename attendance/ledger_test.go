package attendance

import (
	"testing"

	"github.com/orayew2002/rast-attendance/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(code, name, status, hours string) domain.DailyRecord {
	r := domain.DailyRecord{EmpCode: code, EmpName: name, Status: status}
	if hours != "" {
		r.TotalWorkingHours = decimal.NewNullDecimal(decimal.RequireFromString(hours))
	}
	return r
}

func TestLedgerFinalize(t *testing.T) {
	l := NewLedger()

	l.Add(domain.EmployeeIdentity{Code: "E2"}, record("E2", "BETA", "P", "8"))
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "P", "9.5"))
	l.Add(domain.EmployeeIdentity{Code: "E1", Department: "Stores"}, record("E1", "ALPHA RENAMED", "", "8"))
	l.Add(domain.EmployeeIdentity{Code: "E1", Department: "Other"}, record("E1", "ALPHA", "A", ""))
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "WO", ""))
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "PH", ""))
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "ABSENT/PRESENT", ""))
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "P", "0"))

	assert.Equal(t, 2, l.Len())

	result := l.Finalize()
	require.Len(t, result.Groups, 2)
	assert.Equal(t, "E2", result.Groups[0].Code, "first-seen order")

	e1 := result.Groups[1]
	assert.Equal(t, "ALPHA", e1.Name, "name comes from the first record")
	assert.Equal(t, "Stores", e1.Department, "first non-empty department")
	assert.Len(t, e1.Records, 7)
	assert.Equal(t, 4, e1.PresentDays, "P, worked hours, ABSENT/PRESENT and P")
	assert.Equal(t, 2, e1.AbsentDays)
	assert.Equal(t, 1, e1.WeekOffDays)
	assert.Equal(t, 1, e1.HolidayDays)
	assert.True(t, decimal.RequireFromString("17.5").Equal(e1.TotalWorkingHours))

	assert.Equal(t, 2, result.Stats.TotalEmployees)
	assert.Equal(t, 8, result.Stats.TotalRecords)
	assert.True(t, decimal.RequireFromString("25.5").Equal(result.Stats.TotalHours))
}

func TestLedgerFinalizeIsRepeatable(t *testing.T) {
	l := NewLedger()
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "P", "8"))

	first := l.Finalize()
	second := l.Finalize()

	assert.Equal(t, first.Groups[0].PresentDays, second.Groups[0].PresentDays)
	assert.True(t, first.Stats.TotalHours.Equal(second.Stats.TotalHours))
}

func TestLedgerFinalizeOwnsRecords(t *testing.T) {
	l := NewLedger()
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "P", "8"))
	l.Add(domain.EmployeeIdentity{Code: "E1"}, record("E1", "ALPHA", "A", ""))

	first := l.Finalize()
	first.Groups[0].Records[0].Status = "A"
	first.Groups[0].Records = append(first.Groups[0].Records[:1], record("E1", "ALPHA", "P", "4"))

	second := l.Finalize()
	require.Len(t, second.Groups[0].Records, 2)
	assert.Equal(t, "P", second.Groups[0].Records[0].Status)
	assert.Equal(t, "A", second.Groups[0].Records[1].Status)
	assert.Equal(t, 1, second.Groups[0].PresentDays)
	assert.True(t, decimal.NewFromInt(8).Equal(second.Groups[0].TotalWorkingHours))
}

func TestLedgerEmpty(t *testing.T) {
	result := NewLedger().Finalize()

	assert.Empty(t, result.Groups)
	assert.Zero(t, result.Stats.TotalRecords)
	assert.True(t, result.Stats.TotalHours.IsZero())
}
