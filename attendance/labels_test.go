package attendance

import (
	"testing"

	"github.com/orayew2002/rast-attendance/excel"
	"github.com/stretchr/testify/assert"
)

func TestHeaderField(t *testing.T) {
	labels := DefaultLabels()

	tests := []struct {
		text string
		want Field
	}{
		{"Att. Date", FieldDate},
		{"ATT DATE", FieldDate},
		{"date", FieldDate},
		{"In Time", FieldInTime},
		{"InTime", FieldInTime},
		{"Out Time", FieldOutTime},
		{"status", FieldStatus},
		{"Punch Records", FieldPunch},
		{"Shift", FieldShift},
		{"S. No", FieldShift},
		{"Shift In Time", FieldShift},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := labels.HeaderField(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}

	_, ok := labels.HeaderField("Remarks")
	assert.False(t, ok)
}

func TestHeaderFieldFirstMatchWins(t *testing.T) {
	labels := NewLabels()
	labels.RegisterHeader(FieldStatus, func(text string) bool { return text == "Status" })
	labels.RegisterHeader(FieldPunch, func(string) bool { return true })

	got, _ := labels.HeaderField("Status")
	assert.Equal(t, FieldStatus, got)

	got, _ = labels.HeaderField("Anything")
	assert.Equal(t, FieldPunch, got)
}

func TestMetaValue(t *testing.T) {
	labels := DefaultLabels()

	tests := []struct {
		name   string
		field  Field
		row    excel.Row
		col    int
		value  string
		inline bool
	}{
		{
			name:  "inline colon",
			field: FieldEmpCode,
			row:   excel.Row{excel.Str("Emp Code : E-101")},
			value: "E-101", inline: true,
		},
		{
			name:  "inline dash",
			field: FieldEmpName,
			row:   excel.Row{excel.Str("Employee Name - Mary-Ann Lee")},
			value: "Mary-Ann Lee", inline: true,
		},
		{
			name:  "separator cell then value",
			field: FieldEmpCode,
			row:   excel.Row{excel.Str("Emp. Code"), excel.Str(":"), excel.Num(1001)},
			value: "1001",
		},
		{
			name:  "value with leading separator",
			field: FieldEmpName,
			row:   excel.Row{excel.Blank(), excel.Str("Emp Name"), excel.Str(": John")},
			col:   1,
			value: "John",
		},
		{
			name:  "department abbreviation",
			field: FieldDepartment,
			row:   excel.Row{excel.Str("Dept. - Stores")},
			value: "Stores", inline: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, inline, ok := labels.MetaValue(tt.field, tt.row, tt.col)
			assert.True(t, ok)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.inline, inline)
		})
	}
}

func TestMetaValueMissing(t *testing.T) {
	labels := DefaultLabels()

	_, _, ok := labels.MetaValue(FieldEmpCode, excel.Row{excel.Str("Emp Code"), excel.Str(":")}, 0)
	assert.False(t, ok, "label without a value")

	_, _, ok = labels.MetaValue(FieldEmpCode, excel.Row{excel.Str("Emp Name"), excel.Str("X")}, 0)
	assert.False(t, ok, "other label")

	_, _, ok = labels.MetaValue(FieldEmpCode, excel.Row{excel.Blank()}, 0)
	assert.False(t, ok)
}
