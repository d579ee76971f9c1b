package domain

import "github.com/shopspring/decimal"

// UnknownName is used for employees whose name never appeared in the export.
const UnknownName = "UNKNOWN"

// EmployeeIdentity is the employee currently being read from a sheet.
// Code is empty while no employee block has been seen.
type EmployeeIdentity struct {
	Code       string
	Name       string
	Department string
}

// DisplayName returns Name, or UnknownName when it was never observed.
func (e EmployeeIdentity) DisplayName() string {
	if e.Name == "" {
		return UnknownName
	}
	return e.Name
}

// DailyRecord is one attendance day for one employee.
//
// TotalWorkingHours is valid only when both in and out times resolved to hours.
type DailyRecord struct {
	EmpCode           string              `json:"emp_code"`
	EmpName           string              `json:"emp_name"`
	Date              string              `json:"date"`
	InTime            string              `json:"in_time"`
	OutTime           string              `json:"out_time"`
	Status            string              `json:"status"`
	PunchRecords      string              `json:"punch_records"`
	TotalWorkingHours decimal.NullDecimal `json:"total_working_hours"`
}

// MissingOutPunch reports an incomplete punch pair: an in-time without an out-time.
// Rows without an in-time (absent, holiday, week-off) are never flagged.
func (r DailyRecord) MissingOutPunch() bool {
	return r.InTime != "" && r.OutTime == ""
}

// EmployeeGroup holds every record of one employee plus the derived counts.
type EmployeeGroup struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Department        string          `json:"department"`
	Records           []DailyRecord   `json:"records"`
	AbsentDays        int             `json:"absent_days"`
	PresentDays       int             `json:"present_days"`
	HolidayDays       int             `json:"holiday_days"`
	WeekOffDays       int             `json:"week_off_days"`
	TotalWorkingHours decimal.Decimal `json:"total_working_hours"`
}

// Stats summarises one processing run.
type Stats struct {
	TotalEmployees int             `json:"total_employees"`
	TotalRecords   int             `json:"total_records"`
	TotalHours     decimal.Decimal `json:"total_hours"`
}

// Result is the outcome of a successful run. Groups keep first-seen order.
type Result struct {
	Groups []EmployeeGroup `json:"groups"`
	Stats  Stats           `json:"stats"`
}

// Group returns the group with the given code.
func (r *Result) Group(code string) (EmployeeGroup, bool) {
	for _, g := range r.Groups {
		if g.Code == code {
			return g, true
		}
	}
	return EmployeeGroup{}, false
}
