package report

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/orayew2002/rast-attendance/domain"
)

// LedgerFileName is the default name of the flat CSV ledger.
const LedgerFileName = "Attendance_Ledger.csv"

type ledgerLine struct {
	EmpCode           string `csv:"emp_code"`
	EmpName           string `csv:"emp_name"`
	Department        string `csv:"department"`
	Date              string `csv:"att_date"`
	InTime            string `csv:"in_time"`
	OutTime           string `csv:"out_time"`
	Status            string `csv:"status"`
	PunchRecords      string `csv:"punch_records"`
	TotalWorkingHours string `csv:"total_working_hours"`
	MissingOutPunch   bool   `csv:"missing_out_punch"`
}

// LedgerCSV renders every record of every group as one CSV line, groups in the
// order given.
func LedgerCSV(groups []domain.EmployeeGroup) ([]byte, error) {
	lines := make([]*ledgerLine, 0)
	for _, g := range groups {
		for _, r := range g.Records {
			line := &ledgerLine{
				EmpCode:         r.EmpCode,
				EmpName:         r.EmpName,
				Department:      g.Department,
				Date:            r.Date,
				InTime:          r.InTime,
				OutTime:         r.OutTime,
				Status:          r.Status,
				PunchRecords:    r.PunchRecords,
				MissingOutPunch: r.MissingOutPunch(),
			}
			if r.TotalWorkingHours.Valid {
				line.TotalWorkingHours = r.TotalWorkingHours.Decimal.StringFixed(2)
			}
			lines = append(lines, line)
		}
	}

	data, err := gocsv.MarshalBytes(&lines)
	if err != nil {
		return nil, fmt.Errorf("marshal ledger csv: %w", err)
	}
	return data, nil
}
