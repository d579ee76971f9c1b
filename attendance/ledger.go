package attendance

import (
	"slices"

	"github.com/orayew2002/rast-attendance/domain"
	"github.com/shopspring/decimal"
)

// Ledger accumulates daily records per employee code, keeping first-seen order.
type Ledger struct {
	order  []string
	groups map[string]*domain.EmployeeGroup
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{groups: make(map[string]*domain.EmployeeGroup)}
}

// Add appends rec to its employee's group, creating the group on first use.
// The group takes its name from the first record and its department from identity.
func (l *Ledger) Add(identity domain.EmployeeIdentity, rec domain.DailyRecord) {
	g, ok := l.groups[rec.EmpCode]
	if !ok {
		g = &domain.EmployeeGroup{
			Code:       rec.EmpCode,
			Name:       rec.EmpName,
			Department: identity.Department,
		}
		l.groups[rec.EmpCode] = g
		l.order = append(l.order, rec.EmpCode)
	}
	if g.Department == "" {
		g.Department = identity.Department
	}
	g.Records = append(g.Records, rec)
}

// Len returns the number of employee groups.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Finalize computes every group's counts and hour totals in one pass over its
// records and returns the groups in first-seen order with run statistics.
func (l *Ledger) Finalize() *domain.Result {
	result := &domain.Result{Groups: make([]domain.EmployeeGroup, 0, len(l.order))}

	total := decimal.Zero
	for _, code := range l.order {
		g := *l.groups[code]
		g.Records = slices.Clone(g.Records)
		summarize(&g)

		total = total.Add(g.TotalWorkingHours)
		result.Stats.TotalRecords += len(g.Records)
		result.Groups = append(result.Groups, g)
	}

	result.Stats.TotalEmployees = len(result.Groups)
	result.Stats.TotalHours = total
	return result
}

// summarize recounts g from its records. Present and absent are not exclusive:
// a status matching both rules is counted in both.
func summarize(g *domain.EmployeeGroup) {
	g.AbsentDays, g.PresentDays, g.HolidayDays, g.WeekOffDays = 0, 0, 0, 0
	g.TotalWorkingHours = decimal.Zero

	for _, r := range g.Records {
		worked := false
		if r.TotalWorkingHours.Valid {
			g.TotalWorkingHours = g.TotalWorkingHours.Add(r.TotalWorkingHours.Decimal)
			worked = r.TotalWorkingHours.Decimal.IsPositive()
		}

		status := ClassifyStatus(r.Status)
		if status.Absent {
			g.AbsentDays++
		}
		if status.Present || worked {
			g.PresentDays++
		}
		if status.WeekOff {
			g.WeekOffDays++
		}
		if status.Holiday {
			g.HolidayDays++
		}
	}
}
