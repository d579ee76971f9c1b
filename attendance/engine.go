package attendance

import (
	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
)

// Engine scans workbooks into attendance results. It holds no per-run state,
// so one Engine can process any number of workbooks.
type Engine struct {
	scanner *Scanner
}

// New creates an Engine with the default label rules.
func New() *Engine {
	return NewWithLabels(DefaultLabels())
}

// NewWithLabels creates an Engine with custom label rules.
func NewWithLabels(labels *Labels) *Engine {
	return &Engine{scanner: NewScanner(labels)}
}

// Process scans every sheet of wb in order and aggregates the accepted records.
// It returns domain.ErrEmptyResult when no employee group was produced.
func (e *Engine) Process(wb *excel.Workbook) (*domain.Result, error) {
	ledger := NewLedger()

	for _, sheet := range wb.Sheets {
		e.scanner.ScanSheet(sheet, ledger.Add)
	}

	if ledger.Len() == 0 {
		return nil, domain.ErrEmptyResult
	}

	return ledger.Finalize(), nil
}
