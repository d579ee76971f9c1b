package processor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/orayew2002/rast-attendance/attendance"
	"github.com/orayew2002/rast-attendance/domain"
	"github.com/orayew2002/rast-attendance/excel"
)

// Processor runs one attendance export through decoding, scanning and aggregation.
type Processor struct {
	engine *attendance.Engine
	logger *slog.Logger
}

// New creates a Processor. A nil logger discards log output.
func New(engine *attendance.Engine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{engine: engine, logger: logger}
}

// ProcessFile reads the export at path and processes it.
func (p *Processor) ProcessFile(path string) (*domain.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ProcessBytes(data, filepath.Base(path))
}

// ProcessBytes decodes raw export bytes and processes every sheet.
// Decoder failures are reported as domain.ErrDecode.
func (p *Processor) ProcessBytes(data []byte, filename string) (*domain.Result, error) {
	wb, err := excel.ReadBytes(data, filename)
	if err != nil {
		p.logger.Error("decode attendance file", "file", filename, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, filename, err)
	}

	return p.Process(wb, filename)
}

// Process scans an already decoded workbook.
func (p *Processor) Process(wb *excel.Workbook, filename string) (*domain.Result, error) {
	result, err := p.engine.Process(wb)
	if err != nil {
		p.logger.Warn("process attendance file", "file", filename, "sheets", len(wb.Sheets), "error", err)
		return nil, fmt.Errorf("process %s: %w", filename, err)
	}

	p.logger.Info("processed attendance file",
		"file", filename,
		"sheets", len(wb.Sheets),
		"employees", result.Stats.TotalEmployees,
		"records", result.Stats.TotalRecords,
		"total_hours", result.Stats.TotalHours.StringFixed(2),
	)

	return result, nil
}
