package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// StyledCell is one output cell: a value plus its presentation.
type StyledCell struct {
	Value Cell
	Style Style
}

// OutputSheet is a worksheet to be written: ordered rows of styled cells
// and optional column width hints (index = column).
type OutputSheet struct {
	Name      string
	Rows      [][]StyledCell
	ColWidths []float64
}

// OutputWorkbook is a named output file made of one or more sheets.
type OutputWorkbook struct {
	FileName string
	Sheets   []OutputSheet
}

// WriteBytes serialises wb into an xlsx container and returns it as bytes.
func WriteBytes(wb *OutputWorkbook) ([]byte, error) {
	f, err := build(wb)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile saves wb as dir/wb.FileName and returns the written path.
func WriteFile(wb *OutputWorkbook, dir string) (string, error) {
	data, err := WriteBytes(wb)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, wb.FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	return path, nil
}

func build(wb *OutputWorkbook) (*excelize.File, error) {
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", wb.FileName)
	}

	f := excelize.NewFile()
	sm := NewStyleManager(f)

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sm, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}

	return f, nil
}

func writeSheet(f *excelize.File, sm *StyleManager, sheet OutputSheet) error {
	for r, row := range sheet.Rows {
		for c, sc := range row {
			cell := CellName(r, c)
			if err := setValue(f, sheet.Name, cell, sc.Value); err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}

			styleID, err := sm.ID(sc.Style)
			if err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheet.Name, cell, cell, styleID); err != nil {
				return fmt.Errorf("set style %s: %w", cell, err)
			}
		}
	}

	for col, w := range sheet.ColWidths {
		name := IndexToColumn(col)
		if err := f.SetColWidth(sheet.Name, name, name, w); err != nil {
			return fmt.Errorf("col %s width: %w", name, err)
		}
	}

	return nil
}

func setValue(f *excelize.File, sheet, cell string, v Cell) error {
	switch v.Kind {
	case KindNumber:
		return f.SetCellFloat(sheet, cell, v.Num, -1, 64)
	case KindText:
		return f.SetCellStr(sheet, cell, v.Str)
	default:
		return nil
	}
}
