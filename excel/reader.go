package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ReadFile decodes the spreadsheet at path into a Workbook.
func ReadFile(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ReadBytes(data, filepath.Base(path))
}

// ReadBytes decodes raw spreadsheet bytes into a Workbook. The filename extension
// selects the decoder: .xls (BIFF), .csv, anything else is treated as xlsx.
func ReadBytes(data []byte, filename string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".csv":
		return readCSV(data, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	default:
		return readXLSX(data)
	}
}

func readXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %q: get rows: %w", name, err)
		}

		sheet := Sheet{Name: name, Rows: make([]Row, len(rows))}
		for r, values := range rows {
			row := make(Row, len(values))
			for c, value := range values {
				if value == "" {
					continue
				}
				row[c] = xlsxCell(f, name, r, c, value)
			}
			sheet.Rows[r] = row
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

// xlsxCell uses the stored cell type so that text such as "0012" stays text,
// while numbers, dates and times arrive as their raw serial value.
func xlsxCell(f *excelize.File, sheet string, row, col int, value string) Cell {
	typ, err := f.GetCellType(sheet, CellName(row, col))
	if err != nil {
		return classifyText(value)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError:
		return Str(value)
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return Num(v)
	}
	return Str(value)
}

// xlsMaxCols is the BIFF8 column limit.
const xlsMaxCols = 256

// xlsFormula is what the decoder returns for formula cells, whose cached result
// it does not expose.
const xlsFormula = "FormulaCol"

func readXLS(data []byte) (wb *Workbook, err error) {
	// The decoder indexes its own structures without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("open xls: %v", r)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if book == nil {
		return nil, fmt.Errorf("open xls: no workbook stream")
	}
	rawNumberFormats(book)

	wb = &Workbook{}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}

		sheet := Sheet{Name: ws.Name, Rows: make([]Row, 0, int(ws.MaxRow)+1)}
		for r := 0; r <= int(ws.MaxRow); r++ {
			sheet.Rows = append(sheet.Rows, xlsCells(xlsRow(ws, r)))
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("open xls: no worksheet found")
	}

	return wb, nil
}

// rawNumberFormats resets every cell style to the General format. The decoder
// renders built-in date formats as "2006.01" and custom formats as RFC3339
// text; General cells come back as the stored serial, like the xlsx path.
func rawNumberFormats(book *xls.WorkBook) {
	for _, xf := range book.Xfs {
		switch x := xf.(type) {
		case *xls.Xf8:
			x.Format = 0
		case *xls.Xf5:
			x.Format = 0
		}
	}
}

// xlsRow returns row i of ws, or nil when the sheet holds no records for it.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

// xlsCells converts src up to its last non-empty cell. Rows stored without a
// ROW record report no column range and are read up to the column limit.
func xlsCells(src *xls.Row) Row {
	if src == nil {
		return nil
	}

	width := src.LastCol()
	if width <= 0 || width > xlsMaxCols {
		width = xlsMaxCols
	}

	row := make(Row, width)
	last := -1
	for c := 0; c < width; c++ {
		row[c] = xlsCell(src.Col(c))
		if row[c].Kind != KindEmpty {
			last = c
		}
	}
	return row[:last+1]
}

// xlsCell types one decoded value. The decoder prints numbers in their
// shortest form, so numeric-looking text in any other form ("0012", "1e3")
// stays text.
func xlsCell(value string) Cell {
	if value == xlsFormula {
		return Blank()
	}
	if v, err := strconv.ParseFloat(value, 64); err == nil && strconv.FormatFloat(v, 'f', -1, 64) == value {
		return Num(v)
	}
	return Str(value)
}

func readCSV(data []byte, name string) (*Workbook, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	sheet := Sheet{Name: name}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		row := make(Row, len(record))
		for c, value := range record {
			row[c] = classifyText(value)
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return &Workbook{Sheets: []Sheet{sheet}}, nil
}
