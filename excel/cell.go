package excel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellName converts 0-based row and column indices to an Excel cell reference (e.g. 0,0 → "A1").
func CellName(row, col int) string {
	return fmt.Sprintf("%s%d", IndexToColumn(col), row+1)
}

// IndexToColumn converts a 0-based column index to Excel column letters (0→A, 25→Z, 26→AA).
func IndexToColumn(n int) string {
	result := ""
	for n >= 0 {
		result = string(rune('A'+(n%26))) + result
		n = n/26 - 1
	}
	return result
}

// Kind tags the value held by a Cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
)

// Cell is a single grid value: empty, a number or a piece of text.
type Cell struct {
	Kind Kind
	Num  float64
	Str  string
}

// Blank returns an empty cell.
func Blank() Cell { return Cell{} }

// Num returns a numeric cell.
func Num(v float64) Cell { return Cell{Kind: KindNumber, Num: v} }

// Str returns a text cell. An empty string yields an empty cell.
func Str(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: KindText, Str: s}
}

// IsNumber reports whether c holds a number.
func (c Cell) IsNumber() bool { return c.Kind == KindNumber }

// IsBlank reports whether c is empty or holds only whitespace.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case KindNumber:
		return false
	case KindText:
		return strings.TrimSpace(c.Str) == ""
	default:
		return true
	}
}

// String renders the cell the way it would appear as plain text:
// numbers in their shortest decimal form (1001, 0.375), text unchanged.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindText:
		return c.Str
	default:
		return ""
	}
}

// Trimmed is String with surrounding whitespace removed.
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}

// Row is one worksheet row. Rows may have different lengths.
type Row []Cell

// At returns the cell at col, or a blank cell when col is out of range.
func (r Row) At(col int) Cell {
	if col < 0 || col >= len(r) {
		return Blank()
	}
	return r[col]
}

// Sheet is a named 2-D grid of cells.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// classifyText turns a textual cell value into a Number when it parses as a float,
// otherwise into Text. Used by decoders that only expose formatted strings.
func classifyText(value string) Cell {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Blank()
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Str(value)
	}
	return Num(v)
}
