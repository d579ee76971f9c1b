package attendance

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/orayew2002/rast-attendance/excel"
	"github.com/xuri/excelize/v2"
)

// DateLayout is the output form of every attendance date.
const DateLayout = "02-Jan-2006"

// dateLayouts are the textual date forms seen in machine exports, tried in order.
// Day-first numeric forms (15/03/2024) collide with the US form and stay as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
}

// timePat captures H[:.]MM, optional :SS and an optional AM/PM suffix.
var timePat = regexp.MustCompile(`^(\d{1,2})[:.](\d{2})(?:\s*:(\d{2}))?(?:\s*([AaPp][Mm]))?`)

// ParseDate normalises a date cell to DD-Mon-YYYY. Numeric cells are spreadsheet
// serials; text is matched against known layouts. Anything else comes back as
// the cell text unchanged.
func ParseDate(c excel.Cell) string {
	switch c.Kind {
	case excel.KindNumber:
		// The time of day is dropped before conversion, which would otherwise
		// round 23:59:59.99 up to the next day.
		t, err := excelize.ExcelDateToTime(math.Floor(c.Num), false)
		if err != nil {
			return c.String()
		}
		return t.Format(DateLayout)
	case excel.KindText:
		text := strings.TrimSpace(c.Str)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t.Format(DateLayout)
			}
		}
		return c.Str
	default:
		return ""
	}
}

// ParseTime converts a time cell to decimal hours. Numeric cells are day
// fractions; text must look like 9:30, 09.30, 21:30:15 or 9:30 PM.
func ParseTime(c excel.Cell) (float64, bool) {
	switch c.Kind {
	case excel.KindNumber:
		return c.Num * 24, true
	case excel.KindText:
		m := timePat.FindStringSubmatch(strings.TrimSpace(c.Str))
		if m == nil {
			return 0, false
		}

		h, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		switch strings.ToLower(m[4]) {
		case "pm":
			if h < 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		return float64(h) + float64(minutes)/60, true
	default:
		return 0, false
	}
}

// FormatTime renders a time cell as HH:MM. Day fractions are rounded to the
// nearest minute; text is passed through unchanged.
func FormatTime(c excel.Cell) string {
	switch c.Kind {
	case excel.KindNumber:
		total := int(math.Round(c.Num * 24 * 60))
		return fmt.Sprintf("%02d:%02d", total/60, total%60)
	case excel.KindText:
		return c.Str
	default:
		return ""
	}
}
