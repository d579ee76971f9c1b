package excel

import "github.com/xuri/excelize/v2"

// Style is the presentation of a single output cell. It is comparable so it can
// key the style cache.
type Style struct {
	Bold        bool
	Highlighted bool // yellow fill, marks rows that need attention
	Shaded      bool // grey fill, used for header rows
	Centered    bool
	Left        bool
	Bordered    bool
}

const (
	highlightColor = "FFFF00"
	shadeColor     = "E0E0E0"
)

// StyleManager caches Excel styles so each style is created only once per file.
type StyleManager struct {
	file  *excelize.File
	cache map[Style]int
}

// NewStyleManager creates a style manager bound to the given file.
func NewStyleManager(f *excelize.File) *StyleManager {
	return &StyleManager{file: f, cache: make(map[Style]int)}
}

// ID returns the excelize style ID for s, creating it on first use.
func (sm *StyleManager) ID(s Style) (int, error) {
	if id, ok := sm.cache[s]; ok {
		return id, nil
	}

	id, err := sm.file.NewStyle(s.excelize())
	if err != nil {
		return 0, err
	}

	sm.cache[s] = id
	return id, nil
}

func (s Style) excelize() *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{Family: "Calibri", Size: 11, Bold: s.Bold},
	}

	switch {
	case s.Centered:
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	case s.Left:
		style.Alignment = &excelize.Alignment{Horizontal: "left", Vertical: "center"}
	}

	switch {
	case s.Highlighted:
		style.Fill = solidFill(highlightColor)
	case s.Shaded:
		style.Fill = solidFill(shadeColor)
	}

	if s.Bordered {
		style.Border = thinBorder()
	}

	return style
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
