// Package render styles a Sheet's printable region for terminal
// output, on top of the raw tab-separated text the engine itself
// produces.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cellgraph/sheet/spreadsheet"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	errorCellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#c53030", Dark: "#ff6b6b"})

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Table renders sh's populated region as a lipgloss grid with a
// column-letter header row and error cells rendered using tokens and
// highlighted.
func Table(sh *spreadsheet.Sheet, tokens spreadsheet.ErrorTokens) string {
	size := sh.GetPrintableSize()
	if size.Rows == 0 || size.Cols == 0 {
		return ""
	}

	rows := make([]string, 0, size.Rows+1)
	rows = append(rows, renderHeader(size.Cols))

	for row := 0; row < size.Rows; row++ {
		fields := make([]string, size.Cols)
		for col := 0; col < size.Cols; col++ {
			pos := spreadsheet.Position{Row: row, Col: col}
			cell, _ := sh.GetCell(pos)
			fields[col] = renderCell(sh, cell, tokens)
		}
		rows = append(rows, joinColumns(fields))
	}

	return strings.Join(rows, "\n")
}

func renderHeader(cols int) string {
	fields := make([]string, cols)
	for col := 0; col < cols; col++ {
		fields[col] = headerStyle.Render(columnLetters(col))
	}
	return joinColumns(fields)
}

// columnLetters renders a 0-based column index as A, B, ..., Z, AA, ...
func columnLetters(col int) string {
	var letters []byte
	for {
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col = col/26 - 1
		if col < 0 {
			break
		}
	}
	return string(letters)
}

func renderCell(sh *spreadsheet.Sheet, cell *spreadsheet.Cell, tokens spreadsheet.ErrorTokens) string {
	if cell == nil {
		return cellStyle.Render("")
	}
	value := cell.GetValue(sh)
	if fe, ok := value.(spreadsheet.FormulaError); ok {
		return errorCellStyle.Render(fe.Render(tokens))
	}
	return cellStyle.Render(stringify(value))
}

func stringify(v spreadsheet.CellValue) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return ""
	}
}

func joinColumns(fields []string) string {
	return strings.Join(fields, dividerStyle.Render("|"))
}
