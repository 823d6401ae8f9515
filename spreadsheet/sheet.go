package spreadsheet

import (
	"io"

	"github.com/google/uuid"
)

// Sheet owns the grid and coordinates cell lifecycle, dependency edge
// updates, cache invalidation, and cycle rejection. It is the only
// exported entry point into the engine.
type Sheet struct {
	SessionID uuid.UUID

	grid      map[Position]*Cell
	extentRow int // one past the highest materialized row
	extentCol int // one past the highest materialized col

	maxRow int // configured addressable rows, <= MaxRows
	maxCol int // configured addressable cols, <= MaxCols

	listeners []func(CellChanged)
}

// CreateSheet constructs an empty Sheet addressable up to the engine's
// full MaxRows x MaxCols, tagged with a fresh session identifier for
// logging and live-view correlation.
func CreateSheet() *Sheet {
	return CreateSheetWithLimits(MaxRows, MaxCols)
}

// CreateSheetWithLimits constructs an empty Sheet whose SetCell/GetCell/
// ClearCell boundary accepts only positions within maxRows x maxCols —
// a caller-supplied ceiling at or below the engine's absolute MaxRows/
// MaxCols, such as the grid size a deployment's config restricts a
// session to. It does not change what a formula's own reference
// evaluation treats as in range: that check is against the engine-wide
// MaxRows/MaxCols regardless of a session's configured ceiling.
func CreateSheetWithLimits(maxRows, maxCols int) *Sheet {
	return &Sheet{
		SessionID: uuid.New(),
		grid:      make(map[Position]*Cell),
		maxRow:    maxRows,
		maxCol:    maxCols,
	}
}

// inBounds reports whether pos is both a globally valid position and
// within this Sheet's configured addressable ceiling.
func (s *Sheet) inBounds(pos Position) bool {
	return pos.IsValid() && pos.Row < s.maxRow && pos.Col < s.maxCol
}

// valueAt implements sheetView for Formula.Evaluate: an absent slot
// reports present=false, which the formula layer treats as 0.
func (s *Sheet) valueAt(pos Position) (CellValue, bool) {
	cell, ok := s.grid[pos]
	if !ok {
		return nil, false
	}
	return cell.GetValue(s), true
}

// SetCell runs the seven-step assignment protocol: reject an invalid
// position, classify the text, materialize missing references as
// Empty, reject a cycle before touching the target cell, swap the impl,
// rewrite edges, invalidate caches, and grow the grid's extent.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !s.inBounds(pos) {
		return &InvalidPositionException{Pos: pos}
	}

	candidate, err := classify(text)
	if err != nil {
		return err
	}
	refs := candidate.referencedCells()

	for _, ref := range refs {
		if _, ok := s.grid[ref]; !ok {
			s.materializeEmpty(ref)
		}
	}

	if hasCycle(s, pos, refs) {
		return &CircularDependencyException{Pos: pos}
	}

	cell, existed := s.grid[pos]
	if !existed {
		cell = newEmptyCell(pos)
		s.grid[pos] = cell
	}

	rewriteEdges(s, cell, refs)
	cell.impl = candidate

	invalidateTransitively(s, cell)
	s.growExtent(pos)
	for _, ref := range refs {
		s.growExtent(ref)
	}

	s.notify(CellChanged{Pos: pos, Value: cell.GetValue(s), Text: cell.GetText()})
	return nil
}

// materializeEmpty creates an Empty placeholder at pos without running
// the full SetCell protocol — it has no references and cannot cycle.
func (s *Sheet) materializeEmpty(pos Position) *Cell {
	cell := newEmptyCell(pos)
	s.grid[pos] = cell
	s.growExtent(pos)
	return cell
}

// GetCell returns the cell at pos, or nil if pos is outside the
// materialized grid. A materialized Empty placeholder is returned like
// any other cell — there is no hidden distinction between a read-only
// and a mutating accessor.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !s.inBounds(pos) {
		return nil, &InvalidPositionException{Pos: pos}
	}
	cell, ok := s.grid[pos]
	if !ok {
		return nil, nil
	}
	return cell, nil
}

// ClearCell demotes the cell at pos to Empty. The slot itself is only
// released once nothing references it; otherwise it stays addressable
// as an Empty placeholder, same as a reference that never materialized
// past Empty.
func (s *Sheet) ClearCell(pos Position) error {
	if !s.inBounds(pos) {
		return &InvalidPositionException{Pos: pos}
	}
	cell, ok := s.grid[pos]
	if !ok {
		return nil
	}
	if err := s.SetCell(pos, ""); err != nil {
		return err
	}
	if !cell.IsReferenced() {
		delete(s.grid, pos)
	}
	return nil
}

// GetPrintableSize returns the smallest bounding rectangle anchored at
// (0, 0) that covers every cell whose GetText is non-empty.
func (s *Sheet) GetPrintableSize() Size {
	size := Size{}
	for pos, cell := range s.grid {
		if cell.GetText() == "" {
			continue
		}
		if pos.Row+1 > size.Rows {
			size.Rows = pos.Row + 1
		}
		if pos.Col+1 > size.Cols {
			size.Cols = pos.Col + 1
		}
	}
	return size
}

// PrintValues writes the printable region's displayed values,
// tab-separated within a row, newline-terminated per row.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printGrid(w, func(c *Cell) string { return renderValue(c.GetValue(s)) })
}

// PrintTexts writes the printable region's source text, tab-separated
// within a row, newline-terminated per row.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printGrid(w, func(c *Cell) string { return c.GetText() })
}

func (s *Sheet) printGrid(w io.Writer, render func(*Cell) string) error {
	size := s.GetPrintableSize()
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if cell, ok := s.grid[Position{Row: row, Col: col}]; ok {
				if _, err := io.WriteString(w, render(cell)); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sheet) growExtent(pos Position) {
	if pos.Row+1 > s.extentRow {
		s.extentRow = pos.Row + 1
	}
	if pos.Col+1 > s.extentCol {
		s.extentCol = pos.Col + 1
	}
}

func renderValue(v CellValue) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatFloat(val)
	case FormulaError:
		return val.String()
	default:
		return ""
	}
}
