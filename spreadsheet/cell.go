package spreadsheet

// escapeChar, at the head of a text cell, hides the remainder from
// numeric coercion and from re-interpretation as a formula. It is
// preserved verbatim by GetText.
const escapeChar = '\''

// formulaSign marks the remainder of a cell's text as a formula
// expression. A cell whose text is exactly "=" does not qualify — the
// length-2 minimum rules it out, so it is stored as plain text.
const formulaSign = '='

type cellKind int

const (
	kindEmpty cellKind = iota
	kindText
	kindFormula
)

// cellImpl is the classified, immutable-once-built content of a cell.
// Pattern-match on kind rather than dispatching through an interface —
// there are exactly three shapes and most of them have no behavior.
type cellImpl struct {
	kind    cellKind
	text    string   // kindText: the raw string, escape char included
	formula *Formula // kindFormula: non-nil
}

// classify turns SetCell's text argument into a candidate impl. A
// syntactically invalid formula is reported as *FormulaException; this
// is the only error classify can return.
func classify(text string) (cellImpl, error) {
	switch {
	case text == "":
		return cellImpl{kind: kindEmpty}, nil
	case len(text) >= 2 && text[0] == formulaSign:
		f, err := NewFormula(text[1:])
		if err != nil {
			return cellImpl{}, &FormulaException{inner: err}
		}
		return cellImpl{kind: kindFormula, formula: f}, nil
	default:
		return cellImpl{kind: kindText, text: text}, nil
	}
}

func (impl cellImpl) referencedCells() []Position {
	if impl.kind == kindFormula {
		return impl.formula.GetReferencedCells()
	}
	return nil
}

func (impl cellImpl) getText() string {
	switch impl.kind {
	case kindText:
		return impl.text
	case kindFormula:
		return string(formulaSign) + impl.formula.GetExpression()
	default:
		return ""
	}
}

// Cell is one grid slot: its classified content, the memoized formula
// result (if any), and its dependency edges. uses/used_by are the
// cell's half of the bidirectional dependency graph; the other half
// lives on the cells at the other end of each edge.
type Cell struct {
	pos      Position
	impl     cellImpl
	cache    CellValue
	hasCache bool
	uses     map[Position]struct{}
	usedBy   map[Position]struct{}
}

// newEmptyCell builds a placeholder cell with its position already
// set — a cell's pos field is always assigned at the moment it is
// placed into the grid, never left to default.
func newEmptyCell(pos Position) *Cell {
	return &Cell{
		pos:    pos,
		impl:   cellImpl{kind: kindEmpty},
		uses:   make(map[Position]struct{}),
		usedBy: make(map[Position]struct{}),
	}
}

// GetValue returns the cell's displayed value: empty string for
// Empty, the escape-stripped text for Text, and the cached or freshly
// evaluated result for Formula.
func (c *Cell) GetValue(sheet sheetView) CellValue {
	switch c.impl.kind {
	case kindText:
		s := c.impl.text
		if len(s) > 0 && s[0] == escapeChar {
			return s[1:]
		}
		return s
	case kindFormula:
		if c.hasCache {
			return c.cache
		}
		v := c.impl.formula.Evaluate(sheet)
		c.cache = v
		c.hasCache = true
		return v
	default:
		return ""
	}
}

// GetText returns the cell's source text: what was last passed to
// SetCell, or its canonical form for a formula.
func (c *Cell) GetText() string {
	return c.impl.getText()
}

// GetReferencedCells returns the formula's valid, de-duplicated,
// sorted referenced positions, or nil for Text and Empty cells.
func (c *Cell) GetReferencedCells() []Position {
	return c.impl.referencedCells()
}

// IsReferenced reports whether any other cell's formula names this
// cell's position.
func (c *Cell) IsReferenced() bool {
	return len(c.usedBy) > 0
}

// isEmpty reports whether the cell currently holds the Empty variant.
func (c *Cell) isEmpty() bool {
	return c.impl.kind == kindEmpty
}

func (c *Cell) resetCache() {
	c.cache = nil
	c.hasCache = false
}
