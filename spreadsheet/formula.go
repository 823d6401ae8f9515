package spreadsheet

import (
	"sort"
	"strconv"

	"github.com/cellgraph/sheet/spreadsheet/lang"
)

// CellValue is the result of evaluating a cell: a number, a string, or
// a FormulaError. It carries no type tag beyond its dynamic Go type.
type CellValue interface{}

// sheetView is the narrow read surface Formula.Evaluate needs from
// Sheet. A separate interface keeps formula.go from depending on
// Sheet's storage details.
type sheetView interface {
	valueAt(Position) (CellValue, bool)
}

// Formula wraps a parsed Expression and adapts the grammar's position-
// agnostic evaluation contract to Sheet's lookup coercion rules.
type Formula struct {
	expr lang.Expression
}

// NewFormula parses the text following the leading '=' sign. A parse
// failure is reported as *ParsingError.
func NewFormula(source string) (*Formula, error) {
	expr, err := lang.Parse(source)
	if err != nil {
		return nil, &ParsingError{inner: err}
	}
	return &Formula{expr: expr}, nil
}

// Evaluate runs the expression against sheet, applying the lookup
// coercion rules: an absent cell reads as 0, an empty string reads as
// 0, a numeric-looking string reads as its number, any other string
// raises Value, and an upstream FormulaError re-raises unchanged.
func (f *Formula) Evaluate(sheet sheetView) CellValue {
	lookup := func(ref lang.CellRef) (float64, error) {
		pos := Position{Row: ref.Row, Col: ref.Col}
		if !pos.IsValid() {
			return 0, &lang.FormulaError{Category: lang.ErrRef}
		}
		value, present := sheet.valueAt(pos)
		if !present {
			return 0, nil
		}
		switch v := value.(type) {
		case float64:
			return v, nil
		case string:
			if v == "" {
				return 0, nil
			}
			if num, err := strconv.ParseFloat(v, 64); err == nil {
				return num, nil
			}
			return 0, &lang.FormulaError{Category: lang.ErrValue}
		case FormulaError:
			return 0, &lang.FormulaError{Category: lang.ErrorCategory(v.Category)}
		default:
			return 0, &lang.FormulaError{Category: lang.ErrValue}
		}
	}

	result, err := f.expr.Evaluate(lookup)
	if err != nil {
		if fe, ok := err.(*lang.FormulaError); ok {
			return FormulaError{Category: ErrorCategory(fe.Category)}
		}
		return FormulaError{Category: ErrValue}
	}
	return result
}

// GetExpression returns the canonical printed form of the expression
// tree. Two source strings that parse to the same tree produce the
// same output here.
func (f *Formula) GetExpression() string {
	return f.expr.String()
}

// GetReferencedCells returns the valid positions the expression reads,
// de-duplicated and sorted ascending. Invalid positions are dropped
// from this list but still raise Ref at evaluation time.
func (f *Formula) GetReferencedCells() []Position {
	refs := f.expr.References()
	seen := make(map[Position]struct{}, len(refs))
	var positions []Position
	for _, ref := range refs {
		pos := Position{Row: ref.Row, Col: ref.Col}
		if !pos.IsValid() {
			continue
		}
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })
	return positions
}

// ParsingError wraps a syntax error from the formula language layer.
type ParsingError struct {
	inner error
}

func (e *ParsingError) Error() string { return e.inner.Error() }
func (e *ParsingError) Unwrap() error { return e.inner }
