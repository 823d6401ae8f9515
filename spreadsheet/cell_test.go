package spreadsheet

import "testing"

func TestClassifyEmpty(t *testing.T) {
	impl, err := classify("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.kind != kindEmpty {
		t.Errorf("got kind %v, want kindEmpty", impl.kind)
	}
}

func TestClassifyText(t *testing.T) {
	impl, err := classify("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.kind != kindText || impl.text != "hello" {
		t.Errorf("got %+v, want text %q", impl, "hello")
	}
}

func TestClassifyBareEqualsIsText(t *testing.T) {
	// a cell whose text is exactly "=" fails the length-2 minimum and
	// is stored as a literal text cell, not a formula.
	impl, err := classify("=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.kind != kindText || impl.text != "=" {
		t.Errorf("got %+v, want literal text \"=\"", impl)
	}
}

func TestClassifyFormula(t *testing.T) {
	impl, err := classify("=1+2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if impl.kind != kindFormula {
		t.Errorf("got kind %v, want kindFormula", impl.kind)
	}
}

func TestClassifyFormulaSyntaxError(t *testing.T) {
	_, err := classify("=1+")
	if _, ok := err.(*FormulaException); !ok {
		t.Errorf("got %T, want *FormulaException", err)
	}
}

func TestTextEscapeCharacter(t *testing.T) {
	cell := newEmptyCell(Position{Row: 0, Col: 0})
	impl, err := classify("'apples")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cell.impl = impl

	if got := cell.GetValue(nil); got != "apples" {
		t.Errorf("GetValue() = %v, want %q", got, "apples")
	}
	if got := cell.GetText(); got != "'apples" {
		t.Errorf("GetText() = %v, want %q", got, "'apples")
	}
}

func TestNewEmptyCellInitializesPosition(t *testing.T) {
	pos := Position{Row: 4, Col: 2}
	cell := newEmptyCell(pos)
	if cell.pos != pos {
		t.Errorf("cell.pos = %+v, want %+v", cell.pos, pos)
	}
}

func TestCellIsReferenced(t *testing.T) {
	cell := newEmptyCell(Position{Row: 0, Col: 0})
	if cell.IsReferenced() {
		t.Error("fresh cell should not be referenced")
	}
	cell.usedBy[Position{Row: 1, Col: 0}] = struct{}{}
	if !cell.IsReferenced() {
		t.Error("cell with a used_by entry should be referenced")
	}
}
