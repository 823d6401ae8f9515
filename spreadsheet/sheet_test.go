package spreadsheet

import (
	"strings"
	"testing"
)

func mustSet(t *testing.T, s *Sheet, pos Position, text string) {
	t.Helper()
	if err := s.SetCell(pos, text); err != nil {
		t.Fatalf("SetCell(%s, %q) failed: %v", pos.ToString(), text, err)
	}
}

func mustGetValue(t *testing.T, s *Sheet, pos Position) CellValue {
	t.Helper()
	cell, err := s.GetCell(pos)
	if err != nil {
		t.Fatalf("GetCell(%s) failed: %v", pos.ToString(), err)
	}
	if cell == nil {
		t.Fatalf("GetCell(%s) = nil, want a materialized cell", pos.ToString())
	}
	return cell.GetValue(s)
}

func pos(a1 string) Position { return FromString(a1) }

// TestEndToEndScenario walks through the canonical sequence of
// assignments: a direct reference, a dependent recompute on upstream
// change, escaped text, an indirect cycle rejection, clearing a
// referenced cell, and error propagation through a chain.
func TestEndToEndScenario(t *testing.T) {
	s := CreateSheet()

	mustSet(t, s, pos("A1"), "2")
	mustSet(t, s, pos("B1"), "=A1+3")
	if got := mustGetValue(t, s, pos("B1")); got != 5.0 {
		t.Fatalf("B1 = %v, want 5", got)
	}

	mustSet(t, s, pos("A1"), "10")
	if got := mustGetValue(t, s, pos("B1")); got != 13.0 {
		t.Fatalf("B1 after A1 change = %v, want 13 (stale cache not invalidated)", got)
	}

	mustSet(t, s, pos("C1"), "'apples")
	if got := mustGetValue(t, s, pos("C1")); got != "apples" {
		t.Fatalf("C1 = %v, want %q", got, "apples")
	}
	cellC1, _ := s.GetCell(pos("C1"))
	if cellC1.GetText() != "'apples" {
		t.Fatalf("C1 text = %q, want %q (escape char preserved)", cellC1.GetText(), "'apples")
	}

	mustSet(t, s, pos("D1"), "=E1")
	mustSet(t, s, pos("E1"), "5")
	err := s.SetCell(pos("E1"), "=D1+1")
	if _, ok := err.(*CircularDependencyException); !ok {
		t.Fatalf("SetCell(E1, \"=D1+1\") = %v, want *CircularDependencyException", err)
	}
	cellE1, _ := s.GetCell(pos("E1"))
	if cellE1.GetText() != "5" {
		t.Fatalf("E1 text after rejected cycle = %q, want unchanged %q", cellE1.GetText(), "5")
	}
	cellD1, _ := s.GetCell(pos("D1"))
	if cellD1.GetText() != "=E1" {
		t.Fatalf("D1 text after E1's rejected cycle = %q, want unchanged %q", cellD1.GetText(), "=E1")
	}

	mustSet(t, s, pos("F1"), "=D1+1")
	if err := s.ClearCell(pos("D1")); err != nil {
		t.Fatalf("ClearCell(D1) failed: %v", err)
	}
	cellD1, err = s.GetCell(pos("D1"))
	if err != nil {
		t.Fatalf("GetCell(D1) after clear failed: %v", err)
	}
	if cellD1 == nil {
		t.Fatal("D1 should remain addressable: it is still referenced by F1")
	}
	if !cellD1.isEmpty() {
		t.Fatalf("D1 should be Empty after clear, got text %q", cellD1.GetText())
	}
	if got := mustGetValue(t, s, pos("F1")); got != 1.0 {
		t.Fatalf("F1 after D1 cleared to empty = %v, want 1 (empty reads as 0)", got)
	}

	mustSet(t, s, pos("G1"), "=1/0")
	mustSet(t, s, pos("H1"), "=G1+1")
	got := mustGetValue(t, s, pos("H1"))
	fe, ok := got.(FormulaError)
	if !ok || fe.Category != ErrDiv0 {
		t.Fatalf("H1 = %v, want a propagated Div0 error", got)
	}
}

func TestCreateSheetWithLimitsRejectsPositionsBeyondCeiling(t *testing.T) {
	s := CreateSheetWithLimits(2, 2)
	mustSet(t, s, pos("A1"), "1")
	mustSet(t, s, pos("B2"), "2")

	err := s.SetCell(pos("C1"), "3")
	if _, ok := err.(*InvalidPositionException); !ok {
		t.Fatalf("SetCell beyond the configured ceiling = %v, want *InvalidPositionException", err)
	}
	if _, err := s.GetCell(pos("A3")); err == nil {
		t.Fatalf("GetCell beyond the configured ceiling should error")
	}
}

func TestSetCellRejectsInvalidPosition(t *testing.T) {
	s := CreateSheet()
	err := s.SetCell(Position{Row: -1, Col: 0}, "1")
	if _, ok := err.(*InvalidPositionException); !ok {
		t.Errorf("got %v, want *InvalidPositionException", err)
	}
}

func TestSetCellDirectSelfReferenceIsCycle(t *testing.T) {
	s := CreateSheet()
	err := s.SetCell(pos("A1"), "=A1")
	if _, ok := err.(*CircularDependencyException); !ok {
		t.Errorf("got %v, want *CircularDependencyException", err)
	}
}

func TestSetCellMaterializesMissingReferences(t *testing.T) {
	s := CreateSheet()
	mustSet(t, s, pos("A1"), "=Z9")
	cell, err := s.GetCell(pos("Z9"))
	if err != nil {
		t.Fatalf("GetCell(Z9) failed: %v", err)
	}
	if cell == nil || !cell.isEmpty() {
		t.Fatalf("Z9 should be materialized as Empty, got %+v", cell)
	}
}

func TestGetCellAbsentReturnsNilNoError(t *testing.T) {
	s := CreateSheet()
	cell, err := s.GetCell(pos("A1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cell != nil {
		t.Fatalf("got %+v, want nil for an untouched position", cell)
	}
}

func TestClearCellReleasesUnreferencedSlot(t *testing.T) {
	s := CreateSheet()
	mustSet(t, s, pos("A1"), "hello")
	if err := s.ClearCell(pos("A1")); err != nil {
		t.Fatalf("ClearCell failed: %v", err)
	}
	cell, err := s.GetCell(pos("A1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cell != nil {
		t.Fatalf("unreferenced cleared cell should be released, got %+v", cell)
	}
}

func TestClearCellOnAbsentPositionIsNoop(t *testing.T) {
	s := CreateSheet()
	if err := s.ClearCell(pos("A1")); err != nil {
		t.Fatalf("clearing an untouched cell should not error: %v", err)
	}
}

func TestCacheInvalidationStopsAtAlreadyUncachedDependent(t *testing.T) {
	s := CreateSheet()
	mustSet(t, s, pos("A1"), "1")
	mustSet(t, s, pos("B1"), "=A1+1")
	mustSet(t, s, pos("C1"), "=B1+1")

	if _, err := s.GetCell(pos("C1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustGetValue(t, s, pos("C1")) // populate B1 and C1 caches

	cellB1, _ := s.GetCell(pos("B1"))
	cellC1, _ := s.GetCell(pos("C1"))
	if !cellB1.hasCache || !cellC1.hasCache {
		t.Fatal("expected both B1 and C1 to be cached before the mutation under test")
	}

	mustSet(t, s, pos("A1"), "2")
	if cellB1.hasCache {
		t.Error("B1's cache should be invalidated when A1 changes")
	}
	if cellC1.hasCache {
		t.Error("C1's cache should be invalidated transitively through B1")
	}
	if got := mustGetValue(t, s, pos("C1")); got != 4.0 {
		t.Errorf("C1 = %v, want 4", got)
	}
}

func TestGetPrintableSizeIgnoresEmptyText(t *testing.T) {
	s := CreateSheet()
	mustSet(t, s, pos("A1"), "x")
	mustSet(t, s, pos("C3"), "y")
	mustSet(t, s, pos("B1"), "=D5") // materializes an Empty placeholder at D5
	size := s.GetPrintableSize()
	if size.Rows != 3 || size.Cols != 3 {
		t.Errorf("GetPrintableSize() = %+v, want {Rows:3 Cols:3}", size)
	}
}

func TestPrintValuesAndTexts(t *testing.T) {
	s := CreateSheet()
	mustSet(t, s, pos("A1"), "2")
	mustSet(t, s, pos("B1"), "=A1+3")

	var values strings.Builder
	if err := s.PrintValues(&values); err != nil {
		t.Fatalf("PrintValues failed: %v", err)
	}
	if got := values.String(); got != "2\t5\n" {
		t.Errorf("PrintValues() = %q, want %q", got, "2\t5\n")
	}

	var texts strings.Builder
	if err := s.PrintTexts(&texts); err != nil {
		t.Fatalf("PrintTexts failed: %v", err)
	}
	if got := texts.String(); got != "2\t=A1+3\n" {
		t.Errorf("PrintTexts() = %q, want %q", got, "2\t=A1+3\n")
	}
}

func TestSubscribeReceivesSynchronousNotifications(t *testing.T) {
	s := CreateSheet()
	var events []CellChanged
	s.Subscribe(func(evt CellChanged) { events = append(events, evt) })

	mustSet(t, s, pos("A1"), "2")
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Pos != pos("A1") || events[0].Value != "2" {
		t.Errorf("got %+v, want Pos=A1 Value=\"2\" (a text cell's value is its string)", events[0])
	}
}
