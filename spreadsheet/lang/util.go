package lang

import "strconv"

// decodeCellRef turns "A1"-style text (already upper-cased by the
// lexer) into a 0-based CellRef. It does not check grid bounds — that
// is the owning layer's job, since the parser has no notion of a
// sheet.
func decodeCellRef(text string) (CellRef, bool) {
	i := 0
	for i < len(text) && text[i] >= 'A' && text[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(text) {
		return CellRef{}, false
	}
	col := 0
	for _, c := range text[:i] {
		col = col*26 + int(c-'A'+1)
	}
	col--

	row, err := strconv.Atoi(text[i:])
	if err != nil || row < 1 {
		return CellRef{}, false
	}
	return CellRef{Row: row - 1, Col: col}, true
}

// formatNumber renders a literal the way the parser canonicalizes it:
// integral values print without a decimal point, and no value prints in
// exponent form, so the lexer can always read the result back.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
