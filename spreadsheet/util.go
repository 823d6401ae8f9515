package spreadsheet

import "strconv"

// formatFloat matches the grammar's own literal formatting: integral
// values print without a decimal point, matching default double
// formatting otherwise.
func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
