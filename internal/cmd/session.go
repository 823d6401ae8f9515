package cmd

import (
	"fmt"
	"strings"

	"github.com/cellgraph/sheet/internal/config"
	"github.com/cellgraph/sheet/spreadsheet"
)

// exitCode maps the three exception types the engine can raise at the
// CLI boundary to distinct process exit codes.
func exitCode(err error) int {
	switch err.(type) {
	case *spreadsheet.InvalidPositionException:
		return 2
	case *spreadsheet.FormulaException:
		return 3
	case *spreadsheet.CircularDependencyException:
		return 4
	default:
		return 1
	}
}

// session wraps one live Sheet and the line-oriented command protocol
// the repl/run/show subcommands all share: SET, GET, CLEAR, PRINT,
// PRINTTEXT.
type session struct {
	sheet     *spreadsheet.Sheet
	errTokens spreadsheet.ErrorTokens
}

func newSession(cfg *config.Config) *session {
	return &session{
		sheet:     spreadsheet.CreateSheetWithLimits(cfg.Grid.MaxRows, cfg.Grid.MaxCols),
		errTokens: cfg.ErrorTokens,
	}
}

// run applies one command line, writing its output to out. A blank
// line or a line starting with '#' is ignored.
func (s *session) run(line string, out func(string)) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	verb, rest := splitVerb(line)
	switch strings.ToUpper(verb) {
	case "SET":
		posText, text := splitVerb(rest)
		pos := spreadsheet.FromString(posText)
		if !pos.IsValid() {
			return &spreadsheet.InvalidPositionException{Pos: pos}
		}
		return s.sheet.SetCell(pos, text)

	case "GET":
		pos := spreadsheet.FromString(strings.TrimSpace(rest))
		if !pos.IsValid() {
			return &spreadsheet.InvalidPositionException{Pos: pos}
		}
		cell, err := s.sheet.GetCell(pos)
		if err != nil {
			return err
		}
		if cell == nil {
			out("")
			return nil
		}
		out(renderValue(cell.GetValue(s.sheet), s.errTokens))
		return nil

	case "CLEAR":
		pos := spreadsheet.FromString(strings.TrimSpace(rest))
		if !pos.IsValid() {
			return &spreadsheet.InvalidPositionException{Pos: pos}
		}
		return s.sheet.ClearCell(pos)

	case "PRINT":
		var buf strings.Builder
		if err := s.sheet.PrintValues(&buf); err != nil {
			return err
		}
		out(strings.TrimSuffix(buf.String(), "\n"))
		return nil

	case "PRINTTEXT":
		var buf strings.Builder
		if err := s.sheet.PrintTexts(&buf); err != nil {
			return err
		}
		out(strings.TrimSuffix(buf.String(), "\n"))
		return nil

	default:
		return fmt.Errorf("unknown command %q", verb)
	}
}

func splitVerb(line string) (verb, rest string) {
	line = strings.TrimSpace(line)
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

func renderValue(v spreadsheet.CellValue, tokens spreadsheet.ErrorTokens) string {
	switch val := v.(type) {
	case string:
		return val
	case spreadsheet.FormulaError:
		return val.Render(tokens)
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return ""
	}
}
