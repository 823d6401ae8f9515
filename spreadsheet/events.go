package spreadsheet

// CellChanged is published whenever a SetCell or ClearCell call
// commits. It carries everything a read-only observer — the live-view
// server, a logger — needs without re-reading the sheet.
type CellChanged struct {
	Pos   Position
	Value CellValue
	Text  string
}

// Subscribe registers fn to be called synchronously, in the caller's
// goroutine, after every successful mutation. There is no internal
// fan-out goroutine: the engine stays single-threaded per its
// concurrency model, and anything that wants asynchronous delivery
// (internal/server's hub) takes care of that at its own edge.
func (s *Sheet) Subscribe(fn func(CellChanged)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Sheet) notify(evt CellChanged) {
	for _, fn := range s.listeners {
		fn(evt)
	}
}
