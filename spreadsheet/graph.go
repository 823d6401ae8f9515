package spreadsheet

// hasCycle runs the pre-mutation cycle check for a candidate
// assignment at pos with referenced set refs: DFS over the existing
// uses graph starting from each reference, joined with the edge pos
// would gain if refs is accepted, looking for a path back to pos. It
// never mutates the graph, so rejection is cheap and leaves state
// untouched.
func hasCycle(s *Sheet, pos Position, refs []Position) bool {
	for _, ref := range refs {
		if ref == pos {
			return true
		}
	}

	visited := make(map[Position]struct{})
	var visit func(Position) bool
	visit = func(current Position) bool {
		if current == pos {
			return true
		}
		if _, seen := visited[current]; seen {
			return false
		}
		visited[current] = struct{}{}

		cell, ok := s.grid[current]
		if !ok {
			// referenced but not yet materialized: no outgoing edges.
			return false
		}
		for next := range cell.uses {
			if visit(next) {
				return true
			}
		}
		return false
	}

	for _, ref := range refs {
		if visit(ref) {
			return true
		}
	}
	return false
}

// rewriteEdges replaces cell's outgoing edges with refs, keeping the
// bidirectional invariant (B in A.uses iff A in B.used_by) in lockstep
// on both ends. Every position in refs is assumed already present in
// the grid (SetCell materializes missing references before this runs).
func rewriteEdges(s *Sheet, cell *Cell, refs []Position) {
	for old := range cell.uses {
		if target, ok := s.grid[old]; ok {
			delete(target.usedBy, cell.pos)
		}
	}
	cell.uses = make(map[Position]struct{}, len(refs))

	for _, ref := range refs {
		target := s.grid[ref]
		target.usedBy[cell.pos] = struct{}{}
		cell.uses[ref] = struct{}{}
	}
}

// invalidateTransitively resets cell's cache and descends used_by,
// stopping at any cell that is already uncached — invariant 3
// guarantees such a cell's dependents were already invalidated the
// last time it went stale.
func invalidateTransitively(s *Sheet, origin *Cell) {
	origin.resetCache()

	var visit func(*Cell)
	visit = func(c *Cell) {
		for dependent := range c.usedBy {
			next, ok := s.grid[dependent]
			if !ok {
				continue
			}
			if !next.hasCache {
				// already uncached: its own dependents were invalidated
				// the last time it went stale.
				continue
			}
			next.resetCache()
			visit(next)
		}
	}
	visit(origin)
}
