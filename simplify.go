package cfg

// Simplify runs RemoveNullRules, then RemoveUnitRules, then Reduce, in
// that order, per spec.md §4.5's "simplify(g)" pipeline. Simplify is
// idempotent: applying it again to an already-simplified grammar is a
// no-op modulo re-deriving the same fixed point.
func (g *Grammar) Simplify() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.removeNullRulesLocked()
	g.removeUnitRulesLocked()
	g.reduceLocked()

	g.state = stateSimplified
	g.cnf = nil
}
