package cfg

// RemoveUnitRules removes every unit rule (A, β) where β tokenizes to a
// single variable, via transitive closure over unit-productions, per
// spec.md §4.4. The generated language is unchanged.
func (g *Grammar) RemoveUnitRules() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeUnitRulesLocked()
}

func (g *Grammar) removeUnitRulesLocked() {
	universe := g.variables.Union(g.terminals)

	// nonUnit[A] is NU(A): the right-hand sides of A that are not unit
	// rules. unitGraph has an arc A -> B for every unit rule (A, B).
	nonUnit := make(map[Symbol]map[string]struct{})
	unitGraph := newDirectedGraph()

	for r := range g.rules {
		symbols, ok := Tokenize(r.Body, universe)
		assertInvariant(ok, "rule body failed to tokenize during unit-rule removal")

		if len(symbols) == 1 && g.variables.Has(symbols[0]) {
			unitGraph.Add(r.Head, symbols[0])
			continue
		}
		if nonUnit[r.Head] == nil {
			nonUnit[r.Head] = make(map[string]struct{})
		}
		nonUnit[r.Head][r.Body] = struct{}{}
	}

	next := make(map[Rule]struct{})
	for a := range g.variables {
		for body := range nonUnit[a] {
			next[Rule{Head: a, Body: body}] = struct{}{}
		}

		for b := range unitGraph.ReachableFrom(a) {
			for body := range nonUnit[b] {
				next[Rule{Head: a, Body: body}] = struct{}{}
			}
		}
	}

	g.replaceRulesLocked(next)
}
