package cfg

// Chomsky converts the grammar to Chomsky Normal Form in place, per
// spec.md §4.6: every rule becomes either A -> BC (two variables) or
// A -> a (one non-null terminal). The precondition "simplify has been
// run" is enforced internally — Chomsky runs RemoveNullRules,
// RemoveUnitRules, and Reduce itself before converting, mirroring the
// reference implementation's chamsky() calling self.simplify() first, so
// that callers never have to sequence the pipeline themselves to get a
// correct result.
func (g *Grammar) Chomsky() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.removeNullRulesLocked()
	g.removeUnitRulesLocked()
	g.reduceLocked()

	g.chomskyLocked()

	g.state = stateCNF
	g.cnf = nil
}

func (g *Grammar) chomskyLocked() {
	universe := g.variables.Union(g.terminals)
	nameGen := newFreshNameGenerator(g.variables.Clone())

	// Pre-seed M with variables that already exist solely to rewrite a
	// single terminal, so CNF conversion reuses them instead of minting
	// duplicates.
	bodiesByVar := make(map[Symbol][]string)
	for r := range g.rules {
		bodiesByVar[r.Head] = append(bodiesByVar[r.Head], r.Body)
	}
	terminalVar := make(map[Symbol]Symbol) // terminal -> unit-producing variable
	for v, bodies := range bodiesByVar {
		if len(bodies) == 1 && g.terminals.Has(Symbol(bodies[0])) {
			terminalVar[Symbol(bodies[0])] = v
		}
	}

	type longRule struct {
		head Symbol
		seq  []Symbol
	}

	final := make(map[Rule]struct{}, len(g.rules))
	var longRules []longRule

	for r := range g.rules {
		symbols, ok := Tokenize(r.Body, universe)
		assertInvariant(ok, "rule body failed to tokenize during CNF conversion")

		if len(symbols) == 1 && g.terminals.Has(symbols[0]) {
			final[r] = struct{}{} // already A -> a
			continue
		}

		seq := make([]Symbol, len(symbols))
		for i, s := range symbols {
			if !g.terminals.Has(s) {
				seq[i] = s
				continue
			}
			v, ok := terminalVar[s]
			if !ok {
				v = nameGen.Next()
				terminalVar[s] = v
				final[Rule{Head: v, Body: string(s)}] = struct{}{}
				g.variables.Add(v)
			}
			seq[i] = v
		}
		longRules = append(longRules, longRule{head: r.Head, seq: seq})
	}

	for _, lr := range longRules {
		k := len(lr.seq)
		assertInvariant(k >= 2, "unit-length rule survived unit-rule elimination into CNF conversion")

		if k == 2 {
			final[Rule{Head: lr.head, Body: string(lr.seq[0]) + string(lr.seq[1])}] = struct{}{}
			continue
		}

		// Arity reduction for k > 2: mint k-2 fresh variables and chain
		// them so the leaves read left-to-right as the original sequence
		// (see DESIGN.md on the CNF Phase-2 ordering open question).
		fresh := make([]Symbol, k-2)
		for i := range fresh {
			fresh[i] = nameGen.Next()
			g.variables.Add(fresh[i])
		}

		final[Rule{Head: lr.head, Body: string(lr.seq[0]) + string(fresh[0])}] = struct{}{}
		for i := 0; i < k-3; i++ {
			final[Rule{Head: fresh[i], Body: string(lr.seq[i+1]) + string(fresh[i+1])}] = struct{}{}
		}
		final[Rule{Head: fresh[k-3], Body: string(lr.seq[k-2]) + string(lr.seq[k-1])}] = struct{}{}
	}

	g.rules = final
}
