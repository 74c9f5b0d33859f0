package cfg

// RemoveNullRules removes every rule (A, λ) from the grammar while
// preserving the generated language except possibly the empty string, per
// spec.md §4.3. The start variable's own ability to derive the empty
// string is lost here; CYK recovers it by recording accepts_null before
// any simplification runs (see cyk.go).
func (g *Grammar) RemoveNullRules() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeNullRulesLocked()
}

func (g *Grammar) removeNullRulesLocked() {
	universe := g.variables.Union(g.terminals)
	nullable := g.nullableVariablesLocked()

	next := make(map[Rule]struct{}, len(g.rules))
	for r := range g.rules {
		if r.Body == string(g.null) {
			continue // dropped: the ε-production itself
		}

		symbols, ok := Tokenize(r.Body, universe)
		assertInvariant(ok, "rule body failed to tokenize during null-rule removal")

		nullablePositions := make([]int, 0, len(symbols))
		for i, s := range symbols {
			if _, ok := nullable[s]; ok {
				nullablePositions = append(nullablePositions, i)
			}
		}

		if len(nullablePositions) == 0 {
			next[r] = struct{}{}
			continue
		}

		for _, kept := range subsetsOfKeptPositions(nullablePositions) {
			body := renderSubset(symbols, nullablePositions, kept)
			if body == "" {
				continue // discard the rule whose result would be empty
			}
			next[Rule{Head: r.Head, Body: body}] = struct{}{}
		}
	}

	g.replaceRulesLocked(next)
}

// nullableVariablesLocked computes N, the least fixed point of:
//
//	N = {A : (A, λ) ∈ R}, then iteratively
//	N += {A : ∃(A, β) ∈ R, β composed entirely of symbols in N}
//
// computed by work-list iteration rather than recursion, per spec.md §9's
// guidance to avoid recursion for large grammars.
func (g *Grammar) nullableVariablesLocked() Alphabet {
	universe := g.variables.Union(g.terminals)
	nullable := make(Alphabet)

	occursIn := make(map[Symbol][]Rule) // symbol -> rules whose body mentions it
	for r := range g.rules {
		if r.Body == string(g.null) {
			nullable.Add(r.Head)
			continue
		}
		symbols, ok := Tokenize(r.Body, universe)
		assertInvariant(ok, "rule body failed to tokenize during nullable-variable discovery")
		for _, s := range symbols {
			occursIn[s] = append(occursIn[s], r)
		}
	}

	worklist := nullable.Slice()
	queued := make(Alphabet, len(nullable))
	for _, s := range worklist {
		queued.Add(s)
	}

	for len(worklist) > 0 {
		sym := worklist[0]
		worklist = worklist[1:]

		for _, r := range occursIn[sym] {
			if _, already := nullable[r.Head]; already {
				continue
			}
			symbols, _ := Tokenize(r.Body, universe)
			allNullable := true
			for _, s := range symbols {
				if _, ok := nullable[s]; !ok {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable.Add(r.Head)
				if _, ok := queued[r.Head]; !ok {
					queued.Add(r.Head)
					worklist = append(worklist, r.Head)
				}
			}
		}
	}

	return nullable
}

// subsetsOfKeptPositions enumerates every subset of positions (marked as
// nullable-symbol occurrences) that is KEPT in the resulting rule — the
// complement is DROPPED. All 2^k subsets are produced, including the
// "keep all" choice (the original rule) and excluding none up front; the
// caller discards whichever subset renders to an empty body.
func subsetsOfKeptPositions(positions []int) [][]int {
	k := len(positions)
	subsets := make([][]int, 0, 1<<uint(k))
	for mask := 0; mask < (1 << uint(k)); mask++ {
		var kept []int
		for i, pos := range positions {
			if mask&(1<<uint(i)) != 0 {
				kept = append(kept, pos)
			}
		}
		subsets = append(subsets, kept)
	}
	return subsets
}

// renderSubset renders symbols with the body that results from dropping
// every nullable occurrence except those listed in keptPositions (a subset
// of nullablePositions). Positions that are not nullable occurrences at
// all are never optional and are always kept.
func renderSubset(symbols []Symbol, nullablePositions, keptPositions []int) string {
	nullableSet := make(map[int]struct{}, len(nullablePositions))
	for _, p := range nullablePositions {
		nullableSet[p] = struct{}{}
	}
	kept := make(map[int]struct{}, len(keptPositions))
	for _, p := range keptPositions {
		kept[p] = struct{}{}
	}

	var sb []byte
	for i, s := range symbols {
		if _, isNullable := nullableSet[i]; isNullable {
			if _, isKept := kept[i]; !isKept {
				continue
			}
		}
		sb = append(sb, s...)
	}
	return string(sb)
}
