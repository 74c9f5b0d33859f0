package cfg

// CYK decides whether the grammar generates s, per spec.md §4.7. It does
// not construct a parse tree — only membership is decided (parse-tree
// construction is out of scope; see DESIGN.md).
//
// CYK converts a cached copy of the grammar to Chomsky Normal Form on
// first use and reuses that cache until the grammar is next mutated. Only
// the one call that populates the cache takes the write lock; every call
// against an already-warm cache — including concurrent ones — takes only
// the read lock, per spec.md §5's "any number of concurrent CYK queries on
// an unchanged grammar are safe (after CNF cache warm-up)".
func (g *Grammar) CYK(s string) bool {
	g.mu.RLock()
	null := g.null
	g.mu.RUnlock()

	if s == string(null) {
		return false // the null symbol is a name, not a derivable string
	}
	if s == "" {
		return g.AcceptsNull()
	}

	cnf := g.cnfCache()
	return cnf.cykDecide(s)
}

// cnfCache returns a Chomsky Normal Form copy of g, converting and caching
// it on first use. The common case — an already-warm cache — only ever
// takes the read lock; the write lock is taken solely to populate g.cnf on
// a cache miss, and is re-checked after acquiring it in case another
// goroutine populated the cache first.
func (g *Grammar) cnfCache() *Grammar {
	g.mu.RLock()
	if cached := g.cnf; cached != nil {
		g.mu.RUnlock()
		return cached
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cnf == nil {
		clone := g.clone()
		clone.Chomsky()
		g.cnf = clone
	}
	return g.cnf
}

// cykDecide runs the CYK dynamic-programming table over a grammar already
// in Chomsky Normal Form. g is a private CNF cache copy never mutated
// after construction, so this needs no locking of its own.
func (g *Grammar) cykDecide(s string) bool {
	symbols, ok := Tokenize(s, g.terminals)
	if !ok {
		return false
	}

	unary, binary := g.cykIndexes()

	n := len(symbols)
	cells := make([]Alphabet, (n+1)*(n+1))
	at := func(length, start int) int { return length*(n+1) + start }

	for i, sym := range symbols {
		cells[at(1, i)] = unary[sym]
	}

	for length := 2; length <= n; length++ {
		for start := 0; start <= n-length; start++ {
			set := make(Alphabet)
			for part := 1; part < length; part++ {
				left := cells[at(part, start)]
				right := cells[at(length-part, start+part)]
				for b := range left {
					for c := range right {
						for head := range binary[pairKey{b, c}] {
							set.Add(head)
						}
					}
				}
			}
			cells[at(length, start)] = set
		}
	}

	final := cells[at(n, 0)]
	return final != nil && final.Has(g.start)
}

type pairKey struct {
	b, c Symbol
}

// cykIndexes builds the lookup tables CYK needs from a Chomsky Normal Form
// grammar: unary[a] is the set of heads with a rule A -> a, and
// binary[(B,C)] is the set of heads with a rule A -> BC. g is a private
// CNF cache copy never mutated after construction, so this needs no
// locking of its own.
func (g *Grammar) cykIndexes() (unary map[Symbol]Alphabet, binary map[pairKey]Alphabet) {
	unary = make(map[Symbol]Alphabet)
	binary = make(map[pairKey]Alphabet)

	universe := g.variables.Union(g.terminals)
	for r := range g.rules {
		symbols, ok := Tokenize(r.Body, universe)
		assertInvariant(ok, "CNF rule body failed to tokenize while indexing for CYK")

		switch len(symbols) {
		case 1:
			a := symbols[0]
			if unary[a] == nil {
				unary[a] = make(Alphabet)
			}
			unary[a].Add(r.Head)
		case 2:
			key := pairKey{symbols[0], symbols[1]}
			if binary[key] == nil {
				binary[key] = make(Alphabet)
			}
			binary[key].Add(r.Head)
		default:
			assertInvariant(false, "non-CNF rule body found while indexing for CYK")
		}
	}

	return unary, binary
}
