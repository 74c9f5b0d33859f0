package cfg

// freshNameGenerator mints variable names disjoint from a grammar's current
// variables and free of the containment conflict (invariant 3), per
// spec.md §4.8. Its state is per-conversion-call: a caller creates one,
// threads it through a single transformation, and discards it when that
// transformation returns — never a process-wide counter.
type freshNameGenerator struct {
	existing Alphabet
	minted   Alphabet
	sequence []byte // e.g. ['A'], ['A','B'], ... the current character sequence
	batch    []string
}

// newFreshNameGenerator starts a generator whose candidates avoid every
// symbol in existing.
func newFreshNameGenerator(existing Alphabet) *freshNameGenerator {
	return &freshNameGenerator{
		existing: existing,
		minted:   make(Alphabet),
		sequence: []byte{'A'},
	}
}

// advance moves the character sequence to its lexicographic successor:
// the last letter cycles A->B->...->Z, and a 'Z' wraps to 'A' and carries
// into the position before it (AZ -> BA). Only when every position is 'Z'
// does the sequence grow by one position, reinitialized to all 'A's
// (Z -> AA, ZZ -> AAA).
func (f *freshNameGenerator) advance() {
	i := len(f.sequence) - 1
	for i >= 0 {
		if f.sequence[i] != 'Z' {
			f.sequence[i]++
			return
		}
		f.sequence[i] = 'A'
		i--
	}
	// every position overflowed: grow by one position, all 'A's.
	f.sequence = append([]byte{'A'}, f.sequence...)
}

// conflicts reports whether base would violate invariant 3 against any
// symbol already present in existing or already minted this call: base
// must not contain, nor be contained by, any such symbol.
func (f *freshNameGenerator) conflicts(base string) bool {
	for sym := range f.existing {
		if stringsContainEachOther(base, string(sym)) {
			return true
		}
	}
	for sym := range f.minted {
		if stringsContainEachOther(base, string(sym)) {
			return true
		}
	}
	return false
}

func stringsContainEachOther(a, b string) bool {
	return indexOf(a, b) >= 0 || indexOf(b, a) >= 0
}

// fillBatch finds the next non-conflicting base and mints names
// base+"1" .. base+"9" from it, advancing the sequence afterward.
func (f *freshNameGenerator) fillBatch() {
	for {
		base := string(f.sequence)
		if !f.conflicts(base) {
			for i := 1; i <= 9; i++ {
				name := base + itoa(i)
				f.batch = append(f.batch, name)
				f.minted.Add(Symbol(name))
			}
			f.advance()
			return
		}
		f.advance()
	}
}

// Next returns a new variable name disjoint from existing and from every
// other name this generator has returned.
func (f *freshNameGenerator) Next() Symbol {
	if len(f.batch) == 0 {
		f.fillBatch()
	}
	name := f.batch[0]
	f.batch = f.batch[1:]
	return Symbol(name)
}

func itoa(i int) string {
	if i < 0 || i > 9 {
		// only single digits are ever produced by fillBatch.
		panic("cfg: itoa out of range")
	}
	return string(rune('0' + i))
}
