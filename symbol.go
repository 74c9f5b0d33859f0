package cfg

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Symbol is a single grammar symbol: a non-empty, whitespace-free string. A
// Symbol carries no flavor of its own — whether it is a variable or a
// terminal depends only on which Alphabet it is found in.
type Symbol string

// hasWhitespace reports whether s contains any whitespace rune.
func hasWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// Alphabet is a set of Symbols. It is used independently for both the
// variables set V and the terminals set Σ; validation of the
// unique-decoding containment invariant is performed per-Alphabet, never
// across the union of the two (see DESIGN.md on the containment-check
// open question).
type Alphabet map[Symbol]struct{}

// NewAlphabet builds an Alphabet from a slice of symbol strings.
func NewAlphabet(symbols ...string) Alphabet {
	a := make(Alphabet, len(symbols))
	for _, s := range symbols {
		a[Symbol(s)] = struct{}{}
	}
	return a
}

// Has reports whether sym is a member of the alphabet.
func (a Alphabet) Has(sym Symbol) bool {
	_, ok := a[sym]
	return ok
}

// Add inserts sym into the alphabet.
func (a Alphabet) Add(sym Symbol) {
	a[sym] = struct{}{}
}

// Clone returns a shallow, independent copy of the alphabet.
func (a Alphabet) Clone() Alphabet {
	c := make(Alphabet, len(a))
	for s := range a {
		c[s] = struct{}{}
	}
	return c
}

// Slice returns the alphabet's members sorted lexicographically, for
// deterministic iteration and display.
func (a Alphabet) Slice() []Symbol {
	out := make([]Symbol, 0, len(a))
	for s := range a {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns a new Alphabet containing every symbol from a and b.
func (a Alphabet) Union(b Alphabet) Alphabet {
	u := make(Alphabet, len(a)+len(b))
	for s := range a {
		u[s] = struct{}{}
	}
	for s := range b {
		u[s] = struct{}{}
	}
	return u
}

// checkContainment verifies invariant 3 (the unique-decoding invariant)
// within a single alphabet: no two distinct members may be substrings of
// one another. The check is performed per-alphabet, not across V ∪ Σ,
// matching the reference implementation's (bug-compatible) behavior.
func checkContainment(kind string, a Alphabet) error {
	members := a.Slice()
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			x, y := string(members[i]), string(members[j])
			if strings.Contains(y, x) || strings.Contains(x, y) {
				longer, shorter := y, x
				if len(x) > len(y) {
					longer, shorter = x, y
				}
				return newGrammarError(ErrContainment,
					errors.Errorf("%s %q contains %s %q", kind, longer, kind, shorter))
			}
		}
	}
	return nil
}

// checkWhitespace verifies invariant 2 for every member of a.
func checkWhitespace(kind string, a Alphabet) error {
	for s := range a {
		if s == "" {
			return newGrammarError(ErrWhitespace, errors.Errorf("%s cannot be the empty string", kind))
		}
		if hasWhitespace(string(s)) {
			return newGrammarError(ErrWhitespace, errors.Errorf("%s %q contains whitespace", kind, s))
		}
	}
	return nil
}

// unionPattern compiles an anchored, fully-matching regexp alternation over
// the given alphabet: `^(?:alt1|alt2|...)+$`. Because invariant 3 holds, the
// order of alternatives cannot change which strings match — RE2's
// leftmost-alternative-first semantics never have to break a tie between
// two members that could both start at the same position, since one being
// a prefix of the other is exactly the containment invariant forbids.
// Alternatives are still sorted longest-first as defensive style, matching
// the greedy matching. An empty alphabet yields a pattern that matches
// nothing but the empty string.
func unionPattern(a Alphabet) *regexp.Regexp {
	members := a.Slice()
	sort.Slice(members, func(i, j int) bool { return len(members[i]) > len(members[j]) })

	if len(members) == 0 {
		return regexp.MustCompile(`^$`)
	}

	alts := make([]string, len(members))
	for i, m := range members {
		alts[i] = regexp.QuoteMeta(string(m))
	}
	return regexp.MustCompile(`^(?:` + strings.Join(alts, "|") + `)+$`)
}

// prefixPattern is like unionPattern but matches only a single leading
// symbol, unanchored at the end. Used by the tokenizer to consume one
// symbol at a time.
func prefixPattern(a Alphabet) *regexp.Regexp {
	members := a.Slice()
	sort.Slice(members, func(i, j int) bool { return len(members[i]) > len(members[j]) })

	alts := make([]string, len(members))
	for i, m := range members {
		alts[i] = regexp.QuoteMeta(string(m))
	}
	if len(alts) == 0 {
		return regexp.MustCompile(`^$`)
	}
	return regexp.MustCompile(`^(?:` + strings.Join(alts, "|") + `)`)
}

// Tokenize decomposes body into the ordered sequence of Symbols from u whose
// concatenation equals body, using a longest-match-at-each-position
// strategy. It fails (ok == false) iff body cannot be covered by symbols of
// u with no remainder — including when body is empty.
func Tokenize(body string, u Alphabet) (symbols []Symbol, ok bool) {
	if body == "" {
		return nil, false
	}

	pat := prefixPattern(u)
	remaining := body
	for remaining != "" {
		loc := pat.FindString(remaining)
		if loc == "" {
			return nil, false
		}
		symbols = append(symbols, Symbol(loc))
		remaining = remaining[len(loc):]
	}
	return symbols, true
}
