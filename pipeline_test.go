package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anbn builds the classic {a^n b^n : n >= 1} grammar, S -> aSb | ab.
func anbn(t *testing.T) *Grammar {
	t.Helper()
	g, err := NewGrammar(
		WithVariables("S"),
		WithTerminals("a", "b", "λ"),
		WithRuleMap(map[string][]string{"S": {"aSb", "ab"}}),
	)
	require.NoError(t, err)
	return g
}

func TestRemoveNullRulesPreservesNonEmptyMembership(t *testing.T) {
	g, err := NewGrammar(
		WithVariables("S", "A", "B"),
		WithTerminals("a", "b", "λ"),
		WithRuleMap(map[string][]string{
			"S": {"AB"},
			"A": {"a", "λ"},
			"B": {"b", "λ"},
		}),
	)
	require.NoError(t, err)

	g.RemoveNullRules()

	for r := range g.rules {
		assert.NotEqual(t, string(g.null), r.Body, "no (A, λ) rule should survive")
	}
	// S -> AB must have expanded into S -> AB, S -> A, S -> B (S -> "" was
	// discarded since it renders to the empty body).
	bodies := make(map[string]bool)
	for r := range g.rules {
		if r.Head == "S" {
			bodies[r.Body] = true
		}
	}
	assert.True(t, bodies["AB"])
	assert.True(t, bodies["A"])
	assert.True(t, bodies["B"])
}

func TestRemoveUnitRulesEliminatesUnitChains(t *testing.T) {
	g, err := NewGrammar(
		WithVariables("S", "A", "B"),
		WithTerminals("a", "λ"),
		WithRuleMap(map[string][]string{
			"S": {"A"},
			"A": {"B"},
			"B": {"a"},
		}),
	)
	require.NoError(t, err)

	g.RemoveUnitRules()

	for r := range g.rules {
		symbols, ok := Tokenize(r.Body, g.variables.Union(g.terminals))
		require.True(t, ok)
		if len(symbols) == 1 {
			assert.False(t, g.variables.Has(symbols[0]), "no unit rule should survive")
		}
	}
	assert.Contains(t, g.rules, Rule{Head: "S", Body: "a"})
}

func TestReduceDropsNonGeneratingAndUnreachable(t *testing.T) {
	g, err := NewGrammar(
		WithVariables("S", "A", "B", "Unreachable", "NonGenerating"),
		WithTerminals("a", "b", "λ"),
		WithRuleMap(map[string][]string{
			"S":             {"a"},
			"A":             {"Unreachable"},
			"Unreachable":   {"b"},
			"NonGenerating": {"NonGenerating"},
		}),
	)
	require.NoError(t, err)

	g.Reduce()

	assert.False(t, g.Variables().Has("NonGenerating"))
	assert.False(t, g.Variables().Has("A"))
	assert.False(t, g.Variables().Has("Unreachable"))
	assert.True(t, g.Variables().Has("S"))
}

func TestSimplifyIsIdempotent(t *testing.T) {
	g := anbn(t)
	g.Simplify()
	first := g.Rules()
	g.Simplify()
	assert.Equal(t, first, g.Rules())
}

func TestChomskyProducesBinaryOrTerminalRulesOnly(t *testing.T) {
	g, err := NewGrammar(
		WithVariables("S"),
		WithTerminals("a", "b", "c", "d", "λ"),
		WithRuleMap(map[string][]string{"S": {"abcd"}}),
	)
	require.NoError(t, err)

	g.Chomsky()

	universe := g.variables.Union(g.terminals)
	for r := range g.rules {
		symbols, ok := Tokenize(r.Body, universe)
		require.True(t, ok)
		switch len(symbols) {
		case 1:
			assert.True(t, g.terminals.Has(symbols[0]))
		case 2:
			assert.True(t, g.variables.Has(symbols[0]))
			assert.True(t, g.variables.Has(symbols[1]))
		default:
			t.Fatalf("non-CNF rule body %q with %d symbols", r.Body, len(symbols))
		}
	}
}

func TestChomskyArityReductionReadsLeafsLeftToRight(t *testing.T) {
	// S -> abcde should chain through 3 fresh variables, each binary rule
	// reading its leaves in original left-to-right order (not reversed).
	g, err := NewGrammar(
		WithVariables("S"),
		WithTerminals("a", "b", "c", "d", "e", "λ"),
		WithRuleMap(map[string][]string{"S": {"abcde"}}),
	)
	require.NoError(t, err)
	g.Chomsky()

	assert.True(t, g.CYK("abcde"))
	assert.False(t, g.CYK("aabcde"))
	assert.False(t, g.CYK("abcd"))
}

func TestCYKAcceptsAndRejects(t *testing.T) {
	g := anbn(t)

	assert.True(t, g.CYK("ab"))
	assert.True(t, g.CYK("aabb"))
	assert.True(t, g.CYK("aaabbb"))
	assert.False(t, g.CYK("aab"))
	assert.False(t, g.CYK("ba"))
	assert.False(t, g.CYK(""))
}

func TestCYKEmptyStringUsesAcceptsNull(t *testing.T) {
	g, err := NewGrammar(
		WithVariables("S"),
		WithTerminals("a", "λ"),
		WithRuleMap(map[string][]string{"S": {"λ", "a"}}),
	)
	require.NoError(t, err)

	assert.True(t, g.CYK(""))
	assert.True(t, g.CYK("a"))
}

func TestCYKRejectsLiteralNullSymbolString(t *testing.T) {
	g, err := NewGrammar(
		WithVariables("S"),
		WithTerminals("a", "λ"),
		WithRuleMap(map[string][]string{"S": {"λ", "a"}}),
	)
	require.NoError(t, err)

	assert.False(t, g.CYK("λ"))
}

func TestCYKPalindromes(t *testing.T) {
	// S -> aSa | bSb | a | b | λ over {a,b}: every binary palindrome, of
	// any length, is accepted and every non-palindrome is rejected.
	g, err := NewGrammar(
		WithVariables("S"),
		WithTerminals("a", "b", "λ"),
		WithRuleMap(map[string][]string{
			"S": {"aSa", "bSb", "a", "b", "λ"},
		}),
	)
	require.NoError(t, err)

	for _, w := range generateBinaryStrings(8) {
		assert.Equal(t, isPalindrome(w), g.CYK(w), "mismatch for %q", w)
	}
	assert.True(t, g.CYK(""))
}

func generateBinaryStrings(maxLen int) []string {
	var out []string
	var rec func(prefix string, remaining int)
	rec = func(prefix string, remaining int) {
		if remaining == 0 {
			return
		}
		for _, c := range []string{"a", "b"} {
			s := prefix + c
			out = append(out, s)
			rec(s, remaining-1)
		}
	}
	rec("", maxLen)
	return out
}

func isPalindrome(s string) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}

func TestLoadSaveGrammarRoundTrips(t *testing.T) {
	g := anbn(t)

	var buf strings.Builder
	require.NoError(t, SaveGrammar(&buf, g))

	loaded, err := LoadGrammar(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, g.Start(), loaded.Start())
	assert.Equal(t, g.Null(), loaded.Null())
	assert.ElementsMatch(t, g.Rules(), loaded.Rules())
}

func TestLoadGrammarSkipsCommentsAndBlankLines(t *testing.T) {
	text := "# variables\nS\n\n# terminals\na, b, λ\nS\nλ\n\n# rules\nS -> ab | aSb\n"
	g, err := LoadGrammar(strings.NewReader(text))
	require.NoError(t, err)
	assert.True(t, g.CYK("ab"))
	assert.True(t, g.CYK("aabb"))
}

func TestParseRuleLineRejectsMissingArrow(t *testing.T) {
	_, _, err := parseRuleLine("S ab")
	require.Error(t, err)
	cat, _ := Category(err)
	assert.Equal(t, ErrRuleSyntax, cat)
}
