package cfg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
)

// FormatOptions controls FormatRules's rendering, mirroring the
// return_list/prepend/line_splitter keyword options of the original
// Python str_rules implementation this is descended from.
type FormatOptions struct {
	// Width wraps each variable's rule line to at most this many columns.
	// Zero (the default value) disables wrapping. This is a presentational
	// nicety added beyond the original's options; see DESIGN.md.
	Width int

	// ReturnAsList renders the rules as a line-per-variable list rather
	// than a single joined block. FormatRulesList exposes this form
	// directly; FormatRules, which must return a single string, honors it
	// by ignoring LineSeparator and joining lines with "\n" instead — the
	// same "skip the configured join" behavior the original's
	// return_list=True has relative to its line_splitter join.
	ReturnAsList bool

	// PrependPrefix is prepended to every rendered line, before the
	// variable name, e.g. for indenting rules under a heading.
	PrependPrefix string

	// LineSeparator joins rendered lines together. Empty (the default)
	// means "\n". Ignored when ReturnAsList is set.
	LineSeparator string
}

// FormatRulesList renders the grammar's rules as one line per variable, in
// the "A -> beta1 | beta2 | ..." form LoadGrammar/SaveGrammar use, with the
// start variable listed first and, if the grammar currently accepts the
// empty string, the null symbol included among the start variable's
// alternatives. A variable with no right-hand sides is omitted. This is
// the list form of FormatRules; callers that want the original's
// return_list=True behavior as a real slice rather than a joined string
// use this instead.
func (g *Grammar) FormatRulesList(opts FormatOptions) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	byHead := make(map[Symbol][]string)
	for r := range g.rules {
		byHead[r.Head] = append(byHead[r.Head], r.Body)
	}
	if g.acceptsNullLocked() {
		start := byHead[g.start]
		nullBody := string(g.null)
		present := false
		for _, b := range start {
			if b == nullBody {
				present = true
				break
			}
		}
		if !present {
			byHead[g.start] = append(start, nullBody)
		}
	}

	order := orderedHeads(g.variables, g.start)

	var lines []string
	for _, v := range order {
		bodies := byHead[v]
		if len(bodies) == 0 {
			continue
		}
		sort.Strings(bodies)
		line := opts.PrependPrefix + fmt.Sprintf("%s -> %s", v, strings.Join(bodies, " | "))
		if opts.Width > 0 {
			line = rosed.Edit(line).Wrap(opts.Width).String()
		}
		lines = append(lines, line)
	}

	return lines
}

// FormatRules renders the grammar's rules as FormatRulesList does, joined
// into a single string. ReturnAsList, when set, makes the join use "\n"
// regardless of LineSeparator — the string-returning analog of the
// original's return_list bypassing its line_splitter join entirely.
func (g *Grammar) FormatRules(opts FormatOptions) string {
	lines := g.FormatRulesList(opts)

	if opts.ReturnAsList {
		return strings.Join(lines, "\n")
	}

	sep := opts.LineSeparator
	if sep == "" {
		sep = "\n"
	}
	return strings.Join(lines, sep)
}

// orderedHeads lists vars with start first, then the remainder sorted
// lexicographically, so FormatRules and FormatGrammar read top-down the way
// a reader would expect a grammar's entry point presented.
func orderedHeads(vars Alphabet, start Symbol) []Symbol {
	rest := make([]Symbol, 0, len(vars))
	for v := range vars {
		if v != start {
			rest = append(rest, v)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	order := make([]Symbol, 0, len(vars))
	if vars.Has(start) {
		order = append(order, start)
	}
	return append(order, rest...)
}

// FormatGrammar renders a full human-readable summary of the grammar: its
// alphabets, start and null symbols, whether it currently accepts the
// empty string, and its rules, wrapped to a reasonable terminal width and
// indented under a "rules:" heading the way the original's
// str_rules(return_list=True, prepend='\t') caller does.
func (g *Grammar) FormatGrammar() string {
	g.mu.RLock()
	acceptsNull := g.acceptsNullLocked()
	start, null := g.start, g.null
	variables, terminals := g.variables.Slice(), g.terminals.Slice()
	g.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "variables: %s\n", joinSymbols(variables))
	fmt.Fprintf(&b, "terminals: %s\n", joinSymbols(terminals))
	fmt.Fprintf(&b, "start: %s\n", start)
	fmt.Fprintf(&b, "null: %s\n", null)
	fmt.Fprintf(&b, "accepts empty string: %t\n", acceptsNull)
	b.WriteString("rules:\n")
	for _, line := range g.FormatRulesList(FormatOptions{Width: 78, PrependPrefix: "  "}) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
