package cfg

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// LoadGrammar reads a grammar from the persisted plain-text format
// described in spec.md §4.9: four header lines (comma-separated
// variables, comma-separated terminals, start variable, null symbol)
// followed by rule lines of the form "A -> beta1 | beta2 | ...". Blank
// lines and lines starting with "#" are skipped, both between and
// within the header and rule sections.
func LoadGrammar(r io.Reader) (*Grammar, error) {
	scanner := bufio.NewScanner(r)

	var header []string
	for len(header) < 4 {
		line, ok := nextContentLine(scanner)
		if !ok {
			return nil, errors.New("cfg: unexpected end of input reading grammar header")
		}
		header = append(header, line)
	}

	variables := splitCSV(header[0])
	terminals := splitCSV(header[1])
	start := strings.TrimSpace(header[2])
	null := strings.TrimSpace(header[3])

	rulePairs := make(map[string][]string)
	for {
		line, ok := nextContentLine(scanner)
		if !ok {
			break
		}

		head, bodies, err := parseRuleLine(line)
		if err != nil {
			return nil, err
		}
		rulePairs[head] = append(rulePairs[head], bodies...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cfg: reading grammar")
	}

	return NewGrammar(
		WithVariables(variables...),
		WithTerminals(terminals...),
		WithStart(start),
		WithNull(null),
		WithRuleMap(rulePairs),
	)
}

func nextContentLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

func splitCSV(line string) []string {
	var out []string
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}

// parseRuleLine parses "A -> beta1 | beta2 | ..." into its head and
// alternative bodies.
func parseRuleLine(line string) (head string, bodies []string, err error) {
	fields := strings.SplitN(line, "->", 2)
	if len(fields) != 2 {
		return "", nil, newGrammarError(ErrRuleSyntax, errors.Errorf("malformed rule line %q: missing '->'", line))
	}

	head = strings.TrimSpace(fields[0])
	if head == "" {
		return "", nil, newGrammarError(ErrRuleSyntax, errors.Errorf("malformed rule line %q: empty head", line))
	}

	for _, alt := range strings.Split(fields[1], "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			return "", nil, newGrammarError(ErrRuleSyntax, errors.Errorf("malformed rule line %q: empty alternative", line))
		}
		bodies = append(bodies, alt)
	}
	return head, bodies, nil
}

// SaveGrammar writes g to w in the persisted plain-text format LoadGrammar
// reads: four header lines followed by one rule line per variable that
// has at least one right-hand side.
func SaveGrammar(w io.Writer, g *Grammar) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	variables := g.variables.Slice()
	terminals := g.terminals.Slice()

	if _, err := fmt.Fprintln(w, joinSymbols(variables)); err != nil {
		return errors.Wrap(err, "cfg: writing grammar header")
	}
	if _, err := fmt.Fprintln(w, joinSymbols(terminals)); err != nil {
		return errors.Wrap(err, "cfg: writing grammar header")
	}
	if _, err := fmt.Fprintln(w, g.start); err != nil {
		return errors.Wrap(err, "cfg: writing grammar header")
	}
	if _, err := fmt.Fprintln(w, g.null); err != nil {
		return errors.Wrap(err, "cfg: writing grammar header")
	}

	byHead := make(map[Symbol][]string)
	for _, r := range g.rulesLocked() {
		byHead[r.Head] = append(byHead[r.Head], r.Body)
	}

	for _, v := range variables {
		bodies := byHead[v]
		if len(bodies) == 0 {
			continue
		}
		sort.Strings(bodies)
		if _, err := fmt.Fprintf(w, "%s -> %s\n", v, strings.Join(bodies, " | ")); err != nil {
			return errors.Wrap(err, "cfg: writing grammar rules")
		}
	}

	return nil
}

func joinSymbols(symbols []Symbol) string {
	strs := make([]string, len(symbols))
	for i, s := range symbols {
		strs[i] = string(s)
	}
	return strings.Join(strs, ", ")
}
