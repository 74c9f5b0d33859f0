package cfg

import (
	"fmt"
)

// ErrorCategory tags a grammar error with the class of failure that
// produced it, matching the error categories spec.md §6/§7 require callers
// to be able to distinguish.
type ErrorCategory int

const (
	// ErrTypeShape reports that a constructor argument was the wrong kind of
	// value (e.g. rules supplied as neither a set of pairs nor a map).
	ErrTypeShape ErrorCategory = iota

	// ErrWhitespace reports a symbol containing whitespace, or the empty
	// string where a symbol was required.
	ErrWhitespace

	// ErrContainment reports two symbols in the same alphabet where one is
	// a substring of the other, violating the unique-decoding invariant.
	ErrContainment

	// ErrUnknownVariable reports a rule whose left-hand side is not a
	// declared variable.
	ErrUnknownVariable

	// ErrMalformedBody reports a right-hand side that does not tokenize
	// over V ∪ Σ, or that mixes the null symbol with other symbols.
	ErrMalformedBody

	// ErrNullNotTerminal reports a null symbol that is not a member of Σ.
	ErrNullNotTerminal

	// ErrStartNotVariable reports a start symbol that is not a member of V.
	ErrStartNotVariable

	// ErrRuleSyntax reports a malformed rule line in the persisted text
	// format (missing or malformed "->").
	ErrRuleSyntax
)

// String gives a short, human-readable name for the category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrTypeShape:
		return "type-shape"
	case ErrWhitespace:
		return "whitespace-in-symbol"
	case ErrContainment:
		return "symbol-containment"
	case ErrUnknownVariable:
		return "unknown-variable-in-rule"
	case ErrMalformedBody:
		return "malformed-right-hand-side"
	case ErrNullNotTerminal:
		return "null-symbol-not-in-terminals"
	case ErrStartNotVariable:
		return "start-not-in-variables"
	case ErrRuleSyntax:
		return "rule-syntax"
	default:
		return "unknown"
	}
}

// grammarError is a tagged error carrying a human-readable message naming
// the offending symbol or rule, plus the category a caller can switch on.
type grammarError struct {
	category ErrorCategory
	cause    error
}

func newGrammarError(category ErrorCategory, cause error) error {
	return &grammarError{category: category, cause: cause}
}

func (e *grammarError) Error() string {
	return fmt.Sprintf("%s: %s", e.category, e.cause)
}

func (e *grammarError) Unwrap() error {
	return e.cause
}

// Category extracts the ErrorCategory from err, if err (or something it
// wraps) originated from this package. The second return is false for any
// other error, including nil.
func Category(err error) (ErrorCategory, bool) {
	var ge *grammarError
	for err != nil {
		if g, ok := err.(*grammarError); ok {
			ge = g
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if ge == nil {
		return 0, false
	}
	return ge.category, true
}
