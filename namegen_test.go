package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshNameGeneratorMintsBatchesOfNine(t *testing.T) {
	gen := newFreshNameGenerator(NewAlphabet())

	seen := make(map[Symbol]bool)
	for i := 0; i < 9; i++ {
		name := gen.Next()
		require.False(t, seen[name], "name %q minted twice", name)
		seen[name] = true
		assert.True(t, len(name) >= 2, "expected base+digit form, got %q", name)
	}
	// The 10th call must roll to a new base.
	tenth := gen.Next()
	assert.False(t, seen[tenth])
}

func TestFreshNameGeneratorAvoidsContainmentConflicts(t *testing.T) {
	gen := newFreshNameGenerator(NewAlphabet("A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"))

	name := gen.Next()
	assert.NotEqual(t, Symbol("A1"), name)
	for existing := range gen.existing {
		assert.False(t, stringsContainEachOther(string(name), string(existing)))
	}
}

func TestFreshNameGeneratorAdvanceCycles(t *testing.T) {
	gen := &freshNameGenerator{existing: NewAlphabet(), minted: make(Alphabet), sequence: []byte{'Z'}}
	gen.advance()
	assert.Equal(t, []byte{'A', 'A'}, gen.sequence)
}
