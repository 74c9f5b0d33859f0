package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectedGraphReachableFrom(t *testing.T) {
	g := newDirectedGraph()
	g.Add("A", "B")
	g.Add("B", "C")
	g.Add("A", "D")

	reached := g.ReachableFrom("A")
	assert.True(t, reached.Has("B"))
	assert.True(t, reached.Has("C"))
	assert.True(t, reached.Has("D"))
	assert.False(t, reached.Has("A"))
}

func TestDirectedGraphReachableFromIncludesCycleBack(t *testing.T) {
	g := newDirectedGraph()
	g.Add("A", "B")
	g.Add("B", "A")

	reached := g.ReachableFrom("A")
	assert.True(t, reached.Has("A"), "a cycle back to the start must be reported")
}

func TestDirectedGraphReachableFromIsolatedVertex(t *testing.T) {
	g := newDirectedGraph()
	reached := g.ReachableFrom("X")
	assert.Len(t, reached, 0)
}
