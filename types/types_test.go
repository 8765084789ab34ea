package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElem1D(t *testing.T) {
	{ // Interior element
		e := Elem1D{ID: 3, Nodes: [2]int{7, 2}, Neighbors: [2]int{1, 4}}
		assert.Equal(t, 7, e.Node(Left))
		assert.Equal(t, 2, e.Node(Right))
		assert.True(t, e.HasNeighbor(Left))
		assert.True(t, e.HasNeighbor(Right))
	}
	{ // Left boundary element
		e := Elem1D{Nodes: [2]int{0, 1}, Neighbors: [2]int{NoNeighbor, 1}}
		assert.False(t, e.HasNeighbor(Left))
		assert.True(t, e.HasNeighbor(Right))
	}
	{ // Single element domain
		e := Elem1D{Nodes: [2]int{0, 1}, Neighbors: [2]int{NoNeighbor, NoNeighbor}}
		assert.False(t, e.HasNeighbor(Left))
		assert.False(t, e.HasNeighbor(Right))
	}
}
