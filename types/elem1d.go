package types

// Sides of a 1D element. The left side holds the element's first vertex.
const (
	Left  = 0
	Right = 1
)

// NoNeighbor marks an element side that lies on the domain boundary
const NoNeighbor = -1

/*
Elem1D is a line element as seen through the mesh interface. Nodes holds the global vertex ids of the left and right
endpoints, Neighbors holds the element id connected through each side or NoNeighbor.
*/
type Elem1D struct {
	ID        int
	Nodes     [2]int
	Neighbors [2]int
}

func (e Elem1D) Node(side int) int { return e.Nodes[side] }

func (e Elem1D) HasNeighbor(side int) bool { return e.Neighbors[side] != NoNeighbor }
