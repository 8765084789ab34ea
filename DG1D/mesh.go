package DG1D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gnuplot1d/types"
	"github.com/notargets/gnuplot1d/utils"
)

/*
Mesh1D is a serial line mesh. Vertices are addressed by global id into VX, elements by their index into EToV. Refined
elements stay in the element arrays but are marked inactive, their children are appended at the end.
*/
type Mesh1D struct {
	VX       []float64 // Vertex coordinates, indexed by global vertex id
	EToV     [][2]int  // Left and right vertex of each element
	EToE     [][2]int  // Neighbor element through each side, types.NoNeighbor on the boundary
	Active   []bool
	Parent   []int // Element this one was refined from, -1 for the initial elements
	Children [][2]int
	Level    []int // Number of refinements between this element and the initial mesh
}

// SimpleMesh1D returns K equal width elements spanning [xmin, xmax]
func SimpleMesh1D(xmin, xmax float64, K int) (VX []float64, EToV [][2]int) {
	VX = floats.Span(make([]float64, K+1), xmin, xmax)
	EToV = make([][2]int, K)
	for k := 0; k < K; k++ {
		EToV[k] = [2]int{k, k + 1}
	}
	return
}

// GLLMesh1D returns K elements with vertices at the Gauss-Lobatto points, clustered toward both ends
func GLLMesh1D(xmin, xmax float64, K int) (VX []float64, EToV [][2]int) {
	R := JacobiGL(0, 0, K)
	VX = make([]float64, K+1)
	for i, r := range R {
		VX[i] = xmin + 0.5*(r+1)*(xmax-xmin)
	}
	// Pin the ends so the domain extent is exact
	VX[0], VX[K] = xmin, xmax
	EToV = make([][2]int, K)
	for k := 0; k < K; k++ {
		EToV[k] = [2]int{k, k + 1}
	}
	return
}

/*
NewMesh1D copies the vertex coordinates and connectivity, orients each element so that its first vertex is the left
one and connects the elements through their shared vertices.
*/
func NewMesh1D(VX []float64, EToV [][2]int) (m *Mesh1D, err error) {
	var (
		K = len(EToV)
	)
	m = &Mesh1D{
		VX:       append([]float64(nil), VX...),
		EToV:     make([][2]int, K),
		Active:   make([]bool, K),
		Parent:   make([]int, K),
		Children: make([][2]int, K),
		Level:    make([]int, K),
	}
	for k, verts := range EToV {
		for _, v := range verts {
			if v < 0 || v >= len(VX) {
				err = fmt.Errorf("element %d references vertex %d, mesh has %d vertices", k, v, len(VX))
				return nil, err
			}
		}
		if verts[0] == verts[1] {
			err = fmt.Errorf("element %d has both ends on vertex %d", k, verts[0])
			return nil, err
		}
		if math.Abs(VX[verts[0]]-VX[verts[1]]) < utils.NODETOL {
			err = fmt.Errorf("element %d has zero length at x = %g", k, VX[verts[0]])
			return nil, err
		}
		if VX[verts[0]] > VX[verts[1]] {
			verts[0], verts[1] = verts[1], verts[0]
		}
		m.EToV[k] = verts
		m.Active[k] = true
		m.Parent[k] = -1
		m.Children[k] = [2]int{-1, -1}
	}
	m.Connect1D()
	return
}

func (m *Mesh1D) MeshDimension() int { return 1 }

func (m *Mesh1D) NVertices() int { return len(m.VX) }

func (m *Mesh1D) NElements() int { return len(m.EToV) }

func (m *Mesh1D) NActiveElements() (n int) {
	for _, a := range m.Active {
		if a {
			n++
		}
	}
	return
}

// ProcessorID of a serial mesh is always the coordinator
func (m *Mesh1D) ProcessorID() int { return 0 }

func (m *Mesh1D) Point(id int) float64 { return m.VX[id] }

func (m *Mesh1D) Elem(k int) types.Elem1D {
	return types.Elem1D{
		ID:        k,
		Nodes:     m.EToV[k],
		Neighbors: m.EToE[k],
	}
}

// ActiveElements lists the active elements in element id order
func (m *Mesh1D) ActiveElements() (elems []types.Elem1D) {
	elems = make([]types.Elem1D, 0, len(m.EToV))
	for k, a := range m.Active {
		if a {
			elems = append(elems, m.Elem(k))
		}
	}
	return
}

// Bounds returns the coordinate range covered by the active elements
func (m *Mesh1D) Bounds() (xmin, xmax float64) {
	var (
		x = make([]float64, 0, 2*len(m.EToV))
	)
	for _, e := range m.ActiveElements() {
		x = append(x, m.VX[e.Nodes[0]], m.VX[e.Nodes[1]])
	}
	if len(x) == 0 {
		return
	}
	return floats.Min(x), floats.Max(x)
}
