package gnuplot

import (
	"fmt"
	"maps"
	"slices"

	"github.com/notargets/gnuplot1d/types"
)

// NodeRow is one line of the data file
type NodeRow struct {
	X      float64
	Values []float64
}

/*
CollectNodes gathers the solution at both vertices of every active element, keyed by coordinate. Vertices shared by
neighboring elements collapse onto one row, the last element visited wins, and -0 and +0 share the +0 row. Rows come back in ascending coordinate.
*/
func CollectNodes(elems []types.Elem1D, point func(id int) float64, soln []float64, nVars int) (rows []NodeRow,
	err error) {
	var (
		nodeMap = make(map[float64][]float64, len(elems)+1)
	)
	for _, e := range elems {
		for _, globalID := range e.Nodes {
			start, end := globalID*nVars, (globalID+1)*nVars
			if globalID < 0 || end > len(soln) {
				err = fmt.Errorf("%w: node %d needs values [%d:%d], have %d",
					ErrShortSolution, globalID, start, end, len(soln))
				return nil, err
			}
			values := make([]float64, nVars)
			copy(values, soln[start:end])
			x := point(globalID)
			if x == 0 {
				x = 0 // assignment rewrites the stored key, -0 would replace 0
			}
			nodeMap[x] = values
		}
	}
	keys := slices.Sorted(maps.Keys(nodeMap))
	rows = make([]NodeRow, len(keys))
	for i, x := range keys {
		rows[i] = NodeRow{X: x, Values: nodeMap[x]}
	}
	return
}
