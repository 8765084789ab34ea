package gnuplot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notargets/gnuplot1d/types"
)

// Layout is the plot geometry derived from the active elements
type Layout struct {
	XMin, XMax float64
	Ticks      []float64 // Element boundaries in traversal order, starting with XMin for the left boundary element
	XTics      string    // Body of the x2tics directive
}

/*
NewLayout walks the active elements once. The left boundary element sets XMin, the right boundary element sets
XMax, and every element's right vertex becomes a tick. nActive is the collective element count, it decides where the
tick list ends.
*/
func NewLayout(elems []types.Elem1D, point func(id int) float64, nActive, precision int) (lo *Layout, err error) {
	var (
		haveMin, haveMax bool
		xtics            strings.Builder
	)
	lo = &Layout{
		Ticks: make([]float64, 0, nActive+1),
	}
	for count, e := range elems {
		if !e.HasNeighbor(types.Left) {
			lo.XMin = point(e.Node(types.Left))
			haveMin = true
			lo.Ticks = append(lo.Ticks, lo.XMin)
			fmt.Fprintf(&xtics, "\"\" %s, \\\n", formatFloat(lo.XMin, precision))
		}
		if !e.HasNeighbor(types.Right) {
			lo.XMax = point(e.Node(types.Right))
			haveMax = true
		}
		x := point(e.Node(types.Right))
		lo.Ticks = append(lo.Ticks, x)
		fmt.Fprintf(&xtics, "\"\" %s", formatFloat(x, precision))
		if count+1 != nActive {
			xtics.WriteString(", \\\n")
		}
	}
	if !haveMin || !haveMax {
		err = fmt.Errorf("%w: left found %v, right found %v", ErrNoBoundary, haveMin, haveMax)
		return nil, err
	}
	lo.XTics = xtics.String()
	return
}

func formatFloat(x float64, precision int) string {
	if precision <= 0 {
		precision = -1
	}
	if x == 0 {
		x = 0
	}
	return strconv.FormatFloat(x, 'g', precision, 64)
}
