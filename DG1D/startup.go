package DG1D

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gnuplot1d/types"
)

/*
Connect1D rebuilds EToE for the active elements. Face f of element k is row 2k+f of the face to vertex incidence
matrix, so two faces touch when their row product is one: FToF = FToV * FToV^T. Inactive elements leave their rows
empty and never appear as a neighbor.
*/
func (m *Mesh1D) Connect1D() {
	var (
		NFaces     = 2
		K          = len(m.EToV)
		Nv         = len(m.VX)
		TotalFaces = NFaces * K
	)
	m.EToE = make([][2]int, K)
	for k := range m.EToE {
		m.EToE[k] = [2]int{types.NoNeighbor, types.NoNeighbor}
	}
	if m.NActiveElements() == 0 {
		return
	}
	SpFToV_Tmp := sparse.NewDOK(TotalFaces, Nv)
	for k := 0; k < K; k++ {
		if !m.Active[k] {
			continue
		}
		for face := 0; face < NFaces; face++ {
			SpFToV_Tmp.Set(NFaces*k+face, m.EToV[k][face], 1)
		}
	}
	SpFToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	SpFToV := SpFToV_Tmp.ToCSR()
	SpFToF.Mul(SpFToV, SpFToV.T())
	SpFToF.DoNonZero(func(i, j int, v float64) {
		if i == j || v != 1 {
			return
		}
		element1, face1 := i/NFaces, i%NFaces
		element2 := j / NFaces
		m.EToE[element1][face1] = element2
	})
}
