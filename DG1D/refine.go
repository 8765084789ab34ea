package DG1D

import "fmt"

/*
Refine bisects active element k. The midpoint vertex gets the next free vertex id, so vertex ids stop following the
coordinate order. The two children are appended after the existing elements and the parent is deactivated.
*/
func (m *Mesh1D) Refine(k int) (children [2]int, err error) {
	if k < 0 || k >= len(m.EToV) {
		err = fmt.Errorf("element %d out of range, mesh has %d elements", k, len(m.EToV))
		return
	}
	if !m.Active[k] {
		err = fmt.Errorf("element %d is not active", k)
		return
	}
	var (
		a, b = m.EToV[k][0], m.EToV[k][1]
		mid  = len(m.VX)
	)
	m.VX = append(m.VX, 0.5*(m.VX[a]+m.VX[b]))
	children = [2]int{len(m.EToV), len(m.EToV) + 1}
	m.EToV = append(m.EToV, [2]int{a, mid}, [2]int{mid, b})
	m.Active = append(m.Active, true, true)
	m.Parent = append(m.Parent, k, k)
	m.Children = append(m.Children, [2]int{-1, -1}, [2]int{-1, -1})
	m.Level = append(m.Level, m.Level[k]+1, m.Level[k]+1)
	m.Active[k] = false
	m.Children[k] = children
	m.Connect1D()
	return
}

// RefineAll bisects every element that is active on entry
func (m *Mesh1D) RefineAll() (err error) {
	var (
		K = len(m.EToV)
	)
	for k := 0; k < K; k++ {
		if !m.Active[k] {
			continue
		}
		if _, err = m.Refine(k); err != nil {
			return
		}
	}
	return
}
