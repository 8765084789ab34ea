package DG1D

import (
	"github.com/notargets/gnuplot1d/types"
	"github.com/notargets/gnuplot1d/utils"
)

/*
RankView is one rank's handle on a mesh that every rank holds a full copy of. The active elements are split into
contiguous buckets, one per rank, and NActiveElements sums the owned counts across the group. The partition follows
the mesh, so refining after View moves elements between buckets.
*/
type RankView struct {
	*Mesh1D
	Comm *utils.Comm
}

func (m *Mesh1D) View(comm *utils.Comm) (rv *RankView) {
	rv = &RankView{
		Mesh1D: m,
		Comm:   comm,
	}
	return
}

func (rv *RankView) ProcessorID() int { return rv.Comm.Rank() }

// PartitionMap buckets the current active element list
func (rv *RankView) PartitionMap() *utils.PartitionMap {
	return utils.NewPartitionMap(rv.Comm.Size(), rv.Mesh1D.NActiveElements())
}

// Owner is the rank owning position i of the active element list, -1 if i is out of range
func (rv *RankView) Owner(i int) (rank int) {
	rank, _, _ = rv.PartitionMap().GetBucket(i)
	return
}

// LocalElements are the active elements owned by this rank
func (rv *RankView) LocalElements() (elems []types.Elem1D) {
	var (
		pm   = rv.PartitionMap()
		rank = rv.Comm.Rank()
	)
	for i, e := range rv.Mesh1D.ActiveElements() {
		if bn, _, _ := pm.GetBucket(i); bn == rank {
			elems = append(elems, e)
		}
	}
	return
}

// NActiveElements is collective, every rank of the group must call it
func (rv *RankView) NActiveElements() int {
	return rv.Comm.AllReduceSumInt(rv.PartitionMap().GetBucketDimension(rv.Comm.Rank()))
}
