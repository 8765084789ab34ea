package utils

import (
	"fmt"
	"sync"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucket(kDim int) (bucketNum, min, max int) {
	_, bucketNum, min, max = pm.getBucketWithTryCount(kDim)
	return
}

func (pm *PartitionMap) getBucketWithTryCount(kDim int) (tryCount, bucketNum, min, max int) {
	if kDim < 0 || kDim >= pm.MaxIndex {
		return 0, -1, 0, 0
	}
	// Initial guess
	bucketNum = int(float64(pm.ParallelDegree*kDim) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= kDim && pm.Partitions[bucketNum][1] > kDim) {
		if pm.Partitions[bucketNum][0] > kDim {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			return 0, -1, 0, 0
		}
		tryCount++
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into pm.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

/*
Group is a set of in-process ranks that take part in blocking collectives. Every rank of the group has to enter a
collective before any of them returns from it, the same contract as an MPI communicator.
*/
type Group struct {
	NP         int
	mu         sync.Mutex
	cond       *sync.Cond
	arrived    int
	generation uint64
	sum        int
	result     int
}

func NewGroup(NP int) (g *Group) {
	if NP < 1 {
		panic(fmt.Sprintf("group size must be at least one, have %d", NP))
	}
	g = &Group{NP: NP}
	g.cond = sync.NewCond(&g.mu)
	return
}

// Comm returns the handle used by one rank of the group
func (g *Group) Comm(rank int) *Comm {
	if rank < 0 || rank >= g.NP {
		panic(fmt.Sprintf("rank %d out of bounds for group of size %d", rank, g.NP))
	}
	return &Comm{group: g, rank: rank}
}

func (g *Group) allReduceSum(val int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	gen := g.generation
	g.sum += val
	g.arrived++
	if g.arrived == g.NP {
		g.result = g.sum
		g.sum, g.arrived = 0, 0
		g.generation++
		g.cond.Broadcast()
		return g.result
	}
	// result can't be overwritten before we read it, the next round needs this rank too
	for gen == g.generation {
		g.cond.Wait()
	}
	return g.result
}

type Comm struct {
	group *Group
	rank  int
}

// SerialComm is a group of one, for callers that never run in parallel
func SerialComm() *Comm {
	return NewGroup(1).Comm(0)
}

func (c *Comm) Rank() int { return c.rank }

func (c *Comm) Size() int { return c.group.NP }

// AllReduceSumInt blocks until every rank has contributed, then returns the total to all of them
func (c *Comm) AllReduceSumInt(val int) int {
	return c.group.allReduceSum(val)
}
