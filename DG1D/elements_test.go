package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJacobi(t *testing.T) {
	{ // Gauss points of Legendre
		X, W := JacobiGQ(0, 0, 1)
		assert.True(t, near(X[0], -1./math.Sqrt(3)))
		assert.True(t, near(X[1], 1./math.Sqrt(3)))
		assert.True(t, near(W[0], 1))
		assert.True(t, near(W[1], 1))
	}
	{
		X, W := JacobiGQ(0, 0, 0)
		assert.Equal(t, []float64{0}, X)
		assert.Equal(t, []float64{2}, W)
	}
	{ // Lobatto points include the ends
		assert.Equal(t, []float64{-1, 1}, JacobiGL(0, 0, 1))
		X := JacobiGL(0, 0, 2)
		assert.Equal(t, 3, len(X))
		assert.InDelta(t, 0, X[1], 1.e-12)
		X = JacobiGL(0, 0, 3)
		assert.True(t, near(X[1], -1./math.Sqrt(5)))
		assert.True(t, near(X[2], 1./math.Sqrt(5)))
		for i := 1; i < len(X); i++ {
			assert.Greater(t, X[i], X[i-1])
		}
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a) {
		l = true
	}
	return
}
