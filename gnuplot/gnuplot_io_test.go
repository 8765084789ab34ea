package gnuplot

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gnuplot1d/DG1D"
	"github.com/notargets/gnuplot1d/types"
	"github.com/notargets/gnuplot1d/utils"
)

type fakeMesh struct {
	dim   int
	elems []types.Elem1D
	x     []float64
}

func (fm *fakeMesh) MeshDimension() int             { return fm.dim }
func (fm *fakeMesh) NActiveElements() int           { return len(fm.elems) }
func (fm *fakeMesh) ActiveElements() []types.Elem1D { return fm.elems }
func (fm *fakeMesh) Point(id int) float64           { return fm.x[id] }
func (fm *fakeMesh) ProcessorID() int               { return 0 }

func threeElements(t *testing.T) *DG1D.Mesh1D {
	VX, EToV := DG1D.SimpleMesh1D(0, 3, 3)
	m, err := DG1D.NewMesh1D(VX, EToV)
	require.NoError(t, err)
	return m
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertNoFiles(t *testing.T, dir string) {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportSingleVariable(t *testing.T) {
	var (
		dir  = t.TempDir()
		base = filepath.Join(dir, "sol")
		m    = threeElements(t)
	)
	require.NoError(t, Export(m, []float64{10, 20, 30, 40}, []string{"u"}, base, Options{Title: "Test"}))

	assert.Equal(t, "0\t10\n1\t20\n2\t30\n3\t40\n", readFile(t, base+"_data"))

	script := readFile(t, base)
	expected := `# This file was generated by gnuplot1d
# Stores 1D solution data in GNUplot format
# Execute this by loading gnuplot and typing "call '` + base + `'"
reset
set title "Test"
set xlabel "x"
set xtics nomirror
set xrange [0:3]
plot "` + base + `_data" using 1:2 title "u" with lines
`
	assert.Equal(t, expected, script)
	assert.NotContains(t, script, "x2tics")
	assert.NotContains(t, script, "set terminal")
}

func TestExportGrid(t *testing.T) {
	var (
		dir  = t.TempDir()
		base = filepath.Join(dir, "sol")
		m    = threeElements(t)
		soln = []float64{10, 20, 30, 40}
	)
	{
		require.NoError(t, Export(m, soln, []string{"u"}, base, Options{Grid: true}))
		script := readFile(t, base)
		assert.Contains(t, script, "set x2tics (\"\" 0, \\\n\"\" 1, \\\n\"\" 2, \\\n\"\" 3)\n")
		assert.Contains(t, script, "set grid noxtics noytics x2tics\n")
	}
	{
		require.NoError(t, Export(m, soln, []string{"u"}, base, Options{Grid: false}))
		script := readFile(t, base)
		assert.NotContains(t, script, "x2tics")
		assert.NotContains(t, script, "set grid")
	}
}

func TestExportPNG(t *testing.T) {
	var (
		dir  = t.TempDir()
		base = filepath.Join(dir, "sol")
	)
	w := NewWriter(threeElements(t), "png", PNGOutputOn)
	assert.True(t, w.PNGOutput)
	assert.False(t, w.Grid)
	require.NoError(t, w.WriteNodalData(base, []float64{1, 2, 3, 4}, []string{"u"}))
	script := readFile(t, base)
	assert.Contains(t, script, "set terminal png\nset output \""+base+".png\"\n")
	// redirection comes before the plot statement
	assert.Less(t, strings.Index(script, "set terminal png"), strings.Index(script, "\nplot "))
}

func TestExportMultipleVariables(t *testing.T) {
	var (
		dir   = t.TempDir()
		base  = filepath.Join(dir, "multi")
		names = []string{"rho", "u", "p"}
		soln  = make([]float64, 4*len(names))
	)
	for i := range soln {
		soln[i] = float64(i)
	}
	w := NewWriter(threeElements(t), "multi", GridOn|PNGOutputOn)
	w.AxesLimits = "[][-1:12]"
	require.NoError(t, w.WriteNodalData(base, soln, names))

	script := readFile(t, base)
	assert.Equal(t, len(names), strings.Count(script, "with lines"))
	assert.Contains(t, script, "plot [][-1:12] \""+base+"_data\" using 1:2 title \"rho\" with lines, \\\n")
	assert.Contains(t, script, "\""+base+"_data\" using 1:3 title \"u\" with lines, \\\n")
	assert.Contains(t, script, "\""+base+"_data\" using 1:4 title \"p\" with lines\n")
	assert.True(t, strings.HasSuffix(script, "with lines\n"))

	lines := strings.Split(strings.TrimSuffix(readFile(t, base+"_data"), "\n"), "\n")
	require.Equal(t, 4, len(lines))
	for _, line := range lines {
		assert.Equal(t, len(names), strings.Count(line, "\t"))
	}
	assert.Equal(t, "2\t6\t7\t8", lines[2])
}

func TestExportMissingSolution(t *testing.T) {
	var (
		m = threeElements(t)
	)
	{
		dir := t.TempDir()
		err := Export(m, nil, []string{"u"}, filepath.Join(dir, "a"), Options{})
		assert.ErrorIs(t, err, ErrMissingSolution)
		assertNoFiles(t, dir)
	}
	{
		dir := t.TempDir()
		err := Export(m, []float64{1, 2, 3, 4}, nil, filepath.Join(dir, "a"), Options{})
		assert.ErrorIs(t, err, ErrMissingSolution)
		assertNoFiles(t, dir)
	}
	{
		dir := t.TempDir()
		err := NewWriter(m, "", 0).Write(filepath.Join(dir, "a"))
		assert.ErrorIs(t, err, ErrMissingSolution)
		assertNoFiles(t, dir)
	}
}

func TestExportUnsupportedDimension(t *testing.T) {
	for _, dim := range []int{2, 3} {
		dir := t.TempDir()
		fm := &fakeMesh{
			dim: dim,
			elems: []types.Elem1D{
				{ID: 0, Nodes: [2]int{0, 1}, Neighbors: [2]int{types.NoNeighbor, types.NoNeighbor}},
			},
			x: []float64{0, 1},
		}
		err := Export(fm, []float64{1, 2}, []string{"u"}, filepath.Join(dir, "a"), Options{})
		assert.ErrorIs(t, err, ErrUnsupportedDimension)
		assertNoFiles(t, dir)
	}
}

func TestExportNoBoundary(t *testing.T) {
	var (
		dir = t.TempDir()
	)
	m, err := DG1D.NewMesh1D([]float64{0, 1, 2}, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)
	err = Export(m, []float64{1, 2, 3}, []string{"u"}, filepath.Join(dir, "a"), Options{})
	assert.ErrorIs(t, err, ErrNoBoundary)
	assertNoFiles(t, dir)

	fm := &fakeMesh{dim: 1}
	err = Export(fm, []float64{}, []string{"u"}, filepath.Join(dir, "a"), Options{})
	assert.ErrorIs(t, err, ErrNoBoundary)
	assertNoFiles(t, dir)
}

func TestExportShortSolution(t *testing.T) {
	var (
		dir = t.TempDir()
	)
	err := Export(threeElements(t), []float64{1, 2, 3, 4, 5, 6, 7}, []string{"u", "v"},
		filepath.Join(dir, "a"), Options{})
	assert.ErrorIs(t, err, ErrShortSolution)
	assertNoFiles(t, dir)
}

func TestExportFileErrors(t *testing.T) {
	var (
		m    = threeElements(t)
		soln = []float64{1, 2, 3, 4}
	)
	{ // Script can't be opened
		dir := t.TempDir()
		base := filepath.Join(dir, "missing", "sol")
		err := Export(m, soln, []string{"u"}, base, Options{})
		var fe *FileError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "script", fe.Artifact)
		assert.Equal(t, "open", fe.Op)
		assert.Equal(t, base, fe.Path)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	}
	{ // Data file can't be opened, the script stays behind
		dir := t.TempDir()
		base := filepath.Join(dir, "sol")
		require.NoError(t, os.Mkdir(base+DataSuffix, 0o755))
		err := Export(m, soln, []string{"u"}, base, Options{})
		var fe *FileError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "data", fe.Artifact)
		assert.Equal(t, "open", fe.Op)
		assert.Contains(t, readFile(t, base), "using 1:2")
	}
	{ // Failure while filling the file
		var (
			path  = filepath.Join(t.TempDir(), "sol")
			cause = errors.New("disk gone")
		)
		err := writeFile("data", path, func(bw *bufio.Writer) error {
			_, _ = bw.WriteString("0\t1\n")
			return cause
		})
		var fe *FileError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "data", fe.Artifact)
		assert.Equal(t, "write", fe.Op)
		assert.Equal(t, path, fe.Path)
		assert.ErrorIs(t, err, cause)
	}
	{ // Failure on the final flush
		f, err := os.OpenFile("/dev/full", os.O_WRONLY, 0)
		if err != nil {
			t.Skip("no writable /dev/full")
		}
		require.NoError(t, f.Close())
		err = writeFile("script", "/dev/full", func(bw *bufio.Writer) error {
			_, err := bw.WriteString("plot 1\n")
			return err
		})
		var fe *FileError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "write", fe.Op)
		assert.ErrorIs(t, err, syscall.ENOSPC)
	}
}

func TestExportRefinedMesh(t *testing.T) {
	var (
		dir  = t.TempDir()
		base = filepath.Join(dir, "refined")
	)
	VX, EToV := DG1D.SimpleMesh1D(0, 4, 4)
	m, err := DG1D.NewMesh1D(VX, EToV)
	require.NoError(t, err)
	_, err = m.Refine(2)
	require.NoError(t, err)
	_, err = m.Refine(0)
	require.NoError(t, err)
	// Vertex 5 is at 2.5 and vertex 6 at 0.5, the solution is 10*x at every vertex
	soln := make([]float64, m.NVertices())
	for id := range soln {
		soln[id] = 10 * m.Point(id)
	}
	require.NoError(t, Export(m, soln, []string{"u"}, base, Options{Grid: true}))
	assert.Equal(t, "0\t0\n0.5\t5\n1\t10\n2\t20\n2.5\t25\n3\t30\n4\t40\n", readFile(t, base+"_data"))
	script := readFile(t, base)
	assert.Contains(t, script, "set xrange [0:4]\n")
	// ticks follow element id order, the left boundary element adds 0 ahead of its own tick
	assert.Contains(t, script, "set x2tics (\"\" 2, \\\n\"\" 4, \\\n\"\" 2.5, \\\n\"\" 3, \\\n\"\" 0, \\\n\"\" 0.5, \\\n\"\" 1)\n")
}

func TestExportPrecision(t *testing.T) {
	var (
		dir  = t.TempDir()
		base = filepath.Join(dir, "p")
	)
	VX, EToV := DG1D.SimpleMesh1D(0, 1, 3)
	m, err := DG1D.NewMesh1D(VX, EToV)
	require.NoError(t, err)
	require.NoError(t, Export(m, VX, []string{"x"}, base, Options{Precision: 3}))
	assert.Equal(t, "0\t0\n0.333\t0.333\n0.667\t0.667\n1\t1\n", readFile(t, base+"_data"))
}

func TestExportRanks(t *testing.T) {
	var (
		NP   = 4
		dir  = t.TempDir()
		base = filepath.Join(dir, "ranks")
		g    = utils.NewGroup(NP)
		wg   sync.WaitGroup
		errs = make([]error, NP)
	)
	VX, EToV := DG1D.SimpleMesh1D(0, 3, 3)
	m, err := DG1D.NewMesh1D(VX, EToV)
	require.NoError(t, err)
	for n := 0; n < NP; n++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			rv := m.View(g.Comm(rank))
			// Only the coordinator holds the solution
			var (
				soln  []float64
				names []string
			)
			if rank == 0 {
				soln, names = []float64{10, 20, 30, 40}, []string{"u"}
			}
			errs[rank] = Export(rv, soln, names, base, Options{Grid: true})
		}(n)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "0\t10\n1\t20\n2\t30\n3\t40\n", readFile(t, base+"_data"))
	assert.Contains(t, readFile(t, base), "\"\" 2, \\\n\"\" 3)\n")
}
