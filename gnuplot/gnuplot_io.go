/*
Package gnuplot writes the solution on a one dimensional mesh as a gnuplot script plus a tab separated data file that
the script plots. Load the script in gnuplot with "call '<fname>'".
*/
package gnuplot

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/notargets/gnuplot1d/types"
	"github.com/notargets/gnuplot1d/utils"
)

// Mesh is the read-only view of a distributed 1D mesh the writer needs
type Mesh interface {
	MeshDimension() int
	// NActiveElements is collective, every rank has to call it
	NActiveElements() int
	ActiveElements() []types.Elem1D
	Point(id int) float64
	ProcessorID() int
}

type Properties uint8

const (
	GridOn Properties = 1 << iota
	PNGOutputOn
)

const DataSuffix = "_data"

type Options struct {
	Title      string
	Grid       bool   // Tick every element boundary on x2 and draw a grid on those ticks
	PNGOutput  bool   // Render to <fname>.png instead of the interactive terminal
	AxesLimits string // Written verbatim between "plot" and the first data reference, e.g. "[][0:1.2]"
	Precision  int    // Significant digits for coordinates and values, <= 0 for the shortest exact form
	Logger     *slog.Logger
}

type Writer struct {
	mesh Mesh
	Options
}

func NewWriter(m Mesh, title string, props Properties) *Writer {
	return &Writer{
		mesh: m,
		Options: Options{
			Title:     title,
			Grid:      props&GridOn != 0,
			PNGOutput: props&PNGOutputOn != 0,
		},
	}
}

// Export writes <base> and <base>_data on the coordinating rank. All ranks must call it.
func Export(m Mesh, soln []float64, names []string, base string, opt Options) error {
	w := &Writer{mesh: m, Options: opt}
	return w.WriteNodalData(base, soln, names)
}

// Write has no solution to plot and always fails, the writer only handles nodal data
func (w *Writer) Write(fname string) error {
	return w.WriteSolution(fname, nil, nil)
}

func (w *Writer) WriteNodalData(fname string, soln []float64, names []string) (err error) {
	var (
		start = time.Now()
	)
	err = w.WriteSolution(fname, soln, names)
	w.logger().Debug("write_nodal_data", "file", fname, "elapsed", time.Since(start), "error", err)
	return
}

func (w *Writer) WriteSolution(fname string, soln []float64, names []string) (err error) {
	var (
		log = w.logger()
	)
	// Every rank contributes to the count, only the coordinator goes on to write
	nActive := w.mesh.NActiveElements()
	if w.mesh.ProcessorID() != 0 {
		return
	}
	if dim := w.mesh.MeshDimension(); dim != 1 {
		log.Error("mesh dimension", "dim", dim)
		return ErrUnsupportedDimension
	}
	if soln == nil || len(names) == 0 {
		return ErrMissingSolution
	}
	var (
		elems = w.mesh.ActiveElements()
		nVars = len(names)
		lo    *Layout
		rows  []NodeRow
	)
	if lo, err = NewLayout(elems, w.mesh.Point, nActive, w.Precision); err != nil {
		return
	}
	if rows, err = CollectNodes(elems, w.mesh.Point, soln, nVars); err != nil {
		return
	}

	dataFile := fname + DataSuffix
	if err = writeFile("script", fname, func(bw *bufio.Writer) error {
		return w.writeScript(bw, fname, dataFile, lo, names)
	}); err != nil {
		return
	}
	// A data file failure leaves the script behind, it is not rolled back
	if err = writeFile("data", dataFile, func(bw *bufio.Writer) error {
		return writeData(bw, rows, w.Precision)
	}); err != nil {
		return
	}
	log.Info("wrote gnuplot solution", "script", fname, "data", dataFile,
		"elements", nActive, "nodes", len(rows), "vars", nVars)
	return
}

func (w *Writer) writeScript(bw *bufio.Writer, fname, dataFile string, lo *Layout, names []string) (err error) {
	var (
		b strings.Builder
		p = w.Precision
	)
	b.WriteString("# This file was generated by gnuplot1d\n")
	b.WriteString("# Stores 1D solution data in GNUplot format\n")
	b.WriteString("# Execute this by loading gnuplot and typing \"call '" + fname + "'\"\n")
	b.WriteString("reset\n")
	b.WriteString("set title \"" + w.Title + "\"\n")
	b.WriteString("set xlabel \"x\"\n")
	b.WriteString("set xtics nomirror\n")
	b.WriteString("set xrange [" + formatFloat(lo.XMin, p) + ":" + formatFloat(lo.XMax, p) + "]\n")
	if w.Grid {
		b.WriteString("set x2tics (" + lo.XTics + ")\n")
		b.WriteString("set grid noxtics noytics x2tics\n")
	}
	if w.PNGOutput {
		b.WriteString("set terminal png\n")
		b.WriteString("set output \"" + fname + ".png\"\n")
	}
	b.WriteString("plot ")
	if w.AxesLimits != "" {
		b.WriteString(w.AxesLimits + " ")
	}
	for i, name := range names {
		if i > 0 {
			b.WriteString(", \\\n")
		}
		b.WriteString(plotClause(dataFile, i+2, name))
	}
	b.WriteString("\n")
	_, err = bw.WriteString(b.String())
	return
}

func plotClause(dataFile string, column int, title string) string {
	return "\"" + dataFile + "\" using 1:" + strconv.Itoa(column) + " title \"" + title + "\" with lines"
}

// writeData formats each row completely before handing it to the buffered writer
func writeData(bw *bufio.Writer, rows []NodeRow, precision int) (err error) {
	var (
		line []byte
	)
	for _, row := range rows {
		line = append(line[:0], formatFloat(row.X, precision)...)
		for _, v := range row.Values {
			line = append(line, '\t')
			line = append(line, formatFloat(v, precision)...)
		}
		line = append(line, '\n')
		if _, err = bw.Write(line); err != nil {
			return
		}
	}
	return
}

func writeFile(artifact, path string, fill func(bw *bufio.Writer) error) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(path); err != nil {
		return &FileError{Artifact: artifact, Path: path, Op: "open", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Artifact: artifact, Path: path, Op: "close", Err: cerr}
		}
	}()
	bw := bufio.NewWriter(f)
	if err = fill(bw); err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return &FileError{Artifact: artifact, Path: path, Op: "write", Err: err}
	}
	return
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return utils.NewNopLogger()
	}
	return w.Logger
}
