package gnuplot

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSolution      = errors.New("gnuplot: a solution and its variable names are required")
	ErrUnsupportedDimension = errors.New("gnuplot: only one dimensional meshes can be written")
	ErrNoBoundary           = errors.New("gnuplot: mesh has no boundary element")
	ErrShortSolution        = errors.New("gnuplot: solution is shorter than the mesh requires")
)

// FileError reports an output file that could not be produced
type FileError struct {
	Artifact string // "script" or "data"
	Path     string
	Op       string // "open", "write" or "close"
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("gnuplot: %s %s file %q: %v", e.Op, e.Artifact, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
