// Package igormat bridges decoded Igor waves into gonum containers.
//
// Igor stores multidimensional data column major, with the first
// dimension varying fastest. The constructors here reorder cells into
// the row major layout gonum expects.
package igormat

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/igor-tools/go-igor/igor"
)

// Vector converts a rank 1 numeric wave into a gonum vector.
func Vector(w *igor.Wave) (*mat.VecDense, error) {
	if r := w.Rank(); r != 1 {
		return nil, fmt.Errorf("wave %q has rank %d, want 1", w.Name(), r)
	}
	vals, err := w.Float64s()
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(len(vals), vals), nil
}

// Dense converts a rank 1 or rank 2 numeric wave into a gonum matrix.
// A rank 1 wave becomes a single column.
func Dense(w *igor.Wave) (*mat.Dense, error) {
	vals, err := w.Float64s()
	if err != nil {
		return nil, err
	}
	shape := w.Shape()
	switch len(shape) {
	case 1:
		return mat.NewDense(shape[0], 1, vals), nil
	case 2:
		rows, cols := shape[0], shape[1]
		m := mat.NewDense(rows, cols, nil)
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				m.Set(i, j, vals[j*rows+i])
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("wave %q has rank %d, want at most 2", w.Name(), len(shape))
	}
}

// Complexes returns the cells of a complex wave in storage order.
func Complexes(w *igor.Wave) ([]complex128, error) {
	return w.Complex128s()
}

// CDense converts a rank 1 or rank 2 complex wave into a gonum complex
// matrix. A rank 1 wave becomes a single column.
func CDense(w *igor.Wave) (*mat.CDense, error) {
	vals, err := Complexes(w)
	if err != nil {
		return nil, err
	}
	shape := w.Shape()
	switch len(shape) {
	case 1:
		return mat.NewCDense(shape[0], 1, vals), nil
	case 2:
		rows, cols := shape[0], shape[1]
		m := mat.NewCDense(rows, cols, nil)
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				m.Set(i, j, vals[j*rows+i])
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("wave %q has rank %d, want at most 2", w.Name(), len(shape))
	}
}

// Axis returns the calibrated ruler of one axis, running linearly
// across the wave's scaling pair with one value per point. Axes the
// wave does not have yield nil.
func Axis(w *igor.Wave, dim int) []float64 {
	shape := w.Shape()
	if dim < 0 || dim >= len(shape) || shape[dim] == 0 {
		return nil
	}
	start, end := w.DimScale(dim)
	if shape[dim] == 1 {
		return []float64{start}
	}
	return floats.Span(make([]float64, shape[dim]), start, end)
}
