package igor

import (
	"strconv"

	"github.com/igor-tools/go-igor/internal/record"
)

// Variables holds the numeric and string variables of an experiment,
// decoded from one variables record. Duplicate names keep the last
// value, matching Igor's assignment order.
type Variables struct {
	// System holds the system variables keyed K0, K1, ...
	System map[string]float64
	// Numeric holds the user numeric variables by name.
	Numeric map[string]NumVar
	// Strings holds the user string variables by name.
	Strings map[string]string
	// DepNumeric holds numeric variables bound to dependency formulas.
	DepNumeric map[string]DepVar
	// DepStrings holds the formulas of dependent string variables.
	DepStrings map[string]string
}

// NumVar is a numeric variable value.
type NumVar struct {
	Real    float64
	Imag    float64
	Complex bool
}

// Value returns the variable as a complex number. Real variables have
// a zero imaginary part.
func (v NumVar) Value() complex128 {
	return complex(v.Real, v.Imag)
}

// DepVar is a numeric variable bound to a dependency formula.
type DepVar struct {
	NumVar
	Formula string
}

func newVariables(rv *record.Variables) *Variables {
	v := &Variables{
		System:     make(map[string]float64, len(rv.System)),
		Numeric:    make(map[string]NumVar, len(rv.Numeric)),
		Strings:    make(map[string]string, len(rv.Strings)),
		DepNumeric: make(map[string]DepVar, len(rv.DepNumeric)),
		DepStrings: make(map[string]string, len(rv.DepStrings)),
	}
	for i, f := range rv.System {
		v.System["K"+strconv.Itoa(i)] = float64(f)
	}
	for _, nv := range rv.Numeric {
		v.Numeric[nv.Name] = NumVar{Real: nv.Real, Imag: nv.Imag, Complex: nv.Type.Complex}
	}
	for _, sv := range rv.Strings {
		v.Strings[sv.Name] = sv.Value
	}
	for _, dv := range rv.DepNumeric {
		v.DepNumeric[dv.Name] = DepVar{
			NumVar:  NumVar{Real: dv.Real, Imag: dv.Imag, Complex: dv.Type.Complex},
			Formula: dv.Formula,
		}
	}
	for _, ds := range rv.DepStrings {
		v.DepStrings[ds.Name] = ds.Formula
	}
	return v
}
