package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
	"github.com/igor-tools/go-igor/internal/dtype"
	"github.com/igor-tools/go-igor/internal/wavebin"
)

/*
Variables Record Layouts:

Header, version 1 (8 bytes):
Offset  Size  Description
0       2     version
2       2     numSysVars
4       2     numUserVars
6       2     numUserStrs

Header, version 2 (12 bytes): appends two counts.
8       2     numDependentVars
10      2     numDependentStrs

The header is followed by numSysVars float32 values, the system
variables K0, K1 and so on, then by the user tables in header order.

Numeric variable entry (56 bytes):
Offset  Size  Description
0       32    name, NUL terminated
32      2     varFlag
34      2     numeric type code
36      8     real part
44      8     imaginary part
52      4     reserved

A dependent numeric entry extends the numeric entry:
56      2     formulaLen, includes the trailing NUL
58      n     formula text

Dependent string entry:
Offset  Size  Description
0       32    name, NUL terminated
32      16    varFlag and reserved
48      2     formulaLen, includes the trailing NUL
50      n     formula text

String variable entry: a 32 byte name, then the value length as an
int16 at offset 32 in version 1 files or an int32 in version 2, then
the value bytes.
*/

const numVarSize = 56

// Variables holds the decoded contents of a variables record.
type Variables struct {
	Version    int
	System     []float32
	Numeric    []NumVar
	Strings    []StrVar
	DepNumeric []DepNumVar
	DepStrings []DepStrVar
}

// NumVar is a user numeric variable.
type NumVar struct {
	Name       string
	Type       dtype.NumType
	Real, Imag float64
}

// StrVar is a user string variable.
type StrVar struct {
	Name  string
	Value string
}

// DepNumVar is a numeric variable bound to a dependency formula.
type DepNumVar struct {
	NumVar
	Formula string
}

// DepStrVar is a string variable bound to a dependency formula.
type DepStrVar struct {
	Name    string
	Formula string
}

// ParseVariables decodes a variables record payload. order is the
// byte order of the enclosing record and enc decodes names, values
// and formulas.
func ParseVariables(data []byte, order binary.ByteOrder, enc encoding.Encoding) (*Variables, error) {
	r := binpkg.NewReader(data, order)

	version, err := r.ReadInt16()
	if err != nil {
		return nil, fmt.Errorf("%w: variables header", ErrTruncatedRecord)
	}

	var counts [5]int
	var want int
	switch version {
	case 1:
		want = 3
	case 2:
		want = 5
	default:
		return nil, fmt.Errorf("%w: variables record version %d",
			wavebin.ErrMalformedHeader, version)
	}
	for i := 0; i < want; i++ {
		n, err := r.ReadInt16()
		if err != nil {
			return nil, fmt.Errorf("%w: variables header", ErrTruncatedRecord)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative variable count %d",
				wavebin.ErrMalformedHeader, n)
		}
		counts[i] = int(n)
	}

	vars := &Variables{Version: int(version)}

	for i := 0; i < counts[0]; i++ {
		v, err := r.ReadFloat32()
		if err != nil {
			return nil, fmt.Errorf("%w: system variable %d of %d",
				ErrTruncatedRecord, i, counts[0])
		}
		vars.System = append(vars.System, v)
	}

	for i := 0; i < counts[1]; i++ {
		v, err := readNumVar(r, order, enc)
		if err != nil {
			return nil, fmt.Errorf("numeric variable %d of %d: %w", i, counts[1], err)
		}
		vars.Numeric = append(vars.Numeric, v)
	}

	for i := 0; i < counts[2]; i++ {
		v, err := readStrVar(r, order, enc, int(version))
		if err != nil {
			return nil, fmt.Errorf("string variable %d of %d: %w", i, counts[2], err)
		}
		vars.Strings = append(vars.Strings, v)
	}

	for i := 0; i < counts[3]; i++ {
		v, err := readNumVar(r, order, enc)
		if err != nil {
			return nil, fmt.Errorf("dependent variable %d of %d: %w", i, counts[3], err)
		}
		formula, err := readFormula(r, enc)
		if err != nil {
			return nil, fmt.Errorf("dependent variable %d of %d: %w", i, counts[3], err)
		}
		vars.DepNumeric = append(vars.DepNumeric, DepNumVar{NumVar: v, Formula: formula})
	}

	for i := 0; i < counts[4]; i++ {
		raw, err := r.ReadBytes(50)
		if err != nil {
			return nil, fmt.Errorf("%w: dependent string %d of %d",
				ErrTruncatedRecord, i, counts[4])
		}
		name := binpkg.DecodeText(binpkg.CString(raw[0:32]), enc)
		formula, err := readFormulaAt(r, enc, int(int16(order.Uint16(raw[48:50]))))
		if err != nil {
			return nil, fmt.Errorf("dependent string %d of %d: %w", i, counts[4], err)
		}
		vars.DepStrings = append(vars.DepStrings, DepStrVar{Name: name, Formula: formula})
	}

	return vars, nil
}

func readNumVar(r *binpkg.Reader, order binary.ByteOrder, enc encoding.Encoding) (NumVar, error) {
	raw, err := r.ReadBytes(numVarSize)
	if err != nil {
		return NumVar{}, fmt.Errorf("%w: %d byte entry", ErrTruncatedRecord, numVarSize)
	}
	name := binpkg.DecodeText(binpkg.CString(raw[0:32]), enc)
	nt, err := dtype.Resolve(order.Uint16(raw[34:36]))
	if err != nil {
		return NumVar{}, fmt.Errorf("%q: %w", name, err)
	}
	return NumVar{
		Name: name,
		Type: nt,
		Real: math.Float64frombits(order.Uint64(raw[36:44])),
		Imag: math.Float64frombits(order.Uint64(raw[44:52])),
	}, nil
}

func readStrVar(r *binpkg.Reader, order binary.ByteOrder, enc encoding.Encoding, version int) (StrVar, error) {
	var name []byte
	var length int
	if version == 1 {
		raw, err := r.ReadBytes(34)
		if err != nil {
			return StrVar{}, fmt.Errorf("%w: entry header", ErrTruncatedRecord)
		}
		name = binpkg.CString(raw[0:32])
		length = int(int16(order.Uint16(raw[32:34])))
	} else {
		raw, err := r.ReadBytes(36)
		if err != nil {
			return StrVar{}, fmt.Errorf("%w: entry header", ErrTruncatedRecord)
		}
		name = binpkg.CString(raw[0:32])
		length = int(int32(order.Uint32(raw[32:36])))
	}
	value, err := r.ReadBytes(length)
	if err != nil {
		return StrVar{}, fmt.Errorf("%w: %d byte value", ErrTruncatedRecord, length)
	}
	return StrVar{
		Name:  binpkg.DecodeText(name, enc),
		Value: binpkg.DecodeText(value, enc),
	}, nil
}

// readFormula reads a length-prefixed dependency formula at the cursor.
func readFormula(r *binpkg.Reader, enc encoding.Encoding) (string, error) {
	length, err := r.ReadInt16()
	if err != nil {
		return "", fmt.Errorf("%w: formula length", ErrTruncatedRecord)
	}
	return readFormulaAt(r, enc, int(length))
}

func readFormulaAt(r *binpkg.Reader, enc encoding.Encoding, length int) (string, error) {
	raw, err := r.ReadBytes(length)
	if err != nil {
		return "", fmt.Errorf("%w: %d byte formula", ErrTruncatedRecord, length)
	}
	if n := len(raw); n > 0 && raw[n-1] == 0 {
		raw = raw[:n-1]
	}
	return binpkg.DecodeText(raw, enc), nil
}
