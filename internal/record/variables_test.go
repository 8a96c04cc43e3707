package record

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/igor-tools/go-igor/internal/dtype"
	"github.com/igor-tools/go-igor/internal/wavebin"
)

func varHeader(order binary.ByteOrder, version int16, counts ...int) []byte {
	buf := make([]byte, 2+2*len(counts))
	order.PutUint16(buf[0:2], uint16(version))
	for i, n := range counts {
		order.PutUint16(buf[2+2*i:], uint16(int16(n)))
	}
	return buf
}

func appendFloat32(buf []byte, order binary.ByteOrder, v float32) []byte {
	var b [4]byte
	order.PutUint32(b[:], math.Float32bits(v))
	return append(buf, b[:]...)
}

func numVarEntry(order binary.ByteOrder, name string, code uint16, re, im float64) []byte {
	e := make([]byte, numVarSize)
	copy(e[0:32], name)
	order.PutUint16(e[32:34], 1) // varFlag
	order.PutUint16(e[34:36], code)
	order.PutUint64(e[36:44], math.Float64bits(re))
	order.PutUint64(e[44:52], math.Float64bits(im))
	return e
}

func strVarEntry1(order binary.ByteOrder, name, value string) []byte {
	e := make([]byte, 34, 34+len(value))
	copy(e[0:32], name)
	order.PutUint16(e[32:34], uint16(len(value)))
	return append(e, value...)
}

func strVarEntry2(order binary.ByteOrder, name, value string) []byte {
	e := make([]byte, 36, 36+len(value))
	copy(e[0:32], name)
	order.PutUint32(e[32:36], uint32(len(value)))
	return append(e, value...)
}

// depNumVarEntry appends the formula after the numeric entry. formula
// carries its trailing NUL, matching the on-disk convention.
func depNumVarEntry(order binary.ByteOrder, name string, code uint16, re, im float64, formula string) []byte {
	e := numVarEntry(order, name, code, re, im)
	var l [2]byte
	order.PutUint16(l[:], uint16(len(formula)))
	e = append(e, l[:]...)
	return append(e, formula...)
}

func depStrVarEntry(order binary.ByteOrder, name, formula string) []byte {
	e := make([]byte, 50, 50+len(formula))
	copy(e[0:32], name)
	order.PutUint16(e[48:50], uint16(len(formula)))
	return append(e, formula...)
}

func TestParseVariablesVersion1(t *testing.T) {
	order := binary.LittleEndian
	payload := varHeader(order, 1, 2, 1, 1)
	payload = appendFloat32(payload, order, 1.5)
	payload = appendFloat32(payload, order, -2)
	payload = append(payload, numVarEntry(order, "x0", 0x04, 3.25, 0)...)
	payload = append(payload, strVarEntry1(order, "label", "ready")...)

	vars, err := ParseVariables(payload, order, nil)
	if err != nil {
		t.Fatalf("ParseVariables: %v", err)
	}
	if vars.Version != 1 {
		t.Errorf("Version = %d, want 1", vars.Version)
	}
	if len(vars.System) != 2 || vars.System[0] != 1.5 || vars.System[1] != -2 {
		t.Errorf("System = %v, want [1.5 -2]", vars.System)
	}
	if len(vars.Numeric) != 1 {
		t.Fatalf("got %d numeric variables, want 1", len(vars.Numeric))
	}
	nv := vars.Numeric[0]
	if nv.Name != "x0" {
		t.Errorf("Name = %q, want %q", nv.Name, "x0")
	}
	if got := nv.Type.String(); got != "float64" {
		t.Errorf("Type = %s, want float64", got)
	}
	if nv.Real != 3.25 || nv.Imag != 0 {
		t.Errorf("value = %g%+gi, want 3.25", nv.Real, nv.Imag)
	}
	if len(vars.Strings) != 1 || vars.Strings[0] != (StrVar{Name: "label", Value: "ready"}) {
		t.Errorf("Strings = %v, want [{label ready}]", vars.Strings)
	}
	if len(vars.DepNumeric) != 0 || len(vars.DepStrings) != 0 {
		t.Errorf("version 1 record produced dependent variables: %v %v",
			vars.DepNumeric, vars.DepStrings)
	}
}

func TestParseVariablesVersion2(t *testing.T) {
	order := binary.LittleEndian
	payload := varHeader(order, 2, 1, 1, 1, 1, 1)
	payload = appendFloat32(payload, order, 0.25)
	payload = append(payload, numVarEntry(order, "z", 0x05, 1.5, -0.5)...)
	payload = append(payload, strVarEntry2(order, "sample", "wt03")...)
	payload = append(payload, depNumVarEntry(order, "area", 0x04, 6, 0, "K0*2\x00")...)
	payload = append(payload, depStrVarEntry(order, "tag", "note(w)\x00")...)

	vars, err := ParseVariables(payload, order, nil)
	if err != nil {
		t.Fatalf("ParseVariables: %v", err)
	}
	if vars.Version != 2 {
		t.Errorf("Version = %d, want 2", vars.Version)
	}
	if len(vars.System) != 1 || vars.System[0] != 0.25 {
		t.Errorf("System = %v, want [0.25]", vars.System)
	}
	if len(vars.Numeric) != 1 {
		t.Fatalf("got %d numeric variables, want 1", len(vars.Numeric))
	}
	z := vars.Numeric[0]
	if z.Name != "z" || !z.Type.Complex {
		t.Errorf("Numeric[0] = %+v, want complex variable z", z)
	}
	if z.Real != 1.5 || z.Imag != -0.5 {
		t.Errorf("z = %g%+gi, want 1.5-0.5i", z.Real, z.Imag)
	}
	if len(vars.Strings) != 1 || vars.Strings[0] != (StrVar{Name: "sample", Value: "wt03"}) {
		t.Errorf("Strings = %v, want [{sample wt03}]", vars.Strings)
	}
	if len(vars.DepNumeric) != 1 {
		t.Fatalf("got %d dependent variables, want 1", len(vars.DepNumeric))
	}
	dep := vars.DepNumeric[0]
	if dep.Name != "area" || dep.Real != 6 {
		t.Errorf("DepNumeric[0] = %+v, want area = 6", dep)
	}
	if dep.Formula != "K0*2" {
		t.Errorf("Formula = %q, want %q", dep.Formula, "K0*2")
	}
	if len(vars.DepStrings) != 1 || vars.DepStrings[0] != (DepStrVar{Name: "tag", Formula: "note(w)"}) {
		t.Errorf("DepStrings = %v, want [{tag note(w)}]", vars.DepStrings)
	}
}

func TestParseVariablesBigEndian(t *testing.T) {
	order := binary.BigEndian
	payload := varHeader(order, 1, 1, 1, 0)
	payload = appendFloat32(payload, order, 42)
	payload = append(payload, numVarEntry(order, "gain", 0x02, -7.5, 0)...)

	vars, err := ParseVariables(payload, order, nil)
	if err != nil {
		t.Fatalf("ParseVariables: %v", err)
	}
	if len(vars.System) != 1 || vars.System[0] != 42 {
		t.Errorf("System = %v, want [42]", vars.System)
	}
	if len(vars.Numeric) != 1 || vars.Numeric[0].Real != -7.5 {
		t.Errorf("Numeric = %+v, want gain = -7.5", vars.Numeric)
	}
}

func TestParseVariablesEmptyTables(t *testing.T) {
	order := binary.LittleEndian
	vars, err := ParseVariables(varHeader(order, 1, 0, 0, 0), order, nil)
	if err != nil {
		t.Fatalf("ParseVariables: %v", err)
	}
	if len(vars.System)+len(vars.Numeric)+len(vars.Strings) != 0 {
		t.Errorf("empty record produced variables: %+v", vars)
	}
}

func TestParseVariablesNameFillsField(t *testing.T) {
	order := binary.LittleEndian
	name := "abcdefghijklmnopqrstuvwxyz012345" // 32 bytes, no terminator
	payload := varHeader(order, 1, 0, 1, 0)
	payload = append(payload, numVarEntry(order, name, 0x20, 1, 0)...)

	vars, err := ParseVariables(payload, order, nil)
	if err != nil {
		t.Fatalf("ParseVariables: %v", err)
	}
	if vars.Numeric[0].Name != name {
		t.Errorf("Name = %q, want the full 32-byte field", vars.Numeric[0].Name)
	}
}

func TestParseVariablesTextEncoding(t *testing.T) {
	order := binary.LittleEndian
	payload := varHeader(order, 1, 0, 0, 1)
	payload = append(payload, strVarEntry1(order, "unit", "\xb5A")...)

	vars, err := ParseVariables(payload, order, charmap.Windows1252)
	if err != nil {
		t.Fatalf("ParseVariables: %v", err)
	}
	if vars.Strings[0].Value != "µA" {
		t.Errorf("Value = %q, want µA", vars.Strings[0].Value)
	}
}

func TestParseVariablesUnknownVersion(t *testing.T) {
	order := binary.LittleEndian
	_, err := ParseVariables(varHeader(order, 3, 0, 0, 0), order, nil)
	if !errors.Is(err, wavebin.ErrMalformedHeader) {
		t.Fatalf("ParseVariables error = %v, want ErrMalformedHeader", err)
	}
}

func TestParseVariablesNegativeCount(t *testing.T) {
	order := binary.LittleEndian
	_, err := ParseVariables(varHeader(order, 1, -1, 0, 0), order, nil)
	if !errors.Is(err, wavebin.ErrMalformedHeader) {
		t.Fatalf("ParseVariables error = %v, want ErrMalformedHeader", err)
	}
}

func TestParseVariablesUnknownNumType(t *testing.T) {
	order := binary.LittleEndian
	payload := varHeader(order, 1, 0, 1, 0)
	payload = append(payload, numVarEntry(order, "bad", 0x06, 0, 0)...)

	_, err := ParseVariables(payload, order, nil)
	if !errors.Is(err, dtype.ErrUnknownTypeCode) {
		t.Fatalf("ParseVariables error = %v, want ErrUnknownTypeCode", err)
	}
}

func TestParseVariablesTruncated(t *testing.T) {
	order := binary.LittleEndian
	payload := varHeader(order, 2, 1, 1, 1, 1, 0)
	payload = appendFloat32(payload, order, 1)
	payload = append(payload, numVarEntry(order, "n", 0x04, 2, 0)...)
	payload = append(payload, strVarEntry2(order, "s", "text")...)
	payload = append(payload, depNumVarEntry(order, "d", 0x04, 3, 0, "K0\x00")...)

	cuts := []struct {
		name string
		keep int
	}{
		{"inside header", 6},
		{"inside system variables", 14},
		{"inside numeric entry", 12 + 4 + 20},
		{"inside string value", 12 + 4 + 56 + 38},
		{"inside formula", len(payload) - 2},
	}
	for _, tt := range cuts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVariables(payload[:tt.keep], order, nil)
			if !errors.Is(err, ErrTruncatedRecord) {
				t.Fatalf("ParseVariables error = %v, want ErrTruncatedRecord", err)
			}
		})
	}
}
