package dtype

import (
	"errors"
	"fmt"
)

// ErrUnknownTypeCode reports a numeric type code outside the set Igor
// defines for wave data and numeric variables.
var ErrUnknownTypeCode = errors.New("unknown numeric type code")

// Bits of the numeric type code. The width bits are mutually
// exclusive; NT_UNSIGNED applies only to integer widths and NT_CMPLX
// only to floating-point widths (plus the legacy bare-complex code 1).
const (
	CmplxBit    uint16 = 0x01 // NT_CMPLX
	Float32Code uint16 = 0x02 // NT_FP32
	Float64Code uint16 = 0x04 // NT_FP64
	Int8Code    uint16 = 0x08 // NT_I8
	Int16Code   uint16 = 0x10 // NT_I16
	Int32Code   uint16 = 0x20 // NT_I32
	UnsignedBit uint16 = 0x40 // NT_UNSIGNED
)

// TextCode is the wave type of a text wave. Text waves carry no
// numeric payload and are not resolvable to a NumType.
const TextCode uint16 = 0x00

// NumType describes one element of a numeric payload.
type NumType struct {
	Code     uint16
	BaseSize int  // bytes per scalar component
	Float    bool // floating point base
	Signed   bool // meaningful for integer bases only
	Complex  bool // element is a real/imaginary pair
}

// Resolve validates a raw type code and returns its element
// description. Codes outside Igor's defined set, including the text
// wave code 0, return ErrUnknownTypeCode.
func Resolve(code uint16) (NumType, error) {
	switch code {
	case CmplxBit:
		// Legacy complex code from version 1 waves, single precision.
		return NumType{Code: code, BaseSize: 4, Float: true, Signed: true, Complex: true}, nil
	case Float32Code:
		return NumType{Code: code, BaseSize: 4, Float: true, Signed: true}, nil
	case Float32Code | CmplxBit:
		return NumType{Code: code, BaseSize: 4, Float: true, Signed: true, Complex: true}, nil
	case Float64Code:
		return NumType{Code: code, BaseSize: 8, Float: true, Signed: true}, nil
	case Float64Code | CmplxBit:
		return NumType{Code: code, BaseSize: 8, Float: true, Signed: true, Complex: true}, nil
	case Int8Code:
		return NumType{Code: code, BaseSize: 1, Signed: true}, nil
	case Int16Code:
		return NumType{Code: code, BaseSize: 2, Signed: true}, nil
	case Int32Code:
		return NumType{Code: code, BaseSize: 4, Signed: true}, nil
	case Int8Code | UnsignedBit:
		return NumType{Code: code, BaseSize: 1}, nil
	case Int16Code | UnsignedBit:
		return NumType{Code: code, BaseSize: 2}, nil
	case Int32Code | UnsignedBit:
		return NumType{Code: code, BaseSize: 4}, nil
	default:
		return NumType{}, fmt.Errorf("%w: 0x%04x", ErrUnknownTypeCode, code)
	}
}

// ElemSize returns the storage size of one element in bytes. Complex
// elements store two scalar components.
func (t NumType) ElemSize() int {
	if t.Complex {
		return 2 * t.BaseSize
	}
	return t.BaseSize
}

// String returns the Go-style name of the element type.
func (t NumType) String() string {
	if t.Float {
		if t.Complex {
			if t.BaseSize == 8 {
				return "complex128"
			}
			return "complex64"
		}
		if t.BaseSize == 8 {
			return "float64"
		}
		return "float32"
	}
	if t.Signed {
		return fmt.Sprintf("int%d", t.BaseSize*8)
	}
	return fmt.Sprintf("uint%d", t.BaseSize*8)
}
