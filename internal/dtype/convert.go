package dtype

// Conversion Strategy
//
// Numeric payloads are flat arrays of fixed-size elements stored in
// the byte order recorded by the enclosing file header. Each decode
// helper walks the payload at the declared stride and rebuilds
// elements with math.FloatNfrombits or a plain integer conversion.
// Complex payloads interleave real and imaginary components, so one
// complex element consumes two scalar slots.
//
// Values returns the natural Go slice for the stored type ([]float32
// for NT_FP32, []uint16 for unsigned 16-bit, and so on). Float64s and
// Complex128s widen any payload to a single element type, which
// callers use when they want uniform math regardless of the stored
// width.

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Values decodes a numeric payload into the natural Go slice for the
// element type. The payload length must be a whole number of
// elements.
func Values(t NumType, data []byte, order binary.ByteOrder) (interface{}, error) {
	if err := checkLen(t, data); err != nil {
		return nil, err
	}

	switch {
	case t.Complex && t.BaseSize == 8:
		return complex128s(data, order), nil
	case t.Complex:
		return complex64s(data, order), nil
	case t.Float && t.BaseSize == 8:
		return float64s(data, order), nil
	case t.Float:
		return float32s(data, order), nil
	}

	switch t.BaseSize {
	case 1:
		if t.Signed {
			return int8s(data), nil
		}
		return append([]uint8(nil), data...), nil
	case 2:
		if t.Signed {
			return int16s(data, order), nil
		}
		return uint16s(data, order), nil
	case 4:
		if t.Signed {
			return int32s(data, order), nil
		}
		return uint32s(data, order), nil
	}

	return nil, fmt.Errorf("%w: 0x%04x", ErrUnknownTypeCode, t.Code)
}

// Float64s decodes a real payload as []float64, widening narrower
// widths. Complex payloads are rejected.
func Float64s(t NumType, data []byte, order binary.ByteOrder) ([]float64, error) {
	if t.Complex {
		return nil, fmt.Errorf("%s payload has no real-only representation", t)
	}
	if err := checkLen(t, data); err != nil {
		return nil, err
	}

	if t.Float {
		if t.BaseSize == 8 {
			return float64s(data, order), nil
		}
		return widen(float32s(data, order)), nil
	}

	switch t.BaseSize {
	case 1:
		if t.Signed {
			return widen(int8s(data)), nil
		}
		return widen([]uint8(data)), nil
	case 2:
		if t.Signed {
			return widen(int16s(data, order)), nil
		}
		return widen(uint16s(data, order)), nil
	case 4:
		if t.Signed {
			return widen(int32s(data, order)), nil
		}
		return widen(uint32s(data, order)), nil
	}

	return nil, fmt.Errorf("%w: 0x%04x", ErrUnknownTypeCode, t.Code)
}

// Complex128s decodes any payload as []complex128. Real payloads
// widen with a zero imaginary part.
func Complex128s(t NumType, data []byte, order binary.ByteOrder) ([]complex128, error) {
	if t.Complex {
		if err := checkLen(t, data); err != nil {
			return nil, err
		}
		if t.BaseSize == 8 {
			return complex128s(data, order), nil
		}
		narrow := complex64s(data, order)
		out := make([]complex128, len(narrow))
		for i, v := range narrow {
			out[i] = complex128(v)
		}
		return out, nil
	}

	re, err := Float64s(t, data, order)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(re))
	for i, v := range re {
		out[i] = complex(v, 0)
	}
	return out, nil
}

func checkLen(t NumType, data []byte) error {
	if size := t.ElemSize(); len(data)%size != 0 {
		return fmt.Errorf("payload length %d is not a multiple of %s element size %d",
			len(data), t, size)
	}
	return nil
}

func widen[T int8 | uint8 | int16 | uint16 | int32 | uint32 | float32](s []T) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func float32s(data []byte, order binary.ByteOrder) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(order.Uint32(data[i*4:]))
	}
	return out
}

func float64s(data []byte, order binary.ByteOrder) []float64 {
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(data[i*8:]))
	}
	return out
}

func complex64s(data []byte, order binary.ByteOrder) []complex64 {
	out := make([]complex64, len(data)/8)
	for i := range out {
		re := math.Float32frombits(order.Uint32(data[i*8:]))
		im := math.Float32frombits(order.Uint32(data[i*8+4:]))
		out[i] = complex(re, im)
	}
	return out
}

func complex128s(data []byte, order binary.ByteOrder) []complex128 {
	out := make([]complex128, len(data)/16)
	for i := range out {
		re := math.Float64frombits(order.Uint64(data[i*16:]))
		im := math.Float64frombits(order.Uint64(data[i*16+8:]))
		out[i] = complex(re, im)
	}
	return out
}

func int8s(data []byte) []int8 {
	out := make([]int8, len(data))
	for i, b := range data {
		out[i] = int8(b)
	}
	return out
}

func int16s(data []byte, order binary.ByteOrder) []int16 {
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(order.Uint16(data[i*2:]))
	}
	return out
}

func int32s(data []byte, order binary.ByteOrder) []int32 {
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(order.Uint32(data[i*4:]))
	}
	return out
}

func uint16s(data []byte, order binary.ByteOrder) []uint16 {
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = order.Uint16(data[i*2:])
	}
	return out
}

func uint32s(data []byte, order binary.ByteOrder) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = order.Uint32(data[i*4:])
	}
	return out
}
