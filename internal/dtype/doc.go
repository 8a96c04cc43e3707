// Package dtype provides Igor numeric type handling and Go value conversion.
//
// Igor encodes the element type of wave data and numeric variables as a
// small bitfield. One bit selects the base width, NT_UNSIGNED marks
// integer types as unsigned, and NT_CMPLX doubles the element to a
// real/imaginary pair. Only a handful of combinations are meaningful:
//
//	Code | Bits                  | Go Type
//	-----|-----------------------|-----------
//	   2 | NT_FP32               | float32
//	   4 | NT_FP64               | float64
//	   3 | NT_FP32 | NT_CMPLX    | complex64
//	   5 | NT_FP64 | NT_CMPLX    | complex128
//	   1 | NT_CMPLX              | complex64 (legacy, single precision implied)
//	   8 | NT_I8                 | int8
//	  16 | NT_I16                | int16
//	  32 | NT_I32                | int32
//	  72 | NT_I8  | NT_UNSIGNED  | uint8
//	  80 | NT_I16 | NT_UNSIGNED  | uint16
//	  96 | NT_I32 | NT_UNSIGNED  | uint32
//
// Code 0 denotes a text wave, which carries no numeric payload and is
// handled outside this package. Every other combination (unsigned
// floats, complex integers, multiple width bits) is rejected with
// [ErrUnknownTypeCode].
//
// # Reading Data
//
// Use [Resolve] to validate a raw type code, then [Values] to decode a
// payload into a typed slice:
//
//	nt, err := dtype.Resolve(code)
//	vals, err := dtype.Values(nt, payload, order)
//
// [Float64s] and [Complex128s] widen any real or complex payload to a
// single convenient element type.
//
// # Key Functions
//
//   - [Resolve]: Validates a type code and returns its [NumType]
//   - [Values]: Decodes raw bytes into the natural Go slice type
//   - [Float64s]: Decodes any real payload as []float64
//   - [Complex128s]: Decodes any payload as []complex128
package dtype
