package wavebin

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
	"github.com/igor-tools/go-igor/internal/dtype"
)

// Errors
var (
	ErrUnrecognizedFormat    = errors.New("not an Igor binary wave")
	ErrMalformedHeader       = errors.New("malformed wave header")
	ErrPayloadLengthMismatch = errors.New("wave payload length mismatch")
)

// Wave versions Igor has written, mapped to their bin header sizes.
var binHeaderSizes = map[int]int{1: 8, 2: 16, 3: 20, 5: 64}

// The checksum covers the bin header and the wave header.
var checksumSpans = map[int]int{
	1: 8 + waveHeader2Size,
	2: 16 + waveHeader2Size,
	3: 20 + waveHeader2Size,
	5: 64 + waveHeader5Size,
}

// BinHeader holds the size fields of the bin header. Sizes of blocks a
// version does not record are zero.
type BinHeader struct {
	Version int

	// WfmSize spans the wave header and the data points. The bin
	// header size plus WfmSize is where the trailing blocks begin.
	WfmSize int

	FormulaSize int
	NoteSize    int
	PictSize    int

	// Version 5 only.
	DataEUnitsSize int
	DimEUnitsSize  [4]int
	DimLabelsSize  [4]int
	SIndicesSize   int
}

func (h *BinHeader) blockSizes() []int {
	sizes := []int{h.WfmSize, h.FormulaSize, h.NoteSize, h.PictSize,
		h.DataEUnitsSize, h.SIndicesSize}
	sizes = append(sizes, h.DimEUnitsSize[:]...)
	return append(sizes, h.DimLabelsSize[:]...)
}

// Wave is a fully parsed wave image.
type Wave struct {
	Version int              // wave format version (1, 2, 3 or 5)
	Order   binary.ByteOrder // byte order the image was written in
	Bin     BinHeader

	Type    uint16        // raw numeric type code, 0 for text waves
	NumType dtype.NumType // resolved element type, zero value for text waves
	IsText  bool
	Name    string
	Npnts   int
	Dims    []int // used dimension sizes, rows first

	SFA [4]float64 // per-dimension scale start
	SFB [4]float64 // per-dimension scale end

	DataUnits string
	DimUnits  [4]string

	FSValid      bool
	TopFullScale float64
	BotFullScale float64

	Created  uint32 // seconds since the Mac epoch
	Modified uint32

	Data []byte   // raw numeric payload, exactly Npnts elements
	Text []string // text wave cells, nil for numeric waves

	DimLabels   [4]string
	IndexLabels [4]map[int]string

	Formula string
	Note    string
}

// Sniff probes buf for a wave image and reports its byte order and
// version. Little-endian is tried first: the leading version field
// must be one Igor writes and the header words must checksum to zero.
// A version stored in one order never reads as a valid version in the
// other, so at most one order can match.
func Sniff(buf []byte) (binary.ByteOrder, int, error) {
	if len(buf) < 2 {
		return nil, 0, fmt.Errorf("%w: %d byte input", binpkg.ErrTruncated, len(buf))
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		version := int(int16(order.Uint16(buf[:2])))
		span, ok := checksumSpans[version]
		if !ok {
			continue
		}
		if len(buf) < span {
			return nil, 0, fmt.Errorf("%w: input shorter than version %d header",
				binpkg.ErrTruncated, version)
		}
		if binpkg.VerifyChecksum16(buf[:span], order) {
			return order, version, nil
		}
	}

	return nil, 0, ErrUnrecognizedFormat
}

// Decode parses a complete wave image in a known byte order. The
// header checksum is verified even when the order came from Sniff.
// enc decodes name, unit, label and note bytes; nil keeps raw bytes.
func Decode(buf []byte, order binary.ByteOrder, enc encoding.Encoding) (*Wave, error) {
	r := binpkg.NewReader(buf, order)

	verRaw, err := r.At(0).ReadInt16()
	if err != nil {
		return nil, err
	}
	version := int(verRaw)

	span, ok := checksumSpans[version]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported wave version %d", ErrMalformedHeader, version)
	}
	head, err := r.Peek(span)
	if err != nil {
		return nil, err
	}
	if !binpkg.VerifyChecksum16(head, order) {
		return nil, fmt.Errorf("%w: header checksum failed", ErrMalformedHeader)
	}

	bin, err := readBinHeader(r, version)
	if err != nil {
		return nil, err
	}

	w := &Wave{Version: version, Order: order, Bin: bin}

	var waveHeaderSize int
	if version == 5 {
		waveHeaderSize = waveHeader5Size
		err = readWaveHeader5(r, w, enc)
	} else {
		waveHeaderSize = waveHeader2Size
		err = readWaveHeader2(r, w, enc)
	}
	if err != nil {
		return nil, err
	}

	if w.Type == dtype.TextCode {
		// Text waves appeared with the version 5 format.
		if version != 5 {
			return nil, fmt.Errorf("%w: text wave in version %d image",
				dtype.ErrUnknownTypeCode, version)
		}
		w.IsText = true
	} else {
		nt, err := dtype.Resolve(w.Type)
		if err != nil {
			return nil, err
		}
		w.NumType = nt
	}

	if err := normalizeDims(w); err != nil {
		return nil, err
	}

	binSize := binHeaderSizes[version]
	dataStart := binSize + waveHeaderSize
	extrasStart := binSize + bin.WfmSize
	if extrasStart < dataStart {
		return nil, fmt.Errorf("%w: wfmSize %d does not cover the wave header",
			ErrMalformedHeader, bin.WfmSize)
	}
	if extrasStart > len(buf) {
		return nil, fmt.Errorf("%w: wave data region ends at %d, input has %d bytes",
			binpkg.ErrTruncated, extrasStart, len(buf))
	}

	if w.IsText {
		if err := readTextCells(r, w, dataStart, extrasStart, enc); err != nil {
			return nil, err
		}
	} else {
		expected := w.Npnts * w.NumType.ElemSize()
		if region := extrasStart - dataStart; expected > region {
			return nil, fmt.Errorf("%w: %d points of %s need %d bytes, region holds %d",
				ErrPayloadLengthMismatch, w.Npnts, w.NumType, expected, region)
		}
		// Versions 2 and 3 pad the data region, so a surplus is normal.
		data, err := r.At(dataStart).ReadBytes(expected)
		if err != nil {
			return nil, err
		}
		w.Data = data
	}

	if err := r.Seek(extrasStart); err != nil {
		return nil, err
	}

	// Trailing blocks. The dependency formula comes before the note in
	// every version that records one.
	formula, err := r.ReadBytes(bin.FormulaSize)
	if err != nil {
		return nil, err
	}
	w.Formula = binpkg.DecodeText(binpkg.CString(formula), enc)

	note, err := r.ReadBytes(bin.NoteSize)
	if err != nil {
		return nil, err
	}
	w.Note = binpkg.DecodeText(note, enc)

	if version == 5 {
		if err := readExtended5(r, w, enc); err != nil {
			return nil, err
		}
	}
	// Versions 2 and 3 may carry picture bytes after the note. They
	// are declared by PictSize and left undecoded.

	return w, nil
}

/*
Bin Header Layouts:

	Version 1 (8 bytes)          Version 2 (16 bytes)
	0   2  version               0   2  version
	2   4  wfmSize               2   4  wfmSize
	6   2  checksum              6   4  noteSize
	                             10  4  pictSize
	                             14  2  checksum

	Version 3 (20 bytes)         Version 5 (64 bytes)
	0   2  version               0   2  version
	2   4  wfmSize               2   2  checksum
	6   4  noteSize              4   4  wfmSize
	10  4  formulaSize           8   4  formulaSize
	14  4  pictSize              12  4  noteSize
	18  2  checksum              16  4  dataEUnitsSize
	                             20  16 dimEUnitsSize[4]
	                             36  16 dimLabelsSize[4]
	                             52  4  sIndicesSize
	                             56  8  optionsSize (reserved)
*/

// readBinHeader parses the bin header and leaves r positioned at the
// wave header.
func readBinHeader(r *binpkg.Reader, version int) (BinHeader, error) {
	h := BinHeader{Version: version}
	order := r.ByteOrder()

	raw, err := r.ReadBytes(binHeaderSizes[version])
	if err != nil {
		return h, err
	}
	i32 := func(off int) int { return int(int32(order.Uint32(raw[off : off+4]))) }

	switch version {
	case 1:
		h.WfmSize = i32(2)
	case 2:
		h.WfmSize = i32(2)
		h.NoteSize = i32(6)
		h.PictSize = i32(10)
	case 3:
		h.WfmSize = i32(2)
		h.NoteSize = i32(6)
		h.FormulaSize = i32(10)
		h.PictSize = i32(14)
	case 5:
		h.WfmSize = i32(4)
		h.FormulaSize = i32(8)
		h.NoteSize = i32(12)
		h.DataEUnitsSize = i32(16)
		for d := 0; d < 4; d++ {
			h.DimEUnitsSize[d] = i32(20 + 4*d)
			h.DimLabelsSize[d] = i32(36 + 4*d)
		}
		h.SIndicesSize = i32(52)
	}

	for _, size := range h.blockSizes() {
		if size < 0 {
			return h, fmt.Errorf("%w: negative block size in bin header", ErrMalformedHeader)
		}
	}
	return h, nil
}

// normalizeDims validates the declared dimension sizes and trims the
// unused trailing slots.
func normalizeDims(w *Wave) error {
	if w.Npnts < 0 {
		return fmt.Errorf("%w: negative point count %d", ErrMalformedHeader, w.Npnts)
	}
	for _, d := range w.Dims {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension size %d", ErrMalformedHeader, d)
		}
	}

	// Unused dimension slots trail as zeros. A zero before a used slot
	// would make the shape meaningless.
	used := len(w.Dims)
	for used > 0 && w.Dims[used-1] == 0 {
		used--
	}
	for _, d := range w.Dims[:used] {
		if d == 0 {
			return fmt.Errorf("%w: zero interior dimension in %v", ErrMalformedHeader, w.Dims)
		}
	}
	w.Dims = w.Dims[:used]

	var n int64
	if len(w.Dims) > 0 {
		n = 1
		for _, d := range w.Dims {
			n *= int64(d)
			if n > 1<<31 {
				break
			}
		}
	}
	if n != int64(w.Npnts) {
		return fmt.Errorf("%w: dimensions %v hold %d points, header declares %d",
			ErrMalformedHeader, w.Dims, n, w.Npnts)
	}
	return nil
}
