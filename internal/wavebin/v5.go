package wavebin

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
)

const waveHeader5Size = 320

// Dimension label blocks are runs of fixed-width cells.
const dimLabelCell = 32

/*
Wave Header Layout, version 5 (320 bytes):
Offset  Size  Description
0       4     next (runtime pointer)
4       4     creationDate (seconds since Mac epoch)
8       4     modDate (seconds since Mac epoch)
12      4     npnts (total points across all dimensions)
16      2     type (numeric type code, 0 for text waves)
18      10    dependency and folder fields (not decoded)
28      32    bname (null-terminated wave name)
60      8     whVersion and runtime fields (not decoded)
68      16    nDim[4] (dimension sizes, zero when unused)
84      32    sfA[4] (per-dimension scale start)
116     32    sfB[4] (per-dimension scale end)
148     4     dataUnits (null-terminated)
152     16    dimUnits[4] (4 bytes each, null-terminated)
168     4     (not decoded)
172     2     fsValid
174     2     padding
176     8     topFullScale
184     8     botFullScale
192     128   formula, note and label runtime fields (not decoded)

The fixed-width unit fields truncate at 3 characters. Longer unit
strings live in the extended unit blocks after the note and override
these fields when present.
*/

// readWaveHeader5 parses the version 5 wave header.
func readWaveHeader5(r *binpkg.Reader, w *Wave, enc encoding.Encoding) error {
	order := r.ByteOrder()

	raw, err := r.ReadBytes(waveHeader5Size)
	if err != nil {
		return err
	}
	f64 := func(off int) float64 {
		return math.Float64frombits(order.Uint64(raw[off : off+8]))
	}

	w.Created = order.Uint32(raw[4:8])
	w.Modified = order.Uint32(raw[8:12])
	w.Npnts = int(int32(order.Uint32(raw[12:16])))
	w.Type = order.Uint16(raw[16:18])
	w.Name = binpkg.DecodeText(binpkg.CString(raw[28:60]), enc)

	dims := make([]int, 4)
	for d := 0; d < 4; d++ {
		dims[d] = int(int32(order.Uint32(raw[68+4*d : 72+4*d])))
		w.SFA[d] = f64(84 + 8*d)
		w.SFB[d] = f64(116 + 8*d)
		w.DimUnits[d] = binpkg.DecodeText(binpkg.CString(raw[152+4*d:156+4*d]), enc)
	}
	w.Dims = dims

	w.DataUnits = binpkg.DecodeText(binpkg.CString(raw[148:152]), enc)
	w.FSValid = order.Uint16(raw[172:174]) != 0
	w.TopFullScale = f64(176)
	w.BotFullScale = f64(184)
	return nil
}

// readExtended5 parses the version 5 blocks that follow the note. The
// reader must be positioned at the data units block.
func readExtended5(r *binpkg.Reader, w *Wave, enc encoding.Encoding) error {
	// Extended units are counted strings with no terminator. A
	// non-empty block overrides the fixed-width header field.
	b, err := r.ReadBytes(w.Bin.DataEUnitsSize)
	if err != nil {
		return err
	}
	if len(b) > 0 {
		w.DataUnits = binpkg.DecodeText(b, enc)
	}

	for d := 0; d < 4; d++ {
		b, err := r.ReadBytes(w.Bin.DimEUnitsSize[d])
		if err != nil {
			return err
		}
		if len(b) > 0 {
			w.DimUnits[d] = binpkg.DecodeText(b, enc)
		}
	}

	for d := 0; d < 4; d++ {
		if err := readDimLabels(r, w, d, enc); err != nil {
			return err
		}
	}
	return nil
}

// readDimLabels parses one dimension's label block. Cell 0 names the
// dimension as a whole; cell k holds the label for index k-1.
func readDimLabels(r *binpkg.Reader, w *Wave, dim int, enc encoding.Encoding) error {
	size := w.Bin.DimLabelsSize[dim]
	if size == 0 {
		return nil
	}
	if size%dimLabelCell != 0 {
		return fmt.Errorf("%w: dimension %d label block of %d bytes",
			ErrMalformedHeader, dim, size)
	}

	block, err := r.ReadBytes(size)
	if err != nil {
		return err
	}

	for cell := 0; cell*dimLabelCell < size; cell++ {
		label := binpkg.DecodeText(binpkg.CString(block[cell*dimLabelCell:(cell+1)*dimLabelCell]), enc)
		if label == "" {
			continue
		}
		if cell == 0 {
			w.DimLabels[dim] = label
			continue
		}
		if w.IndexLabels[dim] == nil {
			w.IndexLabels[dim] = make(map[int]string)
		}
		w.IndexLabels[dim][cell-1] = label
	}
	return nil
}

// readTextCells materializes the cells of a text wave. The cell bytes
// occupy the data region; their end offsets sit in the string index
// block, which Igor writes as the final sIndicesSize bytes of the
// image.
func readTextCells(r *binpkg.Reader, w *Wave, dataStart, extrasStart int, enc encoding.Encoding) error {
	size := w.Bin.SIndicesSize
	if size%4 != 0 {
		return fmt.Errorf("%w: string index block of %d bytes", ErrMalformedHeader, size)
	}
	count := size / 4
	if count != w.Npnts {
		return fmt.Errorf("%w: %d string indices for %d points",
			ErrMalformedHeader, count, w.Npnts)
	}

	idxStart := r.Len() - size
	if idxStart < extrasStart {
		return fmt.Errorf("%w: string index block overlaps wave data", binpkg.ErrTruncated)
	}

	region, err := r.At(dataStart).ReadBytes(extrasStart - dataStart)
	if err != nil {
		return err
	}

	ir := r.At(idxStart)
	cells := make([]string, count)
	prev := 0
	for i := range cells {
		endRaw, err := ir.ReadInt32()
		if err != nil {
			return err
		}
		end := int(endRaw)
		if end < prev || end > len(region) {
			return fmt.Errorf("%w: string index %d out of range", ErrMalformedHeader, i)
		}
		cells[i] = binpkg.DecodeText(region[prev:end], enc)
		prev = end
	}
	w.Text = cells
	return nil
}
