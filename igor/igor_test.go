package igor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
)

var (
	checksumSpans   = map[int]int{2: 126, 5: 384}
	checksumOffsets = map[int]int{2: 14, 5: 2}
)

// fixChecksum stores the bin header checksum so the header words sum
// to zero.
func fixChecksum(img []byte, order binary.ByteOrder, version int) {
	off := checksumOffsets[version]
	order.PutUint16(img[off:], 0)
	sum := binpkg.Checksum16(img[:checksumSpans[version]], order)
	order.PutUint16(img[off:], -sum)
}

// buildWave2 assembles a version 2 wave image around a raw payload.
// The data region carries the usual 16 padding bytes.
func buildWave2(order binary.ByteOrder, name string, typ uint16, npnts int, payload []byte, note string) []byte {
	wfm := 110 + len(payload) + 16
	img := make([]byte, 16+wfm+len(note))

	order.PutUint16(img[0:], 2)                 // version
	order.PutUint32(img[2:], uint32(wfm))       // wfmSize
	order.PutUint32(img[6:], uint32(len(note))) // noteSize

	wh := img[16:]
	order.PutUint16(wh[0:], typ)
	copy(wh[6:26], name)
	copy(wh[34:38], "V")                           // dataUnits
	copy(wh[38:42], "s")                           // xUnits
	order.PutUint32(wh[42:], uint32(npnts))        // npnts
	order.PutUint64(wh[48:], math.Float64bits(0))  // hsA
	order.PutUint64(wh[56:], math.Float64bits(1))  // hsB
	order.PutUint16(wh[70:], 1)                    // fsValid
	order.PutUint64(wh[72:], math.Float64bits(10)) // topFullScale
	order.PutUint64(wh[80:], math.Float64bits(-10))
	order.PutUint32(wh[98:], 3600)  // creationDate
	order.PutUint32(wh[104:], 7200) // modDate

	copy(img[16+110:], payload)
	copy(img[16+wfm:], note)

	fixChecksum(img, order, 2)
	return img
}

// buildTextWave5 assembles a version 5 text wave image with its string
// index block.
func buildTextWave5(order binary.ByteOrder, name string, cells []string) []byte {
	var text bytes.Buffer
	ends := make([]int, len(cells))
	for i, c := range cells {
		text.WriteString(c)
		ends[i] = text.Len()
	}
	sindices := 4 * len(cells)
	wfm := 320 + text.Len()
	img := make([]byte, 64+wfm+sindices)

	order.PutUint16(img[0:], 5)                 // version
	order.PutUint32(img[4:], uint32(wfm))       // wfmSize
	order.PutUint32(img[52:], uint32(sindices)) // sIndicesSize

	wh := img[64:]
	order.PutUint32(wh[12:], uint32(len(cells))) // npnts
	order.PutUint16(wh[16:], 0)                  // type: text
	copy(wh[28:60], name)
	order.PutUint32(wh[68:], uint32(len(cells))) // rows

	copy(img[64+320:], text.Bytes())
	idx := img[len(img)-sindices:]
	for i, end := range ends {
		order.PutUint32(idx[4*i:], uint32(end))
	}

	fixChecksum(img, order, 5)
	return img
}

func f64Payload(order binary.ByteOrder, values ...float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		order.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func i16Payload(order binary.ByteOrder, values ...int16) []byte {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		order.PutUint16(buf[2*i:], uint16(v))
	}
	return buf
}

func TestDecodeIBWFloat64Zeros(t *testing.T) {
	order := binary.LittleEndian
	img := buildWave2(order, "w0", 0x04, 10, f64Payload(order, make([]float64, 10)...), "")

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	if w.Name() != "w0" {
		t.Errorf("Name = %q, want %q", w.Name(), "w0")
	}
	if w.Version() != 2 {
		t.Errorf("Version = %d, want 2", w.Version())
	}
	if w.TypeName() != "float64" {
		t.Errorf("TypeName = %q, want float64", w.TypeName())
	}
	if w.NumPoints() != 10 {
		t.Errorf("NumPoints = %d, want 10", w.NumPoints())
	}
	if shape := w.Shape(); len(shape) != 1 || shape[0] != 10 {
		t.Errorf("Shape = %v, want [10]", shape)
	}
	vals, err := w.Float64s()
	if err != nil {
		t.Fatalf("Float64s: %v", err)
	}
	if len(vals) != 10 {
		t.Fatalf("got %d values, want 10", len(vals))
	}
	for i, v := range vals {
		if v != 0 {
			t.Errorf("value %d = %v, want 0", i, v)
		}
	}
	if w.IsText() || w.IsComplex() {
		t.Errorf("IsText/IsComplex = %v/%v, want false/false", w.IsText(), w.IsComplex())
	}
}

func TestDecodeIBWBigEndian(t *testing.T) {
	order := binary.BigEndian
	img := buildWave2(order, "be", 0x04, 2, f64Payload(order, 1.25, -4.5), "")

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	vals, err := w.Float64s()
	if err != nil {
		t.Fatalf("Float64s: %v", err)
	}
	if len(vals) != 2 || vals[0] != 1.25 || vals[1] != -4.5 {
		t.Errorf("values = %v, want [1.25 -4.5]", vals)
	}
}

func TestDecodeIBWTruncatedHeader(t *testing.T) {
	img := buildWave2(binary.LittleEndian, "w", 0x04, 1, f64Payload(binary.LittleEndian, 1), "")

	if _, err := DecodeIBW(img[:10]); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("DecodeIBW error = %v, want ErrTruncatedInput", err)
	}
}

func TestDecodeIBWNotIgor(t *testing.T) {
	img := bytes.Repeat([]byte{0xAA}, 256)

	if _, err := DecodeIBW(img); !errors.Is(err, ErrUnrecognizedFormat) {
		t.Errorf("DecodeIBW error = %v, want ErrUnrecognizedFormat", err)
	}
}

func TestDecodeIBWCorruptChecksum(t *testing.T) {
	img := buildWave2(binary.LittleEndian, "w", 0x04, 1, f64Payload(binary.LittleEndian, 1), "")
	img[40] ^= 0x01

	// With a broken checksum no byte order validates the header, so
	// sniffing cannot recognize the file at all.
	if _, err := DecodeIBW(img); !errors.Is(err, ErrUnrecognizedFormat) {
		t.Errorf("DecodeIBW error = %v, want ErrUnrecognizedFormat", err)
	}
}

func TestWaveMetadata(t *testing.T) {
	order := binary.LittleEndian
	img := buildWave2(order, "probe", 0x04, 1, f64Payload(order, 7), "pass 3")

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	if w.DataUnits() != "V" {
		t.Errorf("DataUnits = %q, want V", w.DataUnits())
	}
	if w.DimUnits(0) != "s" {
		t.Errorf("DimUnits(0) = %q, want s", w.DimUnits(0))
	}
	if w.DimUnits(7) != "" {
		t.Errorf("DimUnits(7) = %q, want empty", w.DimUnits(7))
	}
	if start, end := w.DimScale(0); start != 0 || end != 1 {
		t.Errorf("DimScale(0) = (%v, %v), want (0, 1)", start, end)
	}
	top, bot, ok := w.FullScale()
	if !ok || top != 10 || bot != -10 {
		t.Errorf("FullScale = (%v, %v, %v), want (10, -10, true)", top, bot, ok)
	}
	if w.Note() != "pass 3" {
		t.Errorf("Note = %q, want %q", w.Note(), "pass 3")
	}
	want := time.Date(1904, 1, 1, 1, 0, 0, 0, time.UTC)
	if !w.Created().Equal(want) {
		t.Errorf("Created = %v, want %v", w.Created(), want)
	}
	if !w.Modified().Equal(want.Add(time.Hour)) {
		t.Errorf("Modified = %v, want %v", w.Modified(), want.Add(time.Hour))
	}
	if len(w.Raw()) != 8 {
		t.Errorf("Raw = %d bytes, want 8", len(w.Raw()))
	}
}

func TestWaveZeroTimestamps(t *testing.T) {
	order := binary.LittleEndian
	img := buildWave2(order, "w", 0x04, 1, f64Payload(order, 1), "")
	order.PutUint32(img[16+98:], 0)
	order.PutUint32(img[16+104:], 0)
	fixChecksum(img, order, 2)

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	if !w.Created().IsZero() || !w.Modified().IsZero() {
		t.Errorf("timestamps = (%v, %v), want zero times", w.Created(), w.Modified())
	}
}

func TestWaveValuesInt16(t *testing.T) {
	order := binary.LittleEndian
	img := buildWave2(order, "counts", 0x10, 3, i16Payload(order, 3, -2, 1), "")

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	vals, err := w.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	ints, ok := vals.([]int16)
	if !ok {
		t.Fatalf("Values = %T, want []int16", vals)
	}
	if len(ints) != 3 || ints[0] != 3 || ints[1] != -2 || ints[2] != 1 {
		t.Errorf("values = %v, want [3 -2 1]", ints)
	}

	floats, err := w.Float64s()
	if err != nil {
		t.Fatalf("Float64s: %v", err)
	}
	if floats[0] != 3 || floats[1] != -2 || floats[2] != 1 {
		t.Errorf("widened values = %v, want [3 -2 1]", floats)
	}
}

func TestWaveComplex(t *testing.T) {
	order := binary.LittleEndian
	payload := f64Payload(order, 1, 2, -3, 0.5) // two complex points
	img := buildWave2(order, "fft", 0x05, 2, payload, "")

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	if !w.IsComplex() {
		t.Error("IsComplex = false, want true")
	}
	vals, err := w.Complex128s()
	if err != nil {
		t.Fatalf("Complex128s: %v", err)
	}
	if len(vals) != 2 || vals[0] != complex(1, 2) || vals[1] != complex(-3, 0.5) {
		t.Errorf("values = %v, want [(1+2i) (-3+0.5i)]", vals)
	}
	if _, err := w.Float64s(); err == nil {
		t.Error("Float64s on a complex wave did not fail")
	}
}

func TestWaveTextStrings(t *testing.T) {
	img := buildTextWave5(binary.LittleEndian, "labels", []string{"alpha", "", "gamma"})

	w, err := DecodeIBW(img)
	if err != nil {
		t.Fatalf("DecodeIBW: %v", err)
	}
	if !w.IsText() {
		t.Fatal("IsText = false, want true")
	}
	if w.TypeName() != "text" {
		t.Errorf("TypeName = %q, want text", w.TypeName())
	}
	cells := w.Strings()
	if len(cells) != 3 || cells[0] != "alpha" || cells[1] != "" || cells[2] != "gamma" {
		t.Errorf("Strings = %q", cells)
	}
	vals, err := w.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if _, ok := vals.([]string); !ok {
		t.Errorf("Values = %T, want []string", vals)
	}
	if _, err := w.Float64s(); err == nil {
		t.Error("Float64s on a text wave did not fail")
	}
	if w.Raw() != nil {
		t.Errorf("Raw = %d bytes, want none", len(w.Raw()))
	}
}

func TestLoadIBW(t *testing.T) {
	order := binary.LittleEndian
	img := buildWave2(order, "fromdisk", 0x04, 1, f64Payload(order, 9), "")
	path := filepath.Join(t.TempDir(), "wave.ibw")
	if err := os.WriteFile(path, img, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	w, err := LoadIBW(path)
	if err != nil {
		t.Fatalf("LoadIBW: %v", err)
	}
	if w.Name() != "fromdisk" {
		t.Errorf("Name = %q, want %q", w.Name(), "fromdisk")
	}

	if _, err := LoadIBW(filepath.Join(t.TempDir(), "missing.ibw")); err == nil {
		t.Error("LoadIBW on a missing file did not fail")
	}
}
