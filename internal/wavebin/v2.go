package wavebin

import (
	"math"

	"golang.org/x/text/encoding"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
)

const waveHeader2Size = 110

/*
Wave Header Layout, versions 1 to 3 (110 bytes):
Offset  Size  Description
0       2     type (numeric type code)
2       4     next (runtime pointer)
6       20    bname (null-terminated wave name)
26      8     version and source folder fields (not decoded)
34      4     dataUnits (null-terminated)
38      4     xUnits (null-terminated)
42      4     npnts
46      2     aModified (not decoded)
48      8     hsA (x scale start)
56      8     hsB (x scale end)
64      6     modification flags (not decoded)
70      2     fsValid
72      8     topFullScale
80      8     botFullScale
88      10    dependency fields (not decoded)
98      4     creationDate (seconds since Mac epoch)
102     2     padding
104     4     modDate (seconds since Mac epoch)
108     2     (not decoded)

The data points follow immediately. These versions store a single
dimension, so the point count is the whole shape and the x scale is
the only scale pair.
*/

// readWaveHeader2 parses the version 1-3 wave header.
func readWaveHeader2(r *binpkg.Reader, w *Wave, enc encoding.Encoding) error {
	order := r.ByteOrder()

	raw, err := r.ReadBytes(waveHeader2Size)
	if err != nil {
		return err
	}
	f64 := func(off int) float64 {
		return math.Float64frombits(order.Uint64(raw[off : off+8]))
	}

	w.Type = order.Uint16(raw[0:2])
	w.Name = binpkg.DecodeText(binpkg.CString(raw[6:26]), enc)
	w.DataUnits = binpkg.DecodeText(binpkg.CString(raw[34:38]), enc)
	w.DimUnits[0] = binpkg.DecodeText(binpkg.CString(raw[38:42]), enc)
	w.Npnts = int(int32(order.Uint32(raw[42:46])))
	w.SFA[0] = f64(48)
	w.SFB[0] = f64(56)
	w.FSValid = order.Uint16(raw[70:72]) != 0
	w.TopFullScale = f64(72)
	w.BotFullScale = f64(80)
	w.Created = order.Uint32(raw[98:102])
	w.Modified = order.Uint32(raw[104:108])

	w.Dims = []int{w.Npnts}
	return nil
}
