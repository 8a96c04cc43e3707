package igor

import (
	"fmt"
	"time"

	"github.com/igor-tools/go-igor/internal/dtype"
	"github.com/igor-tools/go-igor/internal/wavebin"
)

// macEpochOffset is the number of seconds between the Macintosh epoch
// (1904-01-01 UTC) and the Unix epoch.
const macEpochOffset = 2082844800

// macTime converts a wave timestamp to UTC. Zero means unset and maps
// to the zero time.
func macTime(secs uint32) time.Time {
	if secs == 0 {
		return time.Time{}
	}
	return time.Unix(int64(secs)-macEpochOffset, 0).UTC()
}

// Wave is a decoded Igor wave: a named array of up to four dimensions
// with units, scaling and annotation metadata.
type Wave struct {
	w *wavebin.Wave
}

// Name returns the wave name.
func (w *Wave) Name() string {
	return w.w.Name
}

// Version returns the wave file format version (1, 2, 3 or 5).
func (w *Wave) Version() int {
	return w.w.Version
}

// IsText reports whether the wave holds text cells instead of numbers.
func (w *Wave) IsText() bool {
	return w.w.IsText
}

// IsComplex reports whether the wave holds complex values.
func (w *Wave) IsComplex() bool {
	return !w.w.IsText && w.w.NumType.Complex
}

// TypeName returns the element type as a Go type name, or "text" for
// text waves.
func (w *Wave) TypeName() string {
	if w.w.IsText {
		return "text"
	}
	return w.w.NumType.String()
}

// NumPoints returns the total number of points.
func (w *Wave) NumPoints() int {
	return w.w.Npnts
}

// Shape returns the dimension sizes. Unused trailing axes are trimmed,
// so an empty wave has an empty shape.
func (w *Wave) Shape() []int {
	return append([]int(nil), w.w.Dims...)
}

// Dims is an alias for Shape.
func (w *Wave) Dims() []int {
	return w.Shape()
}

// Rank returns the number of used dimensions.
func (w *Wave) Rank() int {
	return len(w.w.Dims)
}

// DataUnits returns the units of the wave values.
func (w *Wave) DataUnits() string {
	return w.w.DataUnits
}

// DimUnits returns the units of the given axis, or "" for an axis the
// wave does not use.
func (w *Wave) DimUnits(dim int) string {
	if dim < 0 || dim >= len(w.w.DimUnits) {
		return ""
	}
	return w.w.DimUnits[dim]
}

// DimScale returns the scaling pair of the given axis. The axis values
// run linearly from start to end across the dimension.
func (w *Wave) DimScale(dim int) (start, end float64) {
	if dim < 0 || dim >= len(w.w.SFA) {
		return 0, 0
	}
	return w.w.SFA[dim], w.w.SFB[dim]
}

// FullScale returns the full-scale display range. ok is false when the
// wave does not carry one.
func (w *Wave) FullScale() (top, bot float64, ok bool) {
	return w.w.TopFullScale, w.w.BotFullScale, w.w.FSValid
}

// Note returns the wave note text.
func (w *Wave) Note() string {
	return w.w.Note
}

// Formula returns the dependency formula, or "" when the wave is not
// formula-driven.
func (w *Wave) Formula() string {
	return w.w.Formula
}

// Created returns the creation time.
func (w *Wave) Created() time.Time {
	return macTime(w.w.Created)
}

// Modified returns the last modification time.
func (w *Wave) Modified() time.Time {
	return macTime(w.w.Modified)
}

// DimLabel returns the label of a whole axis, or "".
func (w *Wave) DimLabel(dim int) string {
	if dim < 0 || dim >= len(w.w.DimLabels) {
		return ""
	}
	return w.w.DimLabels[dim]
}

// IndexLabels returns the labels attached to single indices of an
// axis, keyed by index. The map is nil when the axis has none and is
// shared with the wave.
func (w *Wave) IndexLabels(dim int) map[int]string {
	if dim < 0 || dim >= len(w.w.IndexLabels) {
		return nil
	}
	return w.w.IndexLabels[dim]
}

// Raw returns the flat wave payload in file byte order, first axis
// varying fastest. The slice is shared with the wave. Text waves have
// no raw payload.
func (w *Wave) Raw() []byte {
	return w.w.Data
}

// Strings returns the cells of a text wave in storage order, or nil
// for a numeric wave.
func (w *Wave) Strings() []string {
	if !w.w.IsText {
		return nil
	}
	return append([]string(nil), w.w.Text...)
}

// Values decodes the payload into a typed slice: []float32, []float64,
// []complex64, []complex128, []intN or []uintN according to the
// element type, or []string for a text wave.
func (w *Wave) Values() (interface{}, error) {
	if w.w.IsText {
		return w.Strings(), nil
	}
	return dtype.Values(w.w.NumType, w.w.Data, w.w.Order)
}

// Float64s decodes the payload as float64 values, widening smaller
// element types. Complex and text waves fail.
func (w *Wave) Float64s() ([]float64, error) {
	if w.w.IsText {
		return nil, fmt.Errorf("wave %q holds text, not numbers", w.w.Name)
	}
	return dtype.Float64s(w.w.NumType, w.w.Data, w.w.Order)
}

// Complex128s decodes the payload as complex128 values. Real-valued
// waves widen with a zero imaginary part; text waves fail.
func (w *Wave) Complex128s() ([]complex128, error) {
	if w.w.IsText {
		return nil, fmt.Errorf("wave %q holds text, not numbers", w.w.Name)
	}
	return dtype.Complex128s(w.w.NumType, w.w.Data, w.w.Order)
}
