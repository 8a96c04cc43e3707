// Package wavebin parses the Igor binary wave format.
//
// A wave image is the byte content of a .ibw file, and the same layout
// appears as the payload of wave records inside packed experiment
// files. Every image starts with a small bin header whose first field
// is the format version, followed by a wave header, the data points,
// and a run of optional trailing blocks (dependency formula, wave
// note, extended units, dimension labels, text cell indices).
//
// # Layout
//
//	+------------+  offset 0
//	| bin header |  8/16/20/64 bytes for versions 1/2/3/5
//	+------------+
//	| wave header|  110 bytes (versions 1-3) or 320 bytes (version 5)
//	+------------+
//	| data       |  npnts elements, or text cell bytes for text waves
//	+------------+  bin header size + wfmSize
//	| formula    |
//	| note       |
//	| extras     |  version 5 only: units, labels, string indices
//	+------------+
//
// The bin header carries a 16-bit checksum chosen so that the words of
// the bin header and wave header sum to zero. [Sniff] uses that
// property to establish the byte order of a standalone image, trying
// little-endian before big-endian.
//
// # Decoding
//
// [Decode] parses a complete image in a known byte order and returns a
// [Wave]. The numeric payload stays raw; element decoding lives in the
// dtype package. Text waves are materialized as string cells during
// decoding because their boundaries come from the string index block
// at the very end of the image.
package wavebin
