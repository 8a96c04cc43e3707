package binary

import "encoding/binary"

// Checksum16 computes the Igor header checksum: the truncating sum of the
// buffer read as consecutive 16-bit words in the given byte order.
//
// Wave headers store a correction value in their checksum field so that the
// whole header span sums to zero. Every checksummed span in the format has
// even length; a trailing odd byte is ignored.
func Checksum16(data []byte, order binary.ByteOrder) uint16 {
	var sum uint16
	for i := 0; i+1 < len(data); i += 2 {
		sum += order.Uint16(data[i : i+2])
	}
	return sum
}

// VerifyChecksum16 reports whether a header span sums to zero.
func VerifyChecksum16(data []byte, order binary.ByteOrder) bool {
	return Checksum16(data, order) == 0
}
