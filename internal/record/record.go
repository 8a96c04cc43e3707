// Package record walks the record stream of packed experiment files.
//
// A packed experiment is a flat sequence of length-prefixed records.
// Folder start and end records express the folder tree; every other
// record carries a payload such as a wave image, a variable table or
// window text.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
)

// Type identifies a packed experiment record.
type Type uint16

// Record types from the packed experiment format.
const (
	TypeVariables   Type = 1  // system and user variable tables
	TypeHistory     Type = 2  // history window text
	TypeWave        Type = 3  // wave image, same layout as a standalone wave file
	TypeRecreation  Type = 4  // recreation macro text
	TypeProcedure   Type = 5  // main procedure window text
	TypeGetHistory  Type = 7  // marker: restore the saved history
	TypePackedFile  Type = 8  // packed procedure file or notebook
	TypeFolderStart Type = 9  // opens a data folder, payload holds its name
	TypeFolderEnd   Type = 10 // closes the current data folder
)

// HeaderSize is the fixed size of a record header.
const HeaderSize = 8

const (
	typeMask       = 0x7fff
	supersededFlag = 0x8000
)

// ErrTruncatedRecord reports a stream that ends inside a record header
// or a declared payload.
var ErrTruncatedRecord = errors.New("truncated record")

/*
Record Header Layout (8 bytes):
Offset  Size  Description
0       2     recordType, bit 15 flags a superseded record
2       2     version
4       4     numDataBytes

The byte order is detected per record from the first header byte: a
little-endian writer stores the low byte of the type there, which is
nonzero for every defined type, while a big-endian writer stores the
high byte, which is zero. The 0x77 mask ignores the flag bits.
*/

// Record is one entry of the stream. Data aliases the input buffer.
type Record struct {
	Type       Type
	Version    int16
	Order      binary.ByteOrder // byte order of the header and payload
	Superseded bool             // replaced by a later record in the file
	Offset     int              // position of the header in the input
	Data       []byte
}

// Walk calls fn for every record in buf, superseded ones included.
// The declared length always advances the cursor, so records after a
// superseded one keep their positions. An error from fn stops the
// walk and is returned as is.
func Walk(buf []byte, fn func(*Record) error) error {
	pos := 0
	for pos < len(buf) {
		if pos+HeaderSize > len(buf) {
			return fmt.Errorf("%w: header at offset %d", ErrTruncatedRecord, pos)
		}
		hdr := buf[pos : pos+HeaderSize]

		var order binary.ByteOrder = binary.BigEndian
		if hdr[0]&0x77 != 0 {
			order = binary.LittleEndian
		}

		raw := order.Uint16(hdr[0:2])
		length := int(int32(order.Uint32(hdr[4:8])))
		if length < 0 || pos+HeaderSize+length > len(buf) {
			return fmt.Errorf("%w: %d byte payload at offset %d",
				ErrTruncatedRecord, length, pos)
		}

		rec := &Record{
			Type:       Type(raw & typeMask),
			Version:    int16(order.Uint16(hdr[2:4])),
			Order:      order,
			Superseded: raw&supersededFlag != 0,
			Offset:     pos,
			Data:       buf[pos+HeaderSize : pos+HeaderSize+length],
		}
		if err := fn(rec); err != nil {
			return err
		}

		pos += HeaderSize + length
	}
	return nil
}

// FolderName decodes the folder name from a folder start payload.
func FolderName(data []byte, enc encoding.Encoding) string {
	return binpkg.DecodeText(binpkg.CString(data), enc)
}
