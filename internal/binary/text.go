package binary

import (
	"bytes"

	"golang.org/x/text/encoding"
)

// CString returns the bytes before the first NUL. A field with no
// terminator uses its full width.
func CString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// DecodeText converts legacy text bytes to a string using enc. A nil
// encoding keeps the raw bytes. Decoders are created per call, so one
// encoding value is safe to share across goroutines.
func DecodeText(b []byte, enc encoding.Encoding) string {
	if len(b) == 0 {
		return ""
	}
	if enc == nil {
		return string(b)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
