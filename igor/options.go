package igor

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	encoding       encoding.Encoding
	keepSuperseded bool
}

func defaultOptions() *options {
	return &options{
		encoding: charmap.Windows1252,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTextEncoding sets the character encoding used to decode names,
// units, notes and every other text field. The default is Windows-1252.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		if enc != nil {
			o.encoding = enc
		}
	}
}

// WithMacRoman decodes text fields as Mac OS Roman, the encoding used
// by experiments written on classic Mac systems.
func WithMacRoman() Option {
	return func(o *options) {
		o.encoding = charmap.Macintosh
	}
}

// WithKeepSuperseded keeps superseded records as opaque entries in the
// folder where they appear instead of dropping them.
func WithKeepSuperseded() Option {
	return func(o *options) {
		o.keepSuperseded = true
	}
}
