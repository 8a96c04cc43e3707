// Package igor reads Igor Pro binary wave files and packed experiment files.
package igor

import (
	"errors"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
	"github.com/igor-tools/go-igor/internal/dtype"
	"github.com/igor-tools/go-igor/internal/record"
	"github.com/igor-tools/go-igor/internal/wavebin"
)

// Common errors
var (
	ErrTruncatedInput        = binpkg.ErrTruncated
	ErrTruncatedRecord       = record.ErrTruncatedRecord
	ErrUnrecognizedFormat    = wavebin.ErrUnrecognizedFormat
	ErrMalformedHeader       = wavebin.ErrMalformedHeader
	ErrPayloadLengthMismatch = wavebin.ErrPayloadLengthMismatch
	ErrUnknownTypeCode       = dtype.ErrUnknownTypeCode

	ErrUnbalancedFolderMarkers = errors.New("unbalanced folder markers")
	ErrNotFound                = errors.New("object not found")
	ErrNotFolder               = errors.New("object is not a folder")
	ErrNotWave                 = errors.New("object is not a wave")
)
