package igor

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding"

	binpkg "github.com/igor-tools/go-igor/internal/binary"
	"github.com/igor-tools/go-igor/internal/record"
	"github.com/igor-tools/go-igor/internal/wavebin"
)

// DecodeIBW decodes a single Igor binary wave file. The byte order is
// detected from the header and the header checksum is verified.
func DecodeIBW(data []byte, opts ...Option) (*Wave, error) {
	o := applyOptions(opts)
	order, _, err := wavebin.Sniff(data)
	if err != nil {
		return nil, err
	}
	wb, err := wavebin.Decode(data, order, o.encoding)
	if err != nil {
		return nil, err
	}
	return &Wave{w: wb}, nil
}

// DecodePXP decodes a packed experiment file into its folder tree,
// text blocks, variables and packed files. The byte order is detected
// per record. The first structural inconsistency aborts the decode;
// there are no partial results.
func DecodePXP(data []byte, opts ...Option) (*Experiment, error) {
	o := applyOptions(opts)
	root := newFolder("root", "root")
	exp := &Experiment{root: root}
	stack := []*Folder{root}

	err := record.Walk(data, func(rec *record.Record) error {
		top := stack[len(stack)-1]
		if rec.Superseded {
			if o.keepSuperseded {
				top.addUnknown(UnknownRecord{
					Type:       uint16(rec.Type),
					Version:    rec.Version,
					Superseded: true,
					Data:       copyBytes(rec.Data),
				})
			}
			return nil
		}
		switch rec.Type {
		case record.TypeVariables:
			rv, err := record.ParseVariables(rec.Data, rec.Order, o.encoding)
			if err != nil {
				return fmt.Errorf("variables record at offset %d: %w", rec.Offset, err)
			}
			v := newVariables(rv)
			top.addVariables(v)
			if exp.vars == nil {
				exp.vars = v
			}
		case record.TypeHistory:
			exp.addText(TextHistory, rec.Data, o.encoding)
		case record.TypeRecreation:
			exp.addText(TextRecreation, rec.Data, o.encoding)
		case record.TypeProcedure:
			exp.addText(TextProcedure, rec.Data, o.encoding)
		case record.TypeGetHistory:
			exp.addText(TextGetHistory, rec.Data, o.encoding)
		case record.TypePackedFile:
			exp.packed = append(exp.packed, PackedFile{
				Version: rec.Version,
				Data:    copyBytes(rec.Data),
			})
		case record.TypeWave:
			wb, err := wavebin.Decode(rec.Data, rec.Order, o.encoding)
			if err != nil {
				return fmt.Errorf("wave record at offset %d: %w", rec.Offset, err)
			}
			top.addWave(&Wave{w: wb})
		case record.TypeFolderStart:
			name := record.FolderName(rec.Data, o.encoding)
			child := newFolder(name, joinPath(top.path, name))
			top.addFolder(child)
			stack = append(stack, child)
		case record.TypeFolderEnd:
			if len(stack) == 1 {
				return fmt.Errorf("%w: folder end at offset %d with no open folder",
					ErrUnbalancedFolderMarkers, rec.Offset)
			}
			stack = stack[:len(stack)-1]
		default:
			top.addUnknown(UnknownRecord{
				Type:    uint16(rec.Type),
				Version: rec.Version,
				Data:    copyBytes(rec.Data),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d folders left open at end of file",
			ErrUnbalancedFolderMarkers, len(stack)-1)
	}
	return exp, nil
}

func (e *Experiment) addText(kind TextKind, data []byte, enc encoding.Encoding) {
	e.blocks = append(e.blocks, TextBlock{Kind: kind, Text: binpkg.DecodeText(data, enc)})
}

// LoadIBW reads and decodes a binary wave file from disk.
func LoadIBW(path string, opts ...Option) (*Wave, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeIBW(data, opts...)
}

// LoadPXP reads and decodes a packed experiment file from disk.
func LoadPXP(path string, opts ...Option) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodePXP(data, opts...)
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
