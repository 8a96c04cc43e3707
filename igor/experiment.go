package igor

import (
	"fmt"
	"strings"
)

// TextKind tags a text block with the kind of record that carried it.
type TextKind int

// Text block kinds in a packed experiment.
const (
	TextHistory TextKind = iota
	TextRecreation
	TextProcedure
	TextGetHistory
)

// String returns the conventional name of the block kind.
func (k TextKind) String() string {
	switch k {
	case TextHistory:
		return "history"
	case TextRecreation:
		return "recreation"
	case TextProcedure:
		return "procedure"
	case TextGetHistory:
		return "gethistory"
	}
	return fmt.Sprintf("textkind(%d)", int(k))
}

// TextBlock is one experiment-level text record.
type TextBlock struct {
	Kind TextKind
	Text string
}

// UnknownRecord preserves a record the decoder has no parser for, or
// a superseded record kept by WithKeepSuperseded.
type UnknownRecord struct {
	Type       uint16
	Version    int16
	Superseded bool
	Data       []byte
}

// PackedFile is a packed procedure file or notebook kept as raw bytes.
type PackedFile struct {
	Version int16
	Data    []byte
}

// Experiment is a decoded packed experiment file.
type Experiment struct {
	root   *Folder
	blocks []TextBlock
	vars   *Variables
	packed []PackedFile
}

// Root returns the root data folder.
func (e *Experiment) Root() *Folder {
	return e.root
}

// TextBlocks returns every text block in file order.
func (e *Experiment) TextBlocks() []TextBlock {
	return e.blocks
}

// History returns the history window text.
func (e *Experiment) History() string {
	return e.textOf(TextHistory)
}

// Recreation returns the recreation macro text.
func (e *Experiment) Recreation() string {
	return e.textOf(TextRecreation)
}

// Procedure returns the main procedure window text.
func (e *Experiment) Procedure() string {
	return e.textOf(TextProcedure)
}

// textOf concatenates the blocks of one kind in file order.
func (e *Experiment) textOf(kind TextKind) string {
	var sb strings.Builder
	for _, b := range e.blocks {
		if b.Kind == kind {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

// Variables returns the first variable table of the experiment, or
// nil if the file carries none.
func (e *Experiment) Variables() *Variables {
	return e.vars
}

// PackedFiles returns the packed-file records in file order.
func (e *Experiment) PackedFiles() []PackedFile {
	return e.packed
}
