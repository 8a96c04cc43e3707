package igor

import (
	"fmt"
	"strings"
)

// Folder is one node of an experiment's data folder tree. Children
// keep their order in the file.
type Folder struct {
	name    string
	path    string
	entries []interface{}
	folders []*Folder
	waves   []*Wave
	vars    []*Variables
	unknown []UnknownRecord
}

func newFolder(name, path string) *Folder {
	return &Folder{name: name, path: path}
}

// Name returns the folder name. The root folder is named "root".
func (f *Folder) Name() string {
	return f.name
}

// Path returns the slash-joined path from the root folder.
func (f *Folder) Path() string {
	return f.path
}

// Entries returns every child in file order. Elements are *Folder,
// *Wave, *Variables or UnknownRecord.
func (f *Folder) Entries() []interface{} {
	return f.entries
}

// Folders returns the direct subfolders in file order.
func (f *Folder) Folders() []*Folder {
	return f.folders
}

// Waves returns the waves stored in this folder in file order.
func (f *Folder) Waves() []*Wave {
	return f.waves
}

// Variables returns the variable tables stored in this folder.
func (f *Folder) Variables() []*Variables {
	return f.vars
}

// Unknown returns the opaque records attached to this folder.
func (f *Folder) Unknown() []UnknownRecord {
	return f.unknown
}

// Wave returns the named wave, or nil. The first match wins if the
// file carries duplicates.
func (f *Folder) Wave(name string) *Wave {
	for _, w := range f.waves {
		if w.Name() == name {
			return w
		}
	}
	return nil
}

// Folder returns the named subfolder, or nil.
func (f *Folder) Folder(name string) *Folder {
	for _, c := range f.folders {
		if c.name == name {
			return c
		}
	}
	return nil
}

// OpenFolder opens a folder by slash-separated path relative to f.
// The empty path opens f itself.
func (f *Folder) OpenFolder(path string) (*Folder, error) {
	cur := f
	for _, name := range splitPath(path) {
		next := cur.Folder(name)
		if next == nil {
			if cur.Wave(name) != nil {
				return nil, fmt.Errorf("%q: %w", joinPath(cur.path, name), ErrNotFolder)
			}
			return nil, fmt.Errorf("%q: %w", joinPath(cur.path, name), ErrNotFound)
		}
		cur = next
	}
	return cur, nil
}

// OpenWave opens a wave by slash-separated path relative to f, the
// last component naming the wave.
func (f *Folder) OpenWave(path string) (*Wave, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%q: %w", f.path, ErrNotWave)
	}
	dir, err := f.OpenFolder(strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return nil, err
	}
	name := parts[len(parts)-1]
	if w := dir.Wave(name); w != nil {
		return w, nil
	}
	if dir.Folder(name) != nil {
		return nil, fmt.Errorf("%q: %w", joinPath(dir.path, name), ErrNotWave)
	}
	return nil, fmt.Errorf("%q: %w", joinPath(dir.path, name), ErrNotFound)
}

func (f *Folder) addFolder(c *Folder) {
	f.folders = append(f.folders, c)
	f.entries = append(f.entries, c)
}

func (f *Folder) addWave(w *Wave) {
	f.waves = append(f.waves, w)
	f.entries = append(f.entries, w)
}

func (f *Folder) addVariables(v *Variables) {
	f.vars = append(f.vars, v)
	f.entries = append(f.entries, v)
}

func (f *Folder) addUnknown(u UnknownRecord) {
	f.unknown = append(f.unknown, u)
	f.entries = append(f.entries, u)
}

// splitPath splits a slash-separated path, dropping empty components.
func splitPath(path string) []string {
	var parts []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func joinPath(dir, name string) string {
	return dir + "/" + name
}
