package igor

import "errors"

// ErrStopWalk stops a walk early from inside a WalkFunc. Walk reports
// it as success.
var ErrStopWalk = errors.New("stop walking")

// WalkFunc is called for each folder and wave during traversal. path
// is the full slash-joined path of the object and obj is either a
// *Folder or a *Wave. Return ErrStopWalk to stop walking, any other
// error to abort.
type WalkFunc func(path string, obj interface{}) error

// Walk traverses the folder tree in file order, calling fn for each
// folder before its contents, starting with f itself.
func Walk(f *Folder, fn WalkFunc) error {
	err := walkFolder(f, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walkFolder(f *Folder, fn WalkFunc) error {
	if err := fn(f.path, f); err != nil {
		return err
	}
	for _, e := range f.entries {
		switch o := e.(type) {
		case *Folder:
			if err := walkFolder(o, fn); err != nil {
				return err
			}
		case *Wave:
			if err := fn(joinPath(f.path, o.Name()), o); err != nil {
				return err
			}
		}
	}
	return nil
}
