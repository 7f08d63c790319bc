package buildcore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DirMode is used for every directory created by [EnsureDirs]. The umask
// still applies.
const DirMode fs.FileMode = 0755

var ErrNotDir = errors.New("not a directory")

type MkDirError struct {
	Path string
	Err  error
}

func (e *MkDirError) Error() string {
	return fmt.Sprintf("could not create directory %s: %s", e.Path, e.Err)
}

func (e *MkDirError) Unwrap() error { return e.Err }

// EnsureDirs creates each of paths including all missing parents. A
// directory that already exists is fine. EnsureDirs stops at the first
// failure and returns it as [*MkDirError].
func EnsureDirs(tr *Trace, paths ...string) error {
	for _, path := range paths {
		if err := ensureDir(tr, path); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir walks path from left to right and creates the prefix at each
// separator boundary, then path itself. Parents are created before children.
func ensureDir(tr *Trace, path string) error {
	if path == "" {
		panic(&PreconditionError{Op: "ensure dirs", Msg: "empty path"})
	}
	start := len(filepath.VolumeName(path))
	for i := start; i < len(path); i++ {
		if !os.IsPathSeparator(path[i]) {
			continue
		}
		if i == start || os.IsPathSeparator(path[i-1]) {
			continue
		}
		if err := mkDir(tr, path[:i]); err != nil {
			return err
		}
	}
	return mkDir(tr, path)
}

func mkDir(tr *Trace, dir string) error {
	err := os.Mkdir(dir, DirMode)
	switch {
	case err == nil:
		tr.mkDir(dir)
		return nil
	case errors.Is(err, fs.ErrExist):
		st, serr := os.Stat(dir)
		if serr != nil {
			return &MkDirError{Path: dir, Err: serr}
		}
		if !st.IsDir() {
			return &MkDirError{Path: dir, Err: ErrNotDir}
		}
		tr.Debug("`directory` exists", `directory`, dir)
		return nil
	}
	return &MkDirError{Path: dir, Err: err}
}
