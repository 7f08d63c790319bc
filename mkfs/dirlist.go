package mkfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"git.fractalqb.de/fractalqb/buildh/buildcore"
)

// DirList is the list of entries in Dir that pass Filter. It is read from
// the filesystem each time it is used, i.e. it can be iterated any number
// of times and sees changes made in the meantime. Entries come in filename
// order; "." and ".." never show up.
type DirList struct {
	Dir    string
	Filter Filter
}

// List returns the names of the entries.
func (d DirList) List() (ls []string, err error) {
	err = d.ls(func(name string, _ fs.DirEntry) error {
		ls = append(ls, name)
		return nil
	})
	return ls, err
}

// Paths returns the entries joined to Dir.
func (d DirList) Paths() (ps []string, err error) {
	err = d.ls(func(name string, _ fs.DirEntry) error {
		ps = append(ps, buildcore.Join(d.Dir, name))
		return nil
	})
	return ps, err
}

// Each calls do for the name of each entry until do returns an error. Use
// [fs.SkipAll] to stop without error.
func (d DirList) Each(do func(name string) error) error {
	err := d.ls(func(name string, _ fs.DirEntry) error { return do(name) })
	if errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (d DirList) Exists() (bool, error) {
	st, err := os.Stat(d.Dir)
	switch {
	case err == nil:
		if !st.IsDir() {
			return true, fmt.Errorf("%s is no directory", d.Dir)
		}
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, err
}

func (d DirList) ls(do func(name string, e fs.DirEntry) error) error {
	rdir, err := os.ReadDir(d.Dir)
	if err != nil {
		return err
	}
	for _, entry := range rdir {
		if d.Filter != nil {
			p := buildcore.Join(d.Dir, entry.Name())
			if ok, err := d.Filter.Ok(p, entry); err != nil {
				return err
			} else if !ok {
				continue
			}
		}
		if err := do(entry.Name(), entry); err != nil {
			return err
		}
	}
	return nil
}
