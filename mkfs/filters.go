package mkfs

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Filter decides whether a directory entry is listed. path is the entry
// joined to the listed directory.
type Filter interface {
	Ok(path string, entry fs.DirEntry) (bool, error)
}

// IsDir selects directories if true and everything else if false.
type IsDir bool

func (want IsDir) Ok(_ string, e fs.DirEntry) (bool, error) {
	return e.IsDir() == bool(want), nil
}

// NameMatch selects entries whose name matches the [filepath.Match]
// pattern. A malformed pattern is reported as error.
type NameMatch string

func (pattern NameMatch) Ok(_ string, e fs.DirEntry) (bool, error) {
	return filepath.Match(string(pattern), e.Name())
}

// Suffix selects entry names that end with the suffix. Unlike an extension
// it does not need to start with a dot, "basm" also matches "x.basm".
type Suffix string

func (s Suffix) Ok(_ string, e fs.DirEntry) (bool, error) {
	return strings.HasSuffix(e.Name(), string(s)), nil
}

// Not inverts f. Errors of f are passed on.
func Not(f Filter) Filter { return not{f} }

type not struct{ f Filter }

func (n not) Ok(p string, e fs.DirEntry) (bool, error) {
	ok, err := n.f.Ok(p, e)
	return !ok, err
}

// All selects entries that pass every filter; the empty All passes all.
type All []Filter

func (fs All) Ok(p string, e fs.DirEntry) (bool, error) {
	for _, f := range fs {
		if ok, err := f.Ok(p, e); err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

// Any selects entries that pass at least one filter.
type Any []Filter

func (fs Any) Ok(p string, e fs.DirEntry) (bool, error) {
	for _, f := range fs {
		if ok, err := f.Ok(p, e); err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}

// ExcludeNames selects entries whose name matches none of the patterns.
func ExcludeNames(patterns ...string) Filter {
	match := make(Any, len(patterns))
	for i, p := range patterns {
		match[i] = NameMatch(p)
	}
	return Not(match)
}
