package buildcore

import (
	"fmt"
	"os"
	"strings"
)

// Separator is the path separator of the platform the build runs on.
const Separator = os.PathSeparator

// PreconditionError is the panic value for calls that can only come from a
// buggy build script, e.g. joining no path segments at all.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// ConcatSep concatenates items in order with sep between adjacent items. It
// panics with a [*PreconditionError] if items is empty.
func ConcatSep(sep string, items ...string) string {
	if len(items) == 0 {
		panic(&PreconditionError{Op: "concat", Msg: "no items"})
	}
	n := len(sep) * (len(items) - 1)
	for _, item := range items {
		n += len(item)
	}
	var sb strings.Builder
	sb.Grow(n)
	sb.WriteString(items[0])
	for _, item := range items[1:] {
		sb.WriteString(sep)
		sb.WriteString(item)
	}
	return sb.String()
}

// Concat concatenates items without separator, e.g. a tool name and ".c".
func Concat(items ...string) string { return ConcatSep("", items...) }

// Join joins path segments with the platform's [Separator]. It is a textual
// join: nothing is cleaned, duplicate separators and dot segments are kept.
func Join(segments ...string) string { return JoinSep(Separator, segments...) }

// JoinSep is [Join] with an explicit separator.
func JoinSep(sep byte, segments ...string) string {
	if len(segments) == 0 {
		panic(&PreconditionError{Op: "join", Msg: "no path segments"})
	}
	return ConcatSep(string(sep), segments...)
}
