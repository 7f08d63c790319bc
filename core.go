package buildh

import (
	"git.fractalqb.de/fractalqb/buildh/buildcore"
)

type (
	Env    = buildcore.Env
	Trace  = buildcore.Trace
	Argv   = buildcore.Argv
	Result = buildcore.Result
	Runner = buildcore.Runner
)

func DefaultEnv() *Env { return buildcore.DefaultEnv() }

// Path joins path segments with the platform's path separator.
func Path(segments ...string) string { return buildcore.Join(segments...) }

// Concat concatenates items without separator.
func Concat(items ...string) string { return buildcore.Concat(items...) }

// ConcatSep concatenates items with sep between adjacent items.
func ConcatSep(sep string, items ...string) string {
	return buildcore.ConcatSep(sep, items...)
}
