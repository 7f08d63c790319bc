package buildcore

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

// Env is what a command inherits from the build: standard I/O and the
// environment variables. As long as no variable is changed, commands get the
// environment of the build process unchanged.
type Env struct {
	In       io.Reader
	Out, Err io.Writer

	vars map[string]string // nil: unchanged process environment
}

func DefaultEnv() *Env {
	return &Env{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

func (e *Env) Clone() *Env {
	return &Env{
		In: e.In, Out: e.Out, Err: e.Err,
		vars: maps.Clone(e.vars),
	}
}

// Modified reports whether commands will see an environment that differs
// from the build process' environment.
func (e *Env) Modified() bool { return e.vars != nil }

func (e *Env) Var(key string) (string, bool) {
	if e.vars == nil {
		return os.LookupEnv(key)
	}
	v, ok := e.vars[key]
	return v, ok
}

func (e *Env) SetVar(key, val string) {
	e.materialize()
	e.vars[key] = val
}

// SetVars sets variables from "key=value" strings. A string without '='
// sets key to the empty string.
func (e *Env) SetVars(env ...string) {
	e.materialize()
	for _, evar := range env {
		k, v, _ := strings.Cut(evar, "=")
		e.vars[k] = v
	}
}

func (e *Env) SetVarsMap(vars map[string]string) {
	e.materialize()
	maps.Copy(e.vars, vars)
}

func (e *Env) DelVar(key string) {
	e.materialize()
	delete(e.vars, key)
}

type BadEnvKeys []string

func (e BadEnvKeys) Error() string {
	return fmt.Sprintf("illegal exec env keys: %s", strings.Join(e, ", "))
}

func (BadEnvKeys) Is(target error) bool {
	_, ok := target.(BadEnvKeys)
	return ok
}

// ExecEnv returns the environment for [exec.Cmd.Env], sorted by key. It
// returns nil if the environment was not modified, i.e. commands inherit the
// process environment.
func (e *Env) ExecEnv() ([]string, error) {
	if e.vars == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	xenv := make([]string, 0, len(keys))
	var errKeys []string
	for _, k := range keys {
		switch {
		case k == "":
			errKeys = append(errKeys, `""`)
		case strings.ContainsRune(k, '='):
			errKeys = append(errKeys, k)
		default:
			xenv = append(xenv, k+"="+e.vars[k])
		}
	}
	if len(errKeys) > 0 {
		return xenv, BadEnvKeys(errKeys)
	}
	return xenv, nil
}

func (e *Env) materialize() {
	if e.vars != nil {
		return
	}
	e.vars = make(map[string]string)
	for _, evar := range os.Environ() {
		k, v, _ := strings.Cut(evar, "=")
		if k == "" { // e.g. per-drive cwd on Windows
			continue
		}
		e.vars[k] = v
	}
}
