package buildh

import (
	"context"
	"errors"
	"os"

	"git.fractalqb.de/fractalqb/buildh/buildcore"
)

// Build runs the steps of a build script synchronously, one after the other.
type Build struct {
	Trace  *Trace
	Env    *Env
	Runner Runner

	// StopOnNonZeroExit makes a command that exits non-zero fatal. Otherwise
	// it is logged as a warning and the build goes on.
	StopOnNonZeroExit bool

	// Exit terminates the build with a non-zero status. Nil means os.Exit.
	// If Exit returns, the build panics with [*Abort].
	Exit func(code int)
}

// NewBuild creates a build that traces to stdout/stderr if tr is nil and
// passes the process environment to commands if env is nil.
func NewBuild(tr *Trace, env *Env) *Build {
	if tr == nil {
		tr = buildcore.NewTrace(context.Background(), buildcore.DefaultTracer())
	}
	if env == nil {
		env = buildcore.DefaultEnv()
	}
	return &Build{
		Trace:  tr,
		Env:    env,
		Runner: buildcore.ExecRunner{},
	}
}

func (b *Build) Info(msg string, args ...any) { b.Trace.Info(msg, args...) }

func (b *Build) Warn(msg string, args ...any) { b.Trace.Warn(msg, args...) }

// MkDirs creates each of paths with all missing parents. Existing
// directories are fine, any other failure is fatal.
func (b *Build) MkDirs(paths ...string) {
	if err := buildcore.EnsureDirs(b.Trace, paths...); err != nil {
		b.Fatal(err)
	}
}

// MkDirsPath is MkDirs(Path(segments...)).
func (b *Build) MkDirsPath(segments ...string) { b.MkDirs(Path(segments...)) }

// Cmd runs argv and waits for it. A command that cannot be started is
// fatal. A non-zero exit code is a warning or, with StopOnNonZeroExit, fatal.
func (b *Build) Cmd(argv ...string) Result {
	res := b.run(argv)
	if res.ExitCode != 0 {
		if b.StopOnNonZeroExit {
			b.Fatal(res.Err)
		}
		var exitErr *buildcore.ExitError
		if errors.As(res.Err, &exitErr) && exitErr.Signal != "" {
			b.Trace.Warn("command `command` terminated by `signal`",
				`command`, res.Argv.String(),
				`signal`, exitErr.Signal,
			)
		} else {
			b.Trace.Warn("command `command` failed with exit code `code`",
				`command`, res.Argv.String(),
				`code`, res.ExitCode,
			)
		}
	}
	return res
}

// CmdErr runs argv like Cmd but leaves a non-zero exit to the caller: it
// returns [*buildcore.ExitError] and does not apply StopOnNonZeroExit.
func (b *Build) CmdErr(argv ...string) error {
	return b.run(argv).Err
}

func (b *Build) run(argv Argv) Result {
	r := b.Runner
	if r == nil {
		r = buildcore.ExecRunner{}
	}
	res := r.Run(b.Trace, argv, b.Env)
	if res.Argv == nil {
		res.Argv = argv
	}
	if res.State == buildcore.SpawnFailed {
		if res.Err == nil {
			res.Err = &buildcore.SpawnError{Argv: res.Argv, Err: errors.New("spawn failed")}
		}
		b.Fatal(res.Err)
	}
	if res.ExitCode != 0 && res.Err == nil {
		res.Err = &buildcore.ExitError{Argv: res.Argv, Code: res.ExitCode}
	}
	return res
}

// Fatal logs err as "[ERROR]" line and terminates the build with status 1.
func (b *Build) Fatal(err error) {
	if err == nil {
		err = errors.New("unknown build failure")
	}
	var (
		spawnErr *buildcore.SpawnError
		mkdirErr *buildcore.MkDirError
		exitErr  *buildcore.ExitError
	)
	switch {
	case errors.As(err, &spawnErr):
		b.Trace.Error("could not execute command `command`: `error`",
			`command`, spawnErr.Argv.String(),
			`error`, spawnErr.Err.Error(),
		)
	case errors.As(err, &mkdirErr):
		b.Trace.Error("could not create directory `directory`: `error`",
			`directory`, mkdirErr.Path,
			`error`, mkdirErr.Err.Error(),
		)
	case errors.As(err, &exitErr) && exitErr.Signal != "":
		b.Trace.Error("command `command` terminated by `signal`",
			`command`, exitErr.Argv.String(),
			`signal`, exitErr.Signal,
		)
	case errors.As(err, &exitErr):
		b.Trace.Error("command `command` failed with exit code `code`",
			`command`, exitErr.Argv.String(),
			`code`, exitErr.Code,
		)
	default:
		b.Trace.Error("`error`", `error`, err.Error())
	}
	b.exit(1, err)
}

func (b *Build) exit(code int, err error) {
	if b.Exit == nil {
		os.Exit(code)
	}
	b.Exit(code)
	panic(&Abort{Code: code, Err: err})
}
