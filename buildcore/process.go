package buildcore

import (
	"errors"
	"fmt"
)

// Argv is one command invocation: the executable followed by its arguments.
type Argv []string

func (a Argv) String() string {
	if len(a) == 0 {
		return ""
	}
	return ConcatSep(" ", a...)
}

type State int

const (
	NotStarted State = iota
	Spawning
	Running
	Exited
	SpawnFailed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Spawning:
		return "spawning"
	case Running:
		return "running"
	case Exited:
		return "exited"
	case SpawnFailed:
		return "spawn failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) Terminal() bool { return s == Exited || s == SpawnFailed }

// Result is the outcome of running one command. ExitCode is -1 for
// SpawnFailed and for a command that was terminated by a signal (State is
// Exited then). Err is a [*SpawnError] for SpawnFailed and an [*ExitError]
// for a non-zero exit code.
type Result struct {
	Argv     Argv
	State    State
	ExitCode int
	Err      error
}

func (r Result) Spawned() bool { return r.State == Exited }

func (r Result) OK() bool { return r.State == Exited && r.ExitCode == 0 }

// SpawnError means the command could not be started at all.
type SpawnError struct {
	Argv Argv
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not execute command %s: %s", e.Argv, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the command ran and exited with a non-zero code. Signal
// is set if the command was terminated by a signal, Code is -1 then.
type ExitError struct {
	Argv   Argv
	Code   int
	Signal string
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("command %s terminated by %s", e.Argv, e.Signal)
	}
	return fmt.Sprintf("command %s failed with exit code %d", e.Argv, e.Code)
}

// Runner runs commands synchronously. Implementations must call back
// nothing after Run returned.
type Runner interface {
	Run(tr *Trace, argv Argv, env *Env) Result
}

var ErrProcessDone = errors.New("process already run")

// Process is a single invocation of a command with the state machine
//
//	NotStarted → Spawning → Running → Exited
//	                     ↘ SpawnFailed
//
// A Process runs at most once.
type Process struct {
	Argv Argv
	Env  *Env

	state State
	res   Result
}

// NewProcess panics with [*PreconditionError] if argv is empty. A nil env
// is the [DefaultEnv].
func NewProcess(env *Env, argv ...string) *Process {
	if len(argv) == 0 {
		panic(&PreconditionError{Op: "process", Msg: "empty argument vector"})
	}
	return &Process{Argv: argv, Env: env}
}

func (p *Process) State() State { return p.state }

// Result returns the result once the process reached a terminal state.
func (p *Process) Result() (Result, bool) {
	return p.res, p.state.Terminal()
}

func (p *Process) done(s State, code int, err error) Result {
	p.state = s
	p.res = Result{Argv: p.Argv, State: s, ExitCode: code, Err: err}
	return p.res
}

// DryRunner traces commands without running them. Every command succeeds.
type DryRunner struct{}

var _ Runner = DryRunner{}

func (DryRunner) Run(tr *Trace, argv Argv, env *Env) Result {
	p := NewProcess(env, argv...)
	p.state = Spawning
	tr.cmd(p.Argv)
	return p.done(Exited, 0, nil)
}
