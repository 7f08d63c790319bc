package buildcore

import (
	"errors"
	"os/exec"
	"strings"
)

// ExecRunner spawns commands as child processes and waits for them.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (ExecRunner) Run(tr *Trace, argv Argv, env *Env) Result {
	res, _ := NewProcess(env, argv...).Run(tr)
	return res
}

// Run spawns the process and blocks until it terminated. The returned error
// is only non-nil if p was already run; failures of the command are in the
// Result.
func (p *Process) Run(tr *Trace) (Result, error) {
	if p.state != NotStarted {
		return p.res, ErrProcessDone
	}
	p.state = Spawning
	tr.cmd(p.Argv)
	cmd, err := p.command()
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		tr.Debug("spawn failed for `command`: `error`", `command`, p.Argv[0], `error`, err)
		return p.done(SpawnFailed, -1, &SpawnError{Argv: p.Argv, Err: err}), nil
	}
	p.state = Running
	tr.Debug("started `command` as `pid`", `command`, p.Argv[0], `pid`, cmd.Process.Pid)
	err = cmd.Wait()
	var xerr *exec.ExitError
	switch {
	case err == nil:
		return p.done(Exited, 0, nil), nil
	case errors.As(err, &xerr):
		code := xerr.ExitCode()
		eerr := &ExitError{Argv: p.Argv, Code: code}
		if code < 0 {
			eerr.Signal = strings.TrimPrefix(xerr.ProcessState.String(), "signal: ")
		}
		return p.done(Exited, code, eerr), nil
	case cmd.ProcessState != nil:
		// the child exited but passing its I/O failed
		code := cmd.ProcessState.ExitCode()
		tr.Warn("I/O of `command` failed: `error`", `command`, p.Argv[0], `error`, err)
		if code == 0 {
			return p.done(Exited, 0, nil), nil
		}
		return p.done(Exited, code, &ExitError{Argv: p.Argv, Code: code}), nil
	}
	return p.done(SpawnFailed, -1, &SpawnError{Argv: p.Argv, Err: err}), nil
}

func (p *Process) command() (*exec.Cmd, error) {
	exe, err := exec.LookPath(p.Argv[0])
	if err != nil {
		return nil, err
	}
	env := p.Env
	if env == nil {
		env = DefaultEnv()
	}
	xenv, err := env.ExecEnv()
	if err != nil {
		return nil, err
	}
	cmd := &exec.Cmd{
		Path:   exe,
		Args:   p.Argv,
		Env:    xenv,
		Stdin:  env.In,
		Stdout: env.Out,
		Stderr: env.Err,
	}
	prepareCmd(cmd)
	return cmd, nil
}
