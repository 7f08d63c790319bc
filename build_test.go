package buildh

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/buildh/buildcore"
	"git.fractalqb.de/fractalqb/testerr"
)

type recordRunner struct {
	calls [][]string
	exit  map[string]int
}

func (r *recordRunner) Run(tr *buildcore.Trace, argv buildcore.Argv, _ *buildcore.Env) buildcore.Result {
	r.calls = append(r.calls, argv)
	if argv[0] == "missing" {
		return buildcore.Result{
			Argv: argv, State: buildcore.SpawnFailed, ExitCode: -1,
			Err: &buildcore.SpawnError{Argv: argv, Err: os.ErrNotExist},
		}
	}
	res := buildcore.Result{Argv: argv, State: buildcore.Exited}
	if argv[0] == "killed" {
		res.ExitCode = -1
		res.Err = &buildcore.ExitError{Argv: argv, Code: -1, Signal: "killed"}
		return res
	}
	if code := r.exit[argv[0]]; code != 0 {
		res.ExitCode = code
		res.Err = &buildcore.ExitError{Argv: argv, Code: code}
	}
	return res
}

func testBuild(t *testing.T) (*Build, *recordRunner, *strings.Builder) {
	var log strings.Builder
	tr := buildcore.NewTrace(context.Background(), &buildcore.WriteTracer{
		Out: &log, Err: &log, Log: buildcore.TraceInfo,
	})
	rr := &recordRunner{exit: map[string]int{"false": 1}}
	b := NewBuild(tr, nil)
	b.Runner = rr
	b.Exit = func(code int) {
		if code == 0 {
			t.Error("exit with status 0")
		}
	}
	return b, rr, &log
}

func TestPath(t *testing.T) {
	sep := string(os.PathSeparator)
	if p := Path("build", "bin", "basm"); p != "build"+sep+"bin"+sep+"basm" {
		t.Errorf("path '%s'", p)
	}
	if s := ConcatSep(" ", "cc", "-o", "out", "in.c"); s != "cc -o out in.c" {
		t.Errorf("concat sep '%s'", s)
	}
}

func TestBuild_Cmd_nonZeroIsWarning(t *testing.T) {
	b, rr, log := testBuild(t)
	testerr.Shall(Try(func() {
		res := b.Cmd("false")
		if res.ExitCode != 1 {
			t.Errorf("exit code %d", res.ExitCode)
		}
		b.Cmd("true")
	})).BeNil(t)
	if len(rr.calls) != 2 {
		t.Errorf("build stopped after %d commands", len(rr.calls))
	}
	if s := log.String(); s != "[WARN] command false failed with exit code 1\n" {
		t.Errorf("log: '%s'", s)
	}
}

func TestBuild_Cmd_signal(t *testing.T) {
	b, _, log := testBuild(t)
	testerr.Shall(Try(func() { b.Cmd("killed", "-9") })).BeNil(t)
	if s := log.String(); s != "[WARN] command killed -9 terminated by killed\n" {
		t.Errorf("log: '%s'", s)
	}
	log.Reset()
	b.StopOnNonZeroExit = true
	if err := Try(func() { b.Cmd("killed") }); err == nil {
		t.Fatal("signal did not stop the build")
	}
	if s := log.String(); s != "[ERROR] command killed terminated by killed\n" {
		t.Errorf("log: '%s'", s)
	}
}

// nilErrRunner reports failures without an error value.
type nilErrRunner struct{ state buildcore.State }

func (r nilErrRunner) Run(_ *buildcore.Trace, argv buildcore.Argv, _ *buildcore.Env) buildcore.Result {
	if r.state == buildcore.SpawnFailed {
		return buildcore.Result{State: buildcore.SpawnFailed, ExitCode: -1}
	}
	return buildcore.Result{Argv: argv, State: buildcore.Exited, ExitCode: 3}
}

func TestBuild_Cmd_resultWithoutError(t *testing.T) {
	b, _, log := testBuild(t)
	b.Runner = nilErrRunner{state: buildcore.Exited}
	var res Result
	testerr.Shall(Try(func() { res = b.Cmd("cc") })).BeNil(t)
	var xerr *buildcore.ExitError
	if !errors.As(res.Err, &xerr) || xerr.Code != 3 {
		t.Errorf("result error %v", res.Err)
	}
	if !errors.As(b.CmdErr("cc"), &xerr) {
		t.Error("CmdErr returned no exit error")
	}

	log.Reset()
	exited := 0
	b.Exit = func(int) { exited++ }
	b.StopOnNonZeroExit = true
	err := Try(func() { b.Cmd("cc", "-c") })
	var abort *Abort
	if !errors.As(err, &abort) || !errors.As(err, &xerr) {
		t.Fatalf("unexpected error %v", err)
	}
	if exited != 1 {
		t.Errorf("exit hook called %d times", exited)
	}
	if s := log.String(); s != "[ERROR] command cc -c failed with exit code 3\n" {
		t.Errorf("log: '%s'", s)
	}

	log.Reset()
	b.Runner = nilErrRunner{state: buildcore.SpawnFailed}
	err = Try(func() { b.Cmd("cc") })
	var serr *buildcore.SpawnError
	if !errors.As(err, &serr) {
		t.Fatalf("unexpected error %v", err)
	}
	if s := log.String(); s != "[ERROR] could not execute command cc: spawn failed\n" {
		t.Errorf("log: '%s'", s)
	}
}

func TestBuild_Fatal_nil(t *testing.T) {
	b, _, log := testBuild(t)
	err := Try(func() { b.Fatal(nil) })
	var abort *Abort
	if !errors.As(err, &abort) || abort.Code != 1 {
		t.Fatalf("unexpected error %v", err)
	}
	if s := log.String(); s != "[ERROR] unknown build failure\n" {
		t.Errorf("log: '%s'", s)
	}
}

func TestBuild_Cmd_stopOnNonZeroExit(t *testing.T) {
	b, rr, log := testBuild(t)
	b.StopOnNonZeroExit = true
	err := Try(func() {
		b.Cmd("false")
		b.Cmd("true")
	})
	var abort *Abort
	if !errors.As(err, &abort) {
		t.Fatalf("not aborted: %v", err)
	}
	if abort.Code != 1 {
		t.Errorf("abort with status %d", abort.Code)
	}
	var xerr *buildcore.ExitError
	if !errors.As(err, &xerr) {
		t.Errorf("abort cause %v", abort.Err)
	}
	if len(rr.calls) != 1 {
		t.Errorf("build ran %d commands", len(rr.calls))
	}
	if s := log.String(); s != "[ERROR] command false failed with exit code 1\n" {
		t.Errorf("log: '%s'", s)
	}
}

func TestBuild_Cmd_spawnFailureIsFatal(t *testing.T) {
	b, rr, log := testBuild(t)
	err := Try(func() {
		b.Cmd("missing")
		b.Cmd("true")
	})
	var serr *buildcore.SpawnError
	if !errors.As(err, &serr) {
		t.Fatalf("unexpected error %v", err)
	}
	if len(rr.calls) != 1 {
		t.Errorf("build went on after spawn failure")
	}
	if s := log.String(); s != "[ERROR] could not execute command missing: file does not exist\n" {
		t.Errorf("log: '%s'", s)
	}
}

func TestBuild_CmdErr(t *testing.T) {
	b, _, _ := testBuild(t)
	b.StopOnNonZeroExit = true
	testerr.Shall(Try(func() {
		var xerr *buildcore.ExitError
		if err := b.CmdErr("false"); !errors.As(err, &xerr) {
			t.Errorf("cmd error %v", err)
		}
		testerr.Shall(b.CmdErr("true")).BeNil(t)
	})).BeNil(t)
}

func TestBuild_MkDirs(t *testing.T) {
	b, _, log := testBuild(t)
	root := t.TempDir()
	testerr.Shall(Try(func() {
		b.MkDirsPath(root, "build", "bin")
		b.MkDirs(Path(root, "build", "examples"))
	})).BeNil(t)
	testerr.Shall1(os.Stat(Path(root, "build", "bin"))).BeNil(t)
	testerr.Shall1(os.Stat(Path(root, "build", "examples"))).BeNil(t)
	want := "[INFO] mkdir " + Path(root, "build") + "\n" +
		"[INFO] mkdir " + Path(root, "build", "bin") + "\n" +
		"[INFO] mkdir " + Path(root, "build", "examples") + "\n"
	if s := log.String(); s != want {
		t.Errorf("log: '%s'", s)
	}
}

func TestBuild_MkDirs_fatal(t *testing.T) {
	b, _, _ := testBuild(t)
	root := t.TempDir()
	file := Path(root, "file")
	testerr.Shall(os.WriteFile(file, nil, 0644)).BeNil(t)
	err := Try(func() { b.MkDirs(Path(file, "sub")) })
	var mkErr *buildcore.MkDirError
	if !errors.As(err, &mkErr) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBuild_Cmd_exec(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX tools")
	}
	var log strings.Builder
	env := DefaultEnv()
	env.Out, env.Err = &log, &log
	b := NewBuild(buildcore.NewTrace(context.Background(), &buildcore.WriteTracer{Out: &log, Err: &log}), env)
	b.Exit = func(int) {}
	testerr.Shall(Try(func() {
		b.Cmd("sh", "-c", "echo hello")
	})).BeNil(t)
	if s := log.String(); s != "[CMD] sh -c echo hello\nhello\n" {
		t.Errorf("log: '%s'", s)
	}
}

func TestTry(t *testing.T) {
	if err := Try(func() { panic("boom") }); err == nil || err.Error() != "boom" {
		t.Errorf("string panic: %v", err)
	}
	if err := Try(func() { panic(42) }); err == nil || err.Error() != "panic: 42" {
		t.Errorf("int panic: %v", err)
	}
	var perr *buildcore.PreconditionError
	if err := Try(func() { Path() }); !errors.As(err, &perr) {
		t.Errorf("precondition panic: %v", err)
	}
}
