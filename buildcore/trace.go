package buildcore

import (
	"context"
	"sync/atomic"
)

// Tracer receives everything a build reports. Messages are sllm templates,
// i.e. `name` in backticks refers to the argument with key name.
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)
	Error(t *Trace, msg string, args ...any)

	// Cmd is called right before a command is spawned.
	Cmd(t *Trace, cmdline string)
	// MkDir is called for each directory that was actually created.
	MkDir(t *Trace, dir string)
}

type TraceLog int

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

var DefaultTraceLog = TraceWarn | TraceInfo

// Trace binds a [Tracer] to a context. A nil *Trace is valid and discards
// everything.
type Trace struct {
	ctx  context.Context
	tr   Tracer
	cmds atomic.Uint64
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Trace{ctx: ctx, tr: t}
}

func (t *Trace) Ctx() context.Context {
	if t == nil {
		return context.Background()
	}
	return t.ctx
}

func (t *Trace) Tracer() Tracer {
	if t == nil {
		return nil
	}
	return t.tr
}

// Cmds returns the number of commands traced so far.
func (t *Trace) Cmds() uint64 {
	if t == nil {
		return 0
	}
	return t.cmds.Load()
}

func (t *Trace) Debug(msg string, args ...any) {
	if t != nil && t.tr != nil {
		t.tr.Debug(t, msg, args...)
	}
}

func (t *Trace) Info(msg string, args ...any) {
	if t != nil && t.tr != nil {
		t.tr.Info(t, msg, args...)
	}
}

func (t *Trace) Warn(msg string, args ...any) {
	if t != nil && t.tr != nil {
		t.tr.Warn(t, msg, args...)
	}
}

func (t *Trace) Error(msg string, args ...any) {
	if t != nil && t.tr != nil {
		t.tr.Error(t, msg, args...)
	}
}

func (t *Trace) cmd(argv Argv) {
	if t == nil {
		return
	}
	t.cmds.Add(1)
	if t.tr != nil {
		t.tr.Cmd(t, argv.String())
	}
}

func (t *Trace) mkDir(dir string) {
	if t != nil && t.tr != nil {
		t.tr.MkDir(t, dir)
	}
}
