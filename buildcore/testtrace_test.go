package buildcore

import "testing"

type TestTracer struct{ t *testing.T }

var _ Tracer = TestTracer{}

func (tr TestTracer) Debug(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"buildh-DEBUG:", msg}, args...)...)
}

func (tr TestTracer) Info(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"buildh-INFO:", msg}, args...)...)
}

func (tr TestTracer) Warn(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"buildh-WARN:", msg}, args...)...)
}

func (tr TestTracer) Error(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"buildh-ERROR:", msg}, args...)...)
}

func (tr TestTracer) Cmd(_ *Trace, cmdline string) {
	tr.t.Logf("buildh-CMD: %s", cmdline)
}

func (tr TestTracer) MkDir(_ *Trace, dir string) {
	tr.t.Logf("buildh-MkDir: %s", dir)
}
