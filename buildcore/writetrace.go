package buildcore

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.fractalqb.de/fractalqb/sllm/v3"
)

// WriteTracer writes the console protocol of a build: "[CMD]" and "[INFO]"
// lines go to Out, "[WARN]" and "[ERROR]" lines go to Err. Command lines and
// errors are written independent of Log.
type WriteTracer struct {
	Out, Err io.Writer
	Log      TraceLog
}

var _ Tracer = (*WriteTracer)(nil)

func DefaultTracer() *WriteTracer {
	return &WriteTracer{Out: os.Stdout, Err: os.Stderr, Log: DefaultTraceLog}
}

func (tr *WriteTracer) ParseLogFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = TraceWarn
	case "info", "i":
		tr.Log = TraceWarn | TraceInfo
	case "debug", "d":
		tr.Log = TraceWarn | TraceInfo | TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr *WriteTracer) Debug(_ *Trace, msg string, args ...any) {
	if tr.Log&TraceDebug == 0 {
		return
	}
	tr.line(tr.Out, "[DEBUG] ", msg, args)
}

func (tr *WriteTracer) Info(_ *Trace, msg string, args ...any) {
	if tr.Log&(TraceInfo|TraceDebug) == 0 {
		return
	}
	tr.line(tr.Out, "[INFO] ", msg, args)
}

func (tr *WriteTracer) Warn(_ *Trace, msg string, args ...any) {
	if tr.Log&(TraceWarn|TraceInfo|TraceDebug) == 0 {
		return
	}
	tr.line(tr.Err, "[WARN] ", msg, args)
}

func (tr *WriteTracer) Error(_ *Trace, msg string, args ...any) {
	tr.line(tr.Err, "[ERROR] ", msg, args)
}

func (tr *WriteTracer) Cmd(_ *Trace, cmdline string) {
	fmt.Fprintf(tr.Out, "[CMD] %s\n", cmdline)
}

func (tr *WriteTracer) MkDir(t *Trace, dir string) {
	tr.Info(t, "mkdir `directory`", `directory`, dir)
}

func (tr *WriteTracer) line(w io.Writer, prefix, msg string, args []any) {
	if w == nil {
		return
	}
	pa := plainArgs{args: args}
	buf, _ := sllm.Append(make([]byte, 0, len(msg)+64), msg, pa.append)
	pw := newPrefixWriterString(w, prefix)
	pw.Write(pa.unmark(buf))
	io.WriteString(pw, "\n")
}

type sllmArgs []any

func (as sllmArgs) lookup(n string) (any, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return nil, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return as[1], nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return k.Value, nil
			}
			as = as[1:]
		default:
			return nil, fmt.Errorf("illegal key type %T", k)
		}
	}
	return nil, fmt.Errorf("no key '%s'", n)
}

// plainArgs expands sllm templates for the console: "Building `tool`.c..."
// becomes "Building basm.c..." instead of "Building `tool:basm`.c...".
// Arguments that cannot be resolved keep the sllm error markup.
type plainArgs struct {
	args  sllmArgs
	ticks []int // closing backticks left by sllm.Append
}

func (pa *plainArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	v, err := pa.args.lookup(n)
	if err != nil {
		return buf, err
	}
	buf = buf[:len(buf)-len(n)-2] // drop "`name:"
	switch v := v.(type) {
	case string:
		buf = append(buf, v...)
	case error:
		buf = append(buf, v.Error()...)
	case fmt.Stringer:
		buf = append(buf, v.String()...)
	default:
		buf = sllm.AppendArg(buf, v)
	}
	pa.ticks = append(pa.ticks, len(buf))
	return buf, nil
}

func (pa *plainArgs) unmark(buf []byte) []byte {
	if len(pa.ticks) == 0 {
		return buf
	}
	res := buf[:pa.ticks[0]]
	for i, t := range pa.ticks {
		end := len(buf)
		if i+1 < len(pa.ticks) {
			end = pa.ticks[i+1]
		}
		res = append(res, buf[t+1:end]...)
	}
	return res
}
