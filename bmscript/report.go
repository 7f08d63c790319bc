package bmscript

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Report lists the commands a [Script] ran and which of them exited
// non-zero.
type Report struct {
	Steps  []string
	failed bitset.BitSet
}

func (r *Report) add(cmd string, ok bool) {
	i := uint(len(r.Steps))
	r.Steps = append(r.Steps, cmd)
	if !ok {
		r.failed.Set(i)
	}
}

func (r *Report) Len() int { return len(r.Steps) }

func (r *Report) OK() bool { return r.failed.None() }

func (r *Report) FailedCount() int { return int(r.failed.Count()) }

func (r *Report) StepFailed(i int) bool { return i >= 0 && r.failed.Test(uint(i)) }

// Failed returns the failed commands in the order they ran.
func (r *Report) Failed() (cmds []string) {
	for i, ok := r.failed.NextSet(0); ok; i, ok = r.failed.NextSet(i + 1) {
		cmds = append(cmds, r.Steps[i])
	}
	return cmds
}

func (r *Report) String() string {
	var sb strings.Builder
	for i, s := range r.Steps {
		if r.failed.Test(uint(i)) {
			sb.WriteString("FAIL ")
		} else {
			sb.WriteString("ok   ")
		}
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return sb.String()
}
