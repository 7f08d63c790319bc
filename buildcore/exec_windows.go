//go:build windows

package buildcore

import (
	"os/exec"
	"syscall"
)

// prepareCmd passes our own command line to CreateProcess so every argument
// is quoted, not only those Go considers to need it.
func prepareCmd(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: QuoteCommandLine(cmd.Args)}
}
