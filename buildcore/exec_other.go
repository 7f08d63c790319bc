//go:build !windows

package buildcore

import "os/exec"

// prepareCmd leaves cmd alone: fork/exec gets the argument vector verbatim.
func prepareCmd(cmd *exec.Cmd) {}
