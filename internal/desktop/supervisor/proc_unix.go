//go:build !windows

package supervisor

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// configureCmdSysProcAttr puts the child in its own process group so that
// package-manager wrappers (npm → node) are killed together with it.
func configureCmdSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return nil
		}
		// Fall back to the direct child if the group is not ours.
		if kerr := cmd.Process.Kill(); kerr != nil {
			return fmt.Errorf("kill process group %d: %w", cmd.Process.Pid, err)
		}
	}
	return nil
}
