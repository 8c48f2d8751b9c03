//go:build windows

package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

func configureCmdSysProcAttr(cmd *exec.Cmd) {}

// killProcess terminates only the direct child; `cmd /C` grandchildren are
// not tracked without a job object.
func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process %d: %w", cmd.Process.Pid, err)
	}
	return nil
}
