package supervisor

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"time"
)

// Handle is a reference to a spawned companion process. Only the Supervisor
// holds one.
type Handle interface {
	Pid() int
	// Kill forcefully terminates the process. It is best-effort: an already
	// exited process may report an error that callers are free to ignore.
	Kill() error
}

// ProcessHandle is the Handle of a real OS child process.
type ProcessHandle struct {
	cmd     *exec.Cmd
	done    chan struct{}
	exitErr error
}

// waitDelay bounds how long the reaper waits for output pipes after the
// process exits; grandchildren can keep them open.
const waitDelay = 2 * time.Second

// StartProcess starts cmd and returns its handle. A reaper goroutine waits on
// the child so that liveness can be checked on demand and no zombie is left.
func StartProcess(cmd *exec.Cmd) (*ProcessHandle, error) {
	configureCmdSysProcAttr(cmd)
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}

	h := &ProcessHandle{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		h.exitErr = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

// Pid returns the OS process identifier.
func (h *ProcessHandle) Pid() int {
	return h.cmd.Process.Pid
}

// Kill sends a forceful termination signal.
func (h *ProcessHandle) Kill() error {
	return killProcess(h.cmd)
}

// Exited reports whether the process has exited. This is the only liveness
// check; nothing is notified when the child dies.
func (h *ProcessHandle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the process exits.
func (h *ProcessHandle) Done() <-chan struct{} {
	return h.done
}

// ExitErr returns the process exit error. Only meaningful after Done is closed.
func (h *ProcessHandle) ExitErr() error {
	select {
	case <-h.done:
		return h.exitErr
	default:
		return nil
	}
}

// lineLogger forwards child output to the standard logger one line at a time.
type lineLogger struct {
	prefix string
	pw     *io.PipeWriter
	once   sync.Once
}

func newLineLogger(prefix string) *lineLogger {
	pr, pw := io.Pipe()
	l := &lineLogger{prefix: prefix, pw: pw}
	go func() {
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			log.Printf("%s%s", l.prefix, scanner.Text())
		}
		_ = pr.CloseWithError(scanner.Err())
	}()
	return l
}

func (l *lineLogger) Write(p []byte) (int, error) {
	return l.pw.Write(p)
}

// Close stops forwarding. Safe to call multiple times.
func (l *lineLogger) Close() error {
	l.once.Do(func() {
		_ = l.pw.Close()
	})
	return nil
}
