package container

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ExitCommandNotFound is the exit code used when the user program cannot be
// started at all, so it stays distinguishable from the program's own codes.
const ExitCommandNotFound = 127

// signalExitBase is added to the signal number of a killed child.
const signalExitBase = 128

// ExitOutcome is how a child process terminated: a numeric exit code or the
// signal that killed it.
type ExitOutcome struct {
	Code   int
	Signal syscall.Signal
}

// OutcomeFromStatus interprets a wait status. Statuses that are neither an
// exit nor a signal death (stopped, continued) are reported as code 1.
func OutcomeFromStatus(ws syscall.WaitStatus) ExitOutcome {
	switch {
	case ws.Exited():
		return ExitOutcome{Code: ws.ExitStatus()}
	case ws.Signaled():
		return ExitOutcome{Signal: ws.Signal()}
	}
	return ExitOutcome{Code: 1}
}

// ExitCode maps the outcome onto a process exit code: the code itself for a
// normal exit, 128 plus the signal number for a signal death.
func (o ExitOutcome) ExitCode() int {
	if o.Signal != 0 {
		return signalExitBase + int(o.Signal)
	}
	return o.Code
}

func (o ExitOutcome) String() string {
	if o.Signal != 0 {
		return fmt.Sprintf("killed by signal %d", int(o.Signal))
	}
	return fmt.Sprintf("exited with status %d", o.Code)
}

// waitExitCode blocks until cmd terminates and translates its termination into
// an exit code for the calling process.
func waitExitCode(cmd *exec.Cmd) (int, error) {
	if err := cmd.Wait(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return 1, errors.Wrapf(err, "wait for pid %d", cmd.Process.Pid)
		}
	}

	ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus)
	if !ok {
		return 1, errors.Errorf("unexpected wait status %T", cmd.ProcessState.Sys())
	}

	outcome := OutcomeFromStatus(ws)
	log.Infof("Child %s", outcome)
	return outcome.ExitCode(), nil
}
