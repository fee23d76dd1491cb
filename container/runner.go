package container

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// RunCommand starts the user program with the caller's stdio, waits for it
// and returns the exit code the sandbox should exit with.
//
// A program that cannot be executed (not found, not executable) yields
// ExitCommandNotFound rather than an error: from the caller's point of view
// it is a user-program failure. Any other start failure, such as a fork
// refused by the pids limit, is a sandbox failure and returned as an error.
func RunCommand(command []string) (int, error) {
	if len(command) == 0 {
		return 1, ErrNoCommand
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return startFailure(command[0], err)
	}
	log.Debugf("User command %s started with pid %d", command[0], cmd.Process.Pid)

	return waitExitCode(cmd)
}

// startFailure maps a cmd.Start error onto the sandbox exit code.
func startFailure(program string, err error) (int, error) {
	if isExecFailure(err) {
		log.Errorf("Exec %s error : %v", program, err)
		return ExitCommandNotFound, nil
	}
	return 1, errors.Wrapf(err, "fork %s", program)
}

// isExecFailure reports whether err means the program itself cannot be run,
// as opposed to the process not being created at all.
func isExecFailure(err error) bool {
	// LookPath failures: not on PATH, or a path that is not executable.
	var lookErr *exec.Error
	if errors.As(err, &lookErr) {
		return true
	}
	// execve failures reported back from the new process.
	for _, errno := range []unix.Errno{unix.ENOENT, unix.EACCES, unix.ENOEXEC} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
