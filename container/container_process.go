package container

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// SelfExe is the path the kernel exposes for the running binary.
const SelfExe = "/proc/self/exe"

// ChildCommand is the subcommand that enters the sandbox. It is only reached
// through the re-execution performed by the launcher.
const ChildCommand = "child"

// NamespaceFlags are the namespaces the sandbox process is created in. They
// must be in place when the process is created: a PID namespace only
// renumbers processes created after it exists.
const NamespaceFlags = unix.CLONE_NEWUTS | unix.CLONE_NEWPID | unix.CLONE_NEWNS

// ChildArgs builds the argv of the re-executed process: global flags, the
// child subcommand, every sandbox option and then the untouched command tail.
func (r *LaunchRequest) ChildArgs() []string {
	args := []string{SelfExe}
	if r.Debug {
		args = append(args, "--debug")
	}
	if r.LogJSON {
		args = append(args, "--log-json")
	}
	args = append(args, ChildCommand,
		"--hostname", r.Hostname,
		"--rootfs", r.RootfsDir,
		"--pids-max", strconv.Itoa(r.PidsMax),
		"--cgroup-root", r.CgroupRoot,
		"--",
	)
	return append(args, r.Command...)
}

// NewParentProcess builds the process that re-executes this binary inside
// fresh UTS, PID and mount namespaces.
func NewParentProcess(req *LaunchRequest) *exec.Cmd {
	// exec /proc/self/exe child ..., the same binary entering its init side
	cmd := &exec.Cmd{
		Path: SelfExe,
		Args: req.ChildArgs(),
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Cloneflags: NamespaceFlags,
	}
	// the sandbox shares the caller's terminal
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Launch creates the namespaced process, waits for it and returns the exit
// code this process should exit with.
func Launch(req *LaunchRequest) (int, error) {
	if _, err := os.Stat(SelfExe); err != nil {
		return 1, errors.Wrap(err, "resolve self executable")
	}

	// clone with the namespace flags and execve happen in one Start
	parent := NewParentProcess(req)
	if err := parent.Start(); err != nil {
		return 1, errors.Wrap(err, "create namespaced process")
	}
	log.Debugf("Namespaced process started with host pid %d", parent.Process.Pid)

	return waitExitCode(parent)
}
