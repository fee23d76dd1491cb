package container

import (
	"strings"

	"github.com/pkg/errors"
)

// Defaults used when the caller does not override them on the command line.
const (
	DefaultHostname   = "container"
	DefaultRootfsDir  = "ubuntu-rootfs"
	DefaultPidsMax    = 20
	DefaultCgroupRoot = "/sys/fs/cgroup"
)

// Directories mounted inside the new root.
const (
	ProcDir    = "/proc"
	ScratchDir = "/mytemp"
)

// CgroupName is the fixed subgroup every sandbox joins. Concurrent sandboxes share it.
const CgroupName = "container"

// ErrNoCommand is returned when a LaunchRequest carries no program to run.
var ErrNoCommand = errors.New("no command provided")

// LaunchRequest describes one sandbox invocation. It is built once from the
// command line and handed unchanged to every phase: the launcher, the
// re-executed init process and the command runner.
type LaunchRequest struct {
	Command    []string // program and arguments run inside the sandbox
	Hostname   string   // hostname set in the new UTS namespace
	RootfsDir  string   // directory name, relative to the working directory, used as the new root
	PidsMax    int      // maximum live processes, 0 disables the limit
	CgroupRoot string   // mount point of the cgroup v1 hierarchies

	// logging options forwarded to the re-executed process
	Debug   bool
	LogJSON bool
}

// NewLaunchRequest returns a request for command with every option at its default.
func NewLaunchRequest(command []string) *LaunchRequest {
	return &LaunchRequest{
		Command:    command,
		Hostname:   DefaultHostname,
		RootfsDir:  DefaultRootfsDir,
		PidsMax:    DefaultPidsMax,
		CgroupRoot: DefaultCgroupRoot,
	}
}

// Validate reports configuration errors that must stop the sandbox before any
// process is created.
func (r *LaunchRequest) Validate() error {
	if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
		return ErrNoCommand
	}
	if r.Hostname == "" {
		return errors.New("hostname must not be empty")
	}
	if r.PidsMax < 0 {
		return errors.Errorf("invalid pids limit %d", r.PidsMax)
	}
	if r.CgroupRoot == "" {
		return errors.New("cgroup root must not be empty")
	}
	return nil
}

// CommandString renders the command tail for log output.
func (r *LaunchRequest) CommandString() string {
	return strings.Join(r.Command, " ")
}
