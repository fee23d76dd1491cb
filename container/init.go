package container

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/srstack/qsrbox/cgroups"
	"github.com/srstack/qsrbox/cgroups/subsystems"
)

// RunContainerInitProcess runs as process one of the new PID namespace. It
// isolates hostname and mount table, switches to the sandbox root, mounts
// proc and a scratch tmpfs, joins the pids cgroup, runs the user command and
// tears the mounts down again before returning the command's exit code.
func RunContainerInitProcess(req *LaunchRequest) (int, error) {
	log.Infof("Running %s", req.CommandString())

	// UTS namespace: the hostname only changes inside the sandbox
	if err := unix.Sethostname([]byte(req.Hostname)); err != nil {
		return 1, errors.Wrap(err, "sethostname")
	}

	// Keep mounts made from here on out of the host's mount table and vice versa.
	if err := unix.Mount("", "/", "", unix.MS_REC|unix.MS_PRIVATE, ""); err != nil {
		return 1, errors.Wrap(err, "make / rprivate")
	}

	// rootfs lives under the directory qsrbox was started from
	pwd, err := os.Getwd()
	if err != nil {
		return 1, errors.Wrap(err, "getwd")
	}
	root, err := SandboxRoot(pwd, req.RootfsDir)
	if err != nil {
		return 1, err
	}
	if err := switchRoot(root); err != nil {
		return 1, err
	}
	log.Debugf("Switched root to %s", root)

	// after the root switch every mount target is relative to the new /
	mounts := NewMountSet("/")
	if err := mounts.Prepare(); err != nil {
		return 1, err
	}
	if err := mounts.Mount(); err != nil {
		return 1, err
	}

	// advisory, never fails the sandbox
	limitResources(req, os.Getpid())

	// fork/exec the user program and wait for it
	code, runErr := RunCommand(req.Command)

	// unmount even when the program could not be started
	if err := mounts.Unmount(); err != nil {
		return 1, err
	}
	return code, runErr
}

// switchRoot changes the filesystem root and then the working directory into it.
func switchRoot(root string) error {
	// chroot alone keeps the old working directory reachable
	if err := unix.Chroot(root); err != nil {
		return errors.Wrapf(err, "chroot %s", root)
	}
	if err := unix.Chdir("/"); err != nil {
		return errors.Wrap(err, "chdir /")
	}
	return nil
}

// limitResources joins the pids cgroup. It never fails the sandbox.
func limitResources(req *LaunchRequest, pid int) *cgroups.CgroupManager {
	if req.PidsMax == 0 {
		log.Debugf("Pids limit disabled")
		return nil
	}

	cgroupManager := cgroups.NewCgroupManager(req.CgroupRoot, CgroupName, &subsystems.ResourceConfig{
		PidsMax: strconv.Itoa(req.PidsMax),
	})
	cgroupManager.Init()
	cgroupManager.Set()
	cgroupManager.Apply(pid)
	return cgroupManager
}
