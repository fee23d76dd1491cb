package subsystems

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Available reports whether the subsystem hierarchy is mounted under cgroupRoot.
func Available(cgroupRoot, subsystem string) bool {
	_, err := os.Stat(filepath.Join(cgroupRoot, subsystem))
	return err == nil
}

// GetCgroupPath returns the absolute path of cgroupPath inside the subsystem
// hierarchy, creating the directory when autoCreate is set.
func GetCgroupPath(cgroupRoot, subsystem, cgroupPath string, autoCreate bool) (string, error) {
	// e.g. /sys/fs/cgroup/pids/container
	absCgroupPath := filepath.Join(cgroupRoot, subsystem, cgroupPath)

	_, err := os.Stat(absCgroupPath)
	switch {
	case err == nil:
	case os.IsNotExist(err) && autoCreate:
		// the kernel fills a new subgroup with its control files
		if err := os.Mkdir(absCgroupPath, 0755); err != nil && !os.IsExist(err) {
			return "", errors.Wrapf(err, "create cgroup %s", absCgroupPath)
		}
	default:
		return "", errors.Wrapf(err, "cgroup path %s", absCgroupPath)
	}

	log.Debugf("Subsystem path : %v", absCgroupPath)
	return absCgroupPath, nil
}

// WriteCgroupFile writes value into an existing control file. Control files
// are created by the kernel, so a missing file is an error, never created here.
func WriteCgroupFile(cgroupPath, file, value string) error {
	name := filepath.Join(cgroupPath, file)
	// no O_CREATE: outside cgroupfs a missing file must stay missing
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Wrapf(err, "open %s", name)
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", name)
	}
	return errors.Wrapf(f.Close(), "close %s", name)
}
