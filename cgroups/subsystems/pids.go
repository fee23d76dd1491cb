package subsystems

import (
	"strconv"

	log "github.com/sirupsen/logrus"
)

// PidsSubSystem limits the number of live processes in a subgroup.
type PidsSubSystem struct{}

// Name returns pids
func (s *PidsSubSystem) Name() string {
	return "pids"
}

// Set writes pids.max and turns on release notification. Every write is
// attempted even when an earlier one fails; the first failure is returned.
func (s *PidsSubSystem) Set(cgroupPath string, res *ResourceConfig) error {
	if res == nil || res.PidsMax == "" {
		return nil
	}

	var first error
	for _, kv := range [][2]string{
		{"pids.max", res.PidsMax},  // upper bound on tasks in the subgroup
		{"notify_on_release", "1"}, // run the release agent once the subgroup empties
	} {
		if err := WriteCgroupFile(cgroupPath, kv[0], kv[1]); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		log.Debugf("Set cgroup %s %s : %s", s.Name(), kv[0], kv[1])
	}
	return first
}

// Apply writes pid into cgroup.procs.
func (s *PidsSubSystem) Apply(cgroupPath string, pid int) error {
	// cgroup.procs moves the whole thread group, tasks would move one thread
	if err := WriteCgroupFile(cgroupPath, "cgroup.procs", strconv.Itoa(pid)); err != nil {
		return err
	}
	log.Debugf("Apply cgroup %s : %d", s.Name(), pid)
	return nil
}
