package cgroups

import (
	"github.com/srstack/qsrbox/cgroups/subsystems"

	log "github.com/sirupsen/logrus"
)

// CgroupManager puts a process into a named subgroup of every available
// subsystem. Resource limiting is advisory: no step returns an error, failures
// are logged and the remaining steps still run.
type CgroupManager struct {
	Root     string                     // cgroup hierarchy mount point
	Path     string                     // subgroup path, relative to each subsystem hierarchy
	Resource *subsystems.ResourceConfig // limits to write

	active map[string]string // subsystem name -> absolute subgroup path
}

// NewCgroupManager returns a manager for the subgroup path under root.
func NewCgroupManager(root, path string, resConfig *subsystems.ResourceConfig) *CgroupManager {
	return &CgroupManager{
		Root:     root,
		Path:     path,
		Resource: resConfig,
		active:   make(map[string]string),
	}
}

// Init probes each subsystem and creates the subgroup where the hierarchy
// exists. Subsystems the host does not expose are skipped silently.
func (c *CgroupManager) Init() {
	for _, subSystemIn := range subsystems.SubsystemsIns {
		name := subSystemIn.Name()
		if !subsystems.Available(c.Root, name) {
			log.Debugf("Cgroup %v not available under %v, skip", name, c.Root)
			continue
		}
		cgroupPath, err := subsystems.GetCgroupPath(c.Root, name, c.Path, true)
		if err != nil {
			log.Warnf("Init cgroup %v fail: %v", name, err)
			continue
		}
		c.active[name] = cgroupPath
	}
}

// Set writes the resource limits into every initialised subgroup.
func (c *CgroupManager) Set() {
	for _, subSystemIn := range subsystems.SubsystemsIns {
		cgroupPath, ok := c.active[subSystemIn.Name()]
		if !ok {
			continue
		}
		if err := subSystemIn.Set(cgroupPath, c.Resource); err != nil {
			// keep going, the other subsystems still get their limits
			log.Warnf("Set cgroup %v fail: %v", subSystemIn.Name(), err)
		}
	}
}

// Apply adds pid to every initialised subgroup.
func (c *CgroupManager) Apply(pid int) {
	for _, subSystemIn := range subsystems.SubsystemsIns {
		cgroupPath, ok := c.active[subSystemIn.Name()]
		if !ok {
			continue
		}
		if err := subSystemIn.Apply(cgroupPath, pid); err != nil {
			log.Warnf("Apply cgroup %v fail: %v", subSystemIn.Name(), err)
		}
	}
}

// Enabled reports whether Init found at least one subsystem.
func (c *CgroupManager) Enabled() bool {
	return len(c.active) > 0
}
