package subsystems

// ResourceConfig holds the limits written into the cgroup control files.
// An empty value leaves the corresponding limit untouched.
type ResourceConfig struct {
	PidsMax string `json:"PidsMax"` // pids.max
}

// Subsystem is one cgroup v1 controller hierarchy.
type Subsystem interface {
	// Name is the controller name, also its directory under the cgroup root.
	Name() string
	// Set writes the limits from res into the subgroup at cgroupPath.
	Set(cgroupPath string, res *ResourceConfig) error
	// Apply moves pid into the subgroup at cgroupPath.
	Apply(cgroupPath string, pid int) error
}

// SubsystemsIns lists the controllers the manager drives.
var SubsystemsIns = []Subsystem{
	&PidsSubSystem{},
}
