package container

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// mountPoint is one filesystem mounted inside the sandbox root.
type mountPoint struct {
	Source string
	Target string // relative to the MountSet root
	FSType string
	Perm   os.FileMode
	Flags  uintptr
	Data   string
}

// MountSet owns the filesystems mounted inside the sandbox. Whatever Mount
// managed to mount, Unmount takes down again.
type MountSet struct {
	root    string
	points  []mountPoint
	mounted []string
}

// NewMountSet returns the proc and scratch tmpfs mounts under root.
func NewMountSet(root string) *MountSet {
	return &MountSet{
		root: root,
		points: []mountPoint{
			// mount -t proc proc /proc
			{
				Source: "proc",
				Target: ProcDir,
				FSType: "proc",
				Perm:   0555,
				Flags:  unix.MS_NOEXEC | unix.MS_NOSUID | unix.MS_NODEV,
			},
			// mount -t tmpfs tmpfs /mytemp, memory backed scratch space
			{
				Source: "tmpfs",
				Target: ScratchDir,
				FSType: "tmpfs",
				Perm:   0755,
				Flags:  unix.MS_NOSUID | unix.MS_NODEV,
				Data:   "mode=755",
			},
		},
	}
}

func (m *MountSet) path(target string) string {
	return filepath.Join(m.root, target)
}

// Prepare creates every mount point directory. Existing directories are fine.
func (m *MountSet) Prepare() error {
	for _, p := range m.points {
		if err := ensureDir(m.path(p.Target), p.Perm); err != nil {
			return err
		}
	}
	return nil
}

// Mount mounts every filesystem in order. If one fails, the ones already
// mounted are unmounted before the error is returned.
func (m *MountSet) Mount() error {
	for _, p := range m.points {
		target := m.path(p.Target)
		if err := unix.Mount(p.Source, target, p.FSType, p.Flags, p.Data); err != nil {
			// roll back so a half-built sandbox leaves nothing mounted
			if uerr := m.Unmount(); uerr != nil {
				log.Errorf("Rollback mounts error : %v", uerr)
			}
			return errors.Wrapf(err, "mount %s at %s", p.FSType, target)
		}
		m.mounted = append(m.mounted, target)
		log.Debugf("Mount %s at %s success", p.FSType, target)
	}
	return nil
}

// Unmount unmounts in reverse order. Every mount is attempted; the first
// failure is returned.
func (m *MountSet) Unmount() error {
	var first error
	for i := len(m.mounted) - 1; i >= 0; i-- {
		target := m.mounted[i]
		// no MNT_DETACH: a busy mount must be reported, not hidden
		if err := unix.Unmount(target, 0); err != nil {
			log.Errorf("Unmount %s error : %v", target, err)
			if first == nil {
				first = errors.Wrapf(err, "unmount %s", target)
			}
			continue
		}
		log.Debugf("Unmount %s success", target)
	}
	m.mounted = nil
	return first
}

// Mounted returns the targets currently mounted by this set.
func (m *MountSet) Mounted() []string {
	return append([]string(nil), m.mounted...)
}

// ensureDir creates path with perm, treating an existing entry as success.
func ensureDir(path string, perm os.FileMode) error {
	if err := os.Mkdir(path, perm); err != nil && !os.IsExist(err) {
		return errors.Wrapf(err, "mkdir %s", path)
	}
	return nil
}
