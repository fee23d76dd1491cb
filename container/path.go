package container

import (
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrPathTooLong is returned when the sandbox root would exceed PATH_MAX.
var ErrPathTooLong = errors.New("sandbox root path too long")

// SandboxRoot composes the absolute path of the sandbox root from the working
// directory and the rootfs directory name. name must be a single path element.
func SandboxRoot(cwd, name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", errors.Errorf("invalid rootfs directory name %q", name)
	}
	if !filepath.IsAbs(cwd) {
		return "", errors.Errorf("working directory %q is not absolute", cwd)
	}

	root := filepath.Join(cwd, name)
	// PathMax counts the terminating NUL.
	if len(root) >= unix.PathMax {
		return "", errors.Wrapf(ErrPathTooLong, "%d bytes", len(root))
	}
	return root, nil
}
