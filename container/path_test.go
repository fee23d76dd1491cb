package container

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func TestSandboxRoot(t *testing.T) {
	root, err := SandboxRoot("/home/user/work", "ubuntu-rootfs")
	if err != nil {
		t.Fatalf("SandboxRoot: %v", err)
	}
	if root != "/home/user/work/ubuntu-rootfs" {
		t.Errorf("SandboxRoot = %q", root)
	}

	root, err = SandboxRoot("/", DefaultRootfsDir)
	if err != nil {
		t.Fatalf("SandboxRoot(/): %v", err)
	}
	if root != "/ubuntu-rootfs" {
		t.Errorf("SandboxRoot(/) = %q", root)
	}
}

func TestSandboxRootInvalidName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b", "/abs"} {
		if _, err := SandboxRoot("/work", name); err == nil {
			t.Errorf("SandboxRoot(%q) succeeded, want error", name)
		}
	}
}

func TestSandboxRootRelativeCwd(t *testing.T) {
	if _, err := SandboxRoot("work", "rootfs"); err == nil {
		t.Error("SandboxRoot with relative cwd succeeded, want error")
	}
}

func TestSandboxRootTooLong(t *testing.T) {
	cwd := "/" + strings.Repeat("a", unix.PathMax)
	_, err := SandboxRoot(cwd, "rootfs")
	if errors.Cause(err) != ErrPathTooLong {
		t.Fatalf("SandboxRoot error = %v, want ErrPathTooLong", err)
	}

	// One byte short of PATH_MAX leaves room for the NUL and must pass.
	name := "r"
	cwd = "/" + strings.Repeat("a", unix.PathMax-len(name)-3)
	root, err := SandboxRoot(cwd, name)
	if err != nil {
		t.Fatalf("SandboxRoot at limit: %v", err)
	}
	if len(root) != unix.PathMax-1 {
		t.Errorf("len(root) = %d, want %d", len(root), unix.PathMax-1)
	}
}
