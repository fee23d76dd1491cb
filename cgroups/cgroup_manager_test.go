package cgroups

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srstack/qsrbox/cgroups/subsystems"
)

// fakeHierarchy lays out a pids hierarchy under a temp root. When files is
// set, the subgroup and its control files exist as the kernel would create them.
func fakeHierarchy(t *testing.T, files bool) (root, group string) {
	t.Helper()
	root = t.TempDir()
	group = filepath.Join(root, "pids", "sandbox")
	if !files {
		if err := os.Mkdir(filepath.Join(root, "pids"), 0755); err != nil {
			t.Fatal(err)
		}
		return root, group
	}
	if err := os.MkdirAll(group, 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"pids.max", "notify_on_release", "cgroup.procs"} {
		if err := os.WriteFile(filepath.Join(group, f), []byte("max\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root, group
}

func readTrim(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(string(b))
}

func TestCgroupManagerUnavailable(t *testing.T) {
	root := t.TempDir()
	m := NewCgroupManager(root, "sandbox", &subsystems.ResourceConfig{PidsMax: "5"})
	m.Init()
	m.Set()
	m.Apply(1234)

	if m.Enabled() {
		t.Fatal("manager enabled without any hierarchy")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cgroup root modified: %v", entries)
	}
}

func TestCgroupManagerLimitsAndJoins(t *testing.T) {
	root, group := fakeHierarchy(t, true)

	m := NewCgroupManager(root, "sandbox", &subsystems.ResourceConfig{PidsMax: "5"})
	m.Init()
	if !m.Enabled() {
		t.Fatal("manager not enabled")
	}
	m.Set()
	m.Apply(1234)

	if got := readTrim(t, filepath.Join(group, "pids.max")); got != "5" {
		t.Errorf("pids.max = %q, want 5", got)
	}
	if got := readTrim(t, filepath.Join(group, "notify_on_release")); got != "1" {
		t.Errorf("notify_on_release = %q, want 1", got)
	}
	if got := readTrim(t, filepath.Join(group, "cgroup.procs")); got != "1234" {
		t.Errorf("cgroup.procs = %q, want 1234", got)
	}
}

func TestCgroupManagerInitIdempotent(t *testing.T) {
	root, group := fakeHierarchy(t, false)

	for i := 0; i < 2; i++ {
		m := NewCgroupManager(root, "sandbox", nil)
		m.Init()
		if !m.Enabled() {
			t.Fatalf("Init call %d did not enable the manager", i+1)
		}
	}
	if info, err := os.Stat(group); err != nil || !info.IsDir() {
		t.Fatalf("subgroup not created: %v", err)
	}
}

func TestCgroupManagerToleratesWriteFailures(t *testing.T) {
	// The subgroup directory exists but has no control files, so every write fails.
	root, group := fakeHierarchy(t, false)

	m := NewCgroupManager(root, "sandbox", &subsystems.ResourceConfig{PidsMax: "5"})
	m.Init()
	m.Set()
	m.Apply(1234)

	for _, f := range []string{"pids.max", "notify_on_release", "cgroup.procs"} {
		if _, err := os.Stat(filepath.Join(group, f)); !os.IsNotExist(err) {
			t.Errorf("%s was created by the manager: %v", f, err)
		}
	}
}
