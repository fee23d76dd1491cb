package container

import (
	"github.com/pkg/errors"
)

// Mode selects which side of the re-execution a process is on.
type Mode int

const (
	// ModeBootstrap creates the namespaced process and waits for it.
	ModeBootstrap Mode = iota
	// ModeSandboxed is the re-executed process inside the new namespaces.
	ModeSandboxed
)

func (m Mode) String() string {
	switch m {
	case ModeBootstrap:
		return "bootstrap"
	case ModeSandboxed:
		return "sandboxed-entry"
	}
	return "unknown"
}

// Bootstrap validates req and runs the phase selected by mode. The returned
// code is what the calling process should exit with; a non-nil error means
// the sandbox itself failed and the caller should exit 1.
func Bootstrap(mode Mode, req *LaunchRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 1, err
	}

	switch mode {
	case ModeBootstrap:
		return Launch(req)
	case ModeSandboxed:
		return RunContainerInitProcess(req)
	}
	return 1, errors.Errorf("unknown bootstrap mode %d", int(mode))
}
