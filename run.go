package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/srstack/qsrbox/container"
)

func launchRequest(context *cli.Context) *container.LaunchRequest {
	return &container.LaunchRequest{
		Command:    []string(context.Args()),
		Hostname:   context.String("hostname"),
		RootfsDir:  context.String("rootfs"),
		PidsMax:    context.Int("pids-max"),
		CgroupRoot: context.String("cgroup-root"),
		Debug:      context.GlobalBool("debug"),
		LogJSON:    context.GlobalBool("log-json"),
	}
}

// bootstrap runs one phase and turns its outcome into the process exit status:
// the user program's code as an ExitCoder, usage errors as exit 1, and any
// other failure as a plain error for main to report.
func bootstrap(context *cli.Context, mode container.Mode) error {
	code, err := container.Bootstrap(mode, launchRequest(context))
	if err != nil {
		if errors.Cause(err) == container.ErrNoCommand {
			return cli.NewExitError(err.Error(), 1)
		}
		return err
	}
	if code != 0 {
		return cli.NewExitError("", code)
	}
	return nil
}
