package main

import (
	"github.com/urfave/cli"

	"github.com/srstack/qsrbox/container"
)

// sandboxFlags returns the options shared by run and child. The launcher
// passes every one of them explicitly when it re-executes itself.
func sandboxFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "hostname",
			Value: container.DefaultHostname,
			Usage: "hostname inside the sandbox",
		},
		cli.StringFlag{
			Name:  "rootfs",
			Value: container.DefaultRootfsDir,
			Usage: "directory under the working directory used as the sandbox root",
		},
		cli.IntFlag{
			Name:  "pids-max",
			Value: container.DefaultPidsMax,
			Usage: "maximum number of live processes, 0 disables the limit",
		},
		cli.StringFlag{
			Name:  "cgroup-root",
			Value: container.DefaultCgroupRoot,
			Usage: "cgroup v1 mount point",
		},
	}
}

// Flags stop at the program name so its own flags reach it untouched.
var runCmd = cli.Command{
	Name:           "run",
	Usage:          "Create a sandbox with namespaces and a pids cgroup and run a command in it",
	ArgsUsage:      "<program> [args...]",
	SkipArgReorder: true,
	Flags:          sandboxFlags(),
	Action: func(context *cli.Context) error {
		return bootstrap(context, container.ModeBootstrap)
	},
}

// childCmd is reached only through the launcher's re-execution.
var childCmd = cli.Command{
	Name:           container.ChildCommand,
	Usage:          "Set up the sandbox and run the user's command in it, do not call it outside",
	ArgsUsage:      "<program> [args...]",
	Hidden:         true,
	SkipArgReorder: true,
	Flags:          sandboxFlags(),
	Action: func(context *cli.Context) error {
		return bootstrap(context, container.ModeSandboxed)
	},
}
