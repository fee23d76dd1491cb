package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const usage = `qsrbox runs a command inside a fresh UTS, PID and mount namespace sandbox.`

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	qsrbox := cli.NewApp()
	qsrbox.Name = "qsrbox"
	qsrbox.UsageText = "qsrbox [global options] run [options] <program> [args...]"
	qsrbox.Usage = usage
	qsrbox.Version = "1.0.0"

	qsrbox.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		cli.BoolFlag{
			Name:  "log-json",
			Usage: "log as JSON",
		},
	}

	qsrbox.Commands = []cli.Command{
		runCmd,
		childCmd,
	}

	// Logs go to stderr; stdout belongs to the sandboxed program.
	qsrbox.Before = func(context *cli.Context) error {
		if context.Bool("log-json") {
			log.SetFormatter(&log.JSONFormatter{})
		} else {
			log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
		}
		log.SetOutput(os.Stderr)

		log.SetLevel(log.InfoLevel)
		if context.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	qsrbox.Action = func(context *cli.Context) error {
		if !context.Args().Present() {
			cli.ShowAppHelp(context)
			return cli.NewExitError("missing command", 1)
		}
		return cli.NewExitError(fmt.Sprintf("Unknown command: %s", context.Args().First()), 1)
	}

	return qsrbox
}
