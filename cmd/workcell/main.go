// Package main is the workcell command itself.
package main

import (
	"os"

	"github.com/ariaclab/workcell/cli"
	"github.com/ariaclab/workcell/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		//nolint:errcheck
		logging.Global().Sync()
		os.Exit(1)
	}
}
