// Package cli contains the workcell command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	configFlag = "config"
	modeFlag   = "mode"
	debugFlag  = "debug"
	dryRunFlag = "dry-run"
	kindFlag   = "kind"
)

var configFlagDef = &cli.PathFlag{
	Name:    configFlag,
	Aliases: []string{"c"},
	Usage:   "load the work cell from `FILE` (defaults to the built in reference cell)",
}

var modeFlagDef = &cli.StringFlag{
	Name:  modeFlag,
	Usage: "intersection mode, permissive or geometric (overrides the config)",
}

var app = &cli.App{
	Name:            "workcell",
	Usage:           "check kitting work cell layouts and drive the kitting arm",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:   "check",
			Usage:  "print the robot table and hand-off graph, failing if the cell is disconnected",
			Flags:  []cli.Flag{configFlagDef, modeFlagDef},
			Action: CheckAction,
		},
		{
			Name:      "solve",
			Usage:     "solve shoulder lift and elbow angles for a point in the arm plane",
			ArgsUsage: "[--] <x> <z>",
			Flags:     []cli.Flag{configFlagDef},
			Action:    SolveAction,
		},
		{
			Name:      "goto",
			Usage:     "move the kitting gripper to a world position",
			ArgsUsage: "[--] <x> <y> <z>",
			Flags: []cli.Flag{
				configFlagDef,
				modeFlagDef,
				&cli.BoolFlag{
					Name:  dryRunFlag,
					Usage: "plan and execute against a simulated arm",
				},
			},
			Action: GotoAction,
		},
		{
			Name:  "schema",
			Usage: "print the JSON schema of the config file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  kindFlag,
					Usage: "print only the attribute schema of one robot type",
				},
			},
			Action: SchemaAction,
		},
		{
			Name:   "watch",
			Usage:  "recheck the cell every time the config file changes",
			Flags:  []cli.Flag{configFlagDef, modeFlagDef},
			Action: WatchAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
