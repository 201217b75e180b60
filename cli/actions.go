package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/ariaclab/workcell/config"
	"github.com/ariaclab/workcell/kinematics"
	"github.com/ariaclab/workcell/logging"
	"github.com/ariaclab/workcell/motion"
	"github.com/ariaclab/workcell/motion/fake"
	"github.com/ariaclab/workcell/spatialmath"
	"github.com/ariaclab/workcell/utils"
	"github.com/ariaclab/workcell/workcell"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewLogger("workcell")
	if c.Bool(debugFlag) {
		logger.SetLevel(logging.DEBUG)
	}
	return logger
}

// loadConfig reads the --config file, or the reference cell when none is given.
func loadConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	path := c.Path(configFlag)
	if path == "" {
		logger.Debug("no config given, using the reference work cell")
		return config.ReferenceLayout()
	}
	return config.Read(c.Context, path, logger)
}

// intersectionMode returns the --mode flag if set, otherwise the config's mode.
func intersectionMode(c *cli.Context, cfg *config.Config) (spatialmath.IntersectionMode, error) {
	if c.IsSet(modeFlag) {
		return spatialmath.ParseIntersectionMode(c.String(modeFlag))
	}
	return cfg.Mode()
}

func parseFloatArgs(c *cli.Context, names ...string) ([]float64, error) {
	if c.NArg() != len(names) {
		return nil, errors.Errorf("expected %d arguments %v, got %d", len(names), names, c.NArg())
	}
	vals := make([]float64, len(names))
	for i, name := range names {
		v, err := strconv.ParseFloat(c.Args().Get(i), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", name)
		}
		vals[i] = v
	}
	return vals, nil
}

// CheckAction is the corresponding Action for 'check'.
func CheckAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	mode, err := intersectionMode(c, cfg)
	if err != nil {
		return err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	g, err := workcell.BuildGraph(layout, mode)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", layout)
	printf(c.App.Writer, "%s", g)
	if err := workcell.Check(layout, mode, logger); err != nil {
		return err
	}
	printf(c.App.Writer, "%s", color.GreenString("connected (%s)", mode))
	return nil
}

// SolveAction is the corresponding Action for 'solve'.
func SolveAction(c *cli.Context) error {
	logger := newLogger(c)
	args, err := parseFloatArgs(c, "x", "z")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	solver, err := kinematics.NewSolver(cfg.Arm)
	if err != nil {
		return err
	}
	sol, err := solver.Solve(args[0], args[1])
	if err != nil {
		return err
	}
	printf(c.App.Writer, "alpha: %.6f rad (%.3f deg)", sol.Alpha, utils.RadToDeg(sol.Alpha))
	printf(c.App.Writer, "beta:  %.6f rad (%.3f deg)", sol.Beta, utils.RadToDeg(sol.Beta))
	return nil
}

// GotoAction is the corresponding Action for 'goto'.
func GotoAction(c *cli.Context) error {
	logger := newLogger(c)
	args, err := parseFloatArgs(c, "x", "y", "z")
	if err != nil {
		return err
	}
	if !c.Bool(dryRunFlag) {
		return errors.Errorf("no arm driver is available in this build, rerun with --%s", dryRunFlag)
	}
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	mode, err := intersectionMode(c, cfg)
	if err != nil {
		return err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	solver, err := kinematics.NewSolver(cfg.Arm)
	if err != nil {
		return err
	}

	arm := fake.NewArm(logger.Sublogger("arm"))
	controller := motion.NewController(solver, arm, fake.NewGripper(0), logger)
	if err := controller.Verify(layout, mode); err != nil {
		return err
	}
	joints, err := controller.GoTo(c.Context, r3.Vector{X: args[0], Y: args[1], Z: args[2]})
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", joints)
	return nil
}

// SchemaAction is the corresponding Action for 'schema'.
func SchemaAction(c *cli.Context) error {
	var schema interface{} = config.Schema()
	if kindName := c.String(kindFlag); kindName != "" {
		kind, err := workcell.ParseKind(kindName)
		if err != nil {
			return err
		}
		schema = config.AttributeSchemas[kind]
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}

// cellVerifier rebuilds the solver and controller from every config it is handed, so arm
// geometry edits take effect on reload.
type cellVerifier struct {
	out    io.Writer
	path   string
	mode   func(*config.Config) (spatialmath.IntersectionMode, error)
	logger logging.Logger

	solver     *kinematics.Solver
	controller *motion.Controller
}

// verify checks cfg and, when the arm geometry is valid, swaps in a controller built from it.
func (v *cellVerifier) verify(cfg *config.Config) error {
	mode, err := v.mode(cfg)
	if err != nil {
		return errors.Wrap(err, "bad intersection mode")
	}
	layout, err := cfg.Layout()
	if err != nil {
		return errors.Wrap(err, "cannot build layout")
	}
	solver, err := kinematics.NewSolver(cfg.Arm)
	if err != nil {
		return err
	}
	if v.solver == nil || v.solver.Config() != cfg.Arm {
		v.logger.Infow("arm geometry loaded", "arm", cfg.Arm.String())
	}
	v.solver = solver
	v.controller = motion.NewController(solver, fake.NewArm(v.logger.Sublogger("arm")), fake.NewGripper(0), v.logger)
	if err := v.controller.Verify(layout, mode); err != nil {
		printf(v.out, "%s: %s", v.path, color.RedString("%v", err))
		return nil
	}
	printf(v.out, "%s: %s", v.path, color.GreenString("connected (%s)", mode))
	return nil
}

// WatchAction is the corresponding Action for 'watch'.
func WatchAction(c *cli.Context) error {
	logger := newLogger(c)
	path := c.Path(configFlag)
	if path == "" {
		return errors.Errorf("watch requires --%s", configFlag)
	}
	cfg, err := config.Read(c.Context, path, logger)
	if err != nil {
		return err
	}
	v := &cellVerifier{
		out:    c.App.Writer,
		path:   path,
		mode:   func(cfg *config.Config) (spatialmath.IntersectionMode, error) { return intersectionMode(c, cfg) },
		logger: logger,
	}
	if err := v.verify(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	watcher, err := config.NewWatcher(ctx, path, logger, func(cfg *config.Config) {
		if err := v.verify(cfg); err != nil {
			logger.Errorw("cannot verify reloaded config", "error", err)
		}
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return watcher.Close()
}
