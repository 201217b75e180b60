// Package config defines the structures to configure a work cell and the ways to read them.
package config

import (
	"fmt"
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ariaclab/workcell/kinematics"
	"github.com/ariaclab/workcell/spatialmath"
	"github.com/ariaclab/workcell/workcell"
)

// Defaults applied to omitted attributes.
var (
	DefaultConveyorHeight = 0.9
	DefaultColumnRange    = []float64{0.81, 2}
)

// A Config describes the configuration of a work cell: the kitting arm geometry and every robot
// in the cell.
type Config struct {
	// ConfigFilePath is the path the config was read from, if any.
	ConfigFilePath string `json:"-"`

	Arm              kinematics.ArmConfig `json:"arm"`
	IntersectionMode string               `json:"intersection_mode,omitempty" jsonschema:"enum=permissive,enum=geometric"`
	Robots           []Robot              `json:"robots"`
}

// A Robot describes one robot of the cell. Kind specific settings live in Attributes.
type Robot struct {
	Name        string                 `json:"name"`
	Type        string                 `json:"type" jsonschema:"enum=conveyor,enum=kitting,enum=agv,enum=gantry"`
	Pose        []float64              `json:"pose"`
	Orientation int                    `json:"orientation,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
}

// KittingAttributes configures a kitting arm.
type KittingAttributes struct {
	RailRange []float64 `json:"rail_range"`
	Reach     float64   `json:"reach"`
}

// ConveyorAttributes configures a conveyor belt.
type ConveyorAttributes struct {
	RailRange []float64 `json:"rail_range"`
	Height    *float64  `json:"height,omitempty"`
}

// AGVAttributes configures an AGV and the stations it drives to.
type AGVAttributes struct {
	Destinations [][]float64 `json:"destinations,omitempty"`
	ColumnRange  []float64   `json:"column_range,omitempty"`
}

// GantryAttributes configures a gantry.
type GantryAttributes struct {
	XRail []float64 `json:"x_rail"`
	YRail []float64 `json:"y_rail"`
	Reach float64   `json:"reach"`
}

// Mode returns the intersection mode the layout should be checked with.
func (c *Config) Mode() (spatialmath.IntersectionMode, error) {
	return spatialmath.ParseIntersectionMode(c.IntersectionMode)
}

// Validate returns every problem found in the config, each naming the field it concerns.
func (c *Config) Validate() error {
	var err error
	err = multierr.Append(err, c.Arm.Validate("arm"))
	if _, modeErr := c.Mode(); modeErr != nil {
		err = multierr.Append(err, errors.Wrap(modeErr, "intersection_mode"))
	}
	seen := make(map[string]int, len(c.Robots))
	for i, r := range c.Robots {
		path := fmt.Sprintf("robots.%d", i)
		if prev, ok := seen[r.Name]; ok && r.Name != "" {
			err = multierr.Append(err, errors.Errorf("%s.name %q duplicates robots.%d", path, r.Name, prev))
		}
		seen[r.Name] = i
		_, robotErr := r.build(path)
		err = multierr.Append(err, robotErr)
	}
	return err
}

// Layout builds the work cell described by the config, assigning ids in file order.
func (c *Config) Layout() (*workcell.Layout, error) {
	layout, err := workcell.NewLayout()
	if err != nil {
		return nil, err
	}
	for i, r := range c.Robots {
		robot, err := r.build(fmt.Sprintf("robots.%d", i))
		if err != nil {
			return nil, err
		}
		if err := layout.Add(robot); err != nil {
			return nil, err
		}
	}
	return layout, nil
}

// build constructs the robot, reporting errors against path.
func (r Robot) build(path string) (workcell.Robot, error) {
	var err error
	if r.Name == "" {
		err = multierr.Append(err, errors.Errorf("%s.name is required", path))
	}
	kind, kindErr := workcell.ParseKind(r.Type)
	if kindErr != nil {
		err = multierr.Append(err, errors.Wrapf(kindErr, "%s.type", path))
	}
	pose, poseErr := vectorFromSlice(path+".pose", r.Pose)
	err = multierr.Append(err, poseErr)
	if err != nil {
		return nil, err
	}

	attrPath := path + ".attributes"
	switch kind {
	case workcell.KindKitting:
		var attrs KittingAttributes
		if err := decodeAttributes(attrPath, r.Attributes, &attrs); err != nil {
			return nil, err
		}
		axis, axisErr := spatialmath.NewAxis(r.Orientation)
		rng, rngErr := intervalFromSlice(attrPath+".rail_range", attrs.RailRange)
		err = multierr.Combine(wrapPath(axisErr, path+".orientation"), rngErr, positive(attrPath+".reach", attrs.Reach))
		if err != nil {
			return nil, err
		}
		return workcell.NewKitting(r.Name, pose, axis, rng, attrs.Reach)
	case workcell.KindConveyor:
		var attrs ConveyorAttributes
		if err := decodeAttributes(attrPath, r.Attributes, &attrs); err != nil {
			return nil, err
		}
		height := DefaultConveyorHeight
		if attrs.Height != nil {
			height = *attrs.Height
		}
		axis, axisErr := spatialmath.NewAxis(r.Orientation)
		rng, rngErr := intervalFromSlice(attrPath+".rail_range", attrs.RailRange)
		err = multierr.Combine(wrapPath(axisErr, path+".orientation"), rngErr, finite(attrPath+".height", height))
		if err != nil {
			return nil, err
		}
		return workcell.NewConveyor(r.Name, pose, axis, rng, height)
	case workcell.KindAGV:
		var attrs AGVAttributes
		if err := decodeAttributes(attrPath, r.Attributes, &attrs); err != nil {
			return nil, err
		}
		if attrs.ColumnRange == nil {
			attrs.ColumnRange = DefaultColumnRange
		}
		rng, err := intervalFromSlice(attrPath+".column_range", attrs.ColumnRange)
		dests := make([]r3.Vector, 0, len(attrs.Destinations))
		for j, d := range attrs.Destinations {
			v, destErr := vectorFromSlice(fmt.Sprintf("%s.destinations.%d", attrPath, j), d)
			err = multierr.Append(err, destErr)
			dests = append(dests, v)
		}
		if err != nil {
			return nil, err
		}
		return workcell.NewAGV(r.Name, pose, dests, rng)
	case workcell.KindGantry:
		var attrs GantryAttributes
		if err := decodeAttributes(attrPath, r.Attributes, &attrs); err != nil {
			return nil, err
		}
		xs, xErr := intervalFromSlice(attrPath+".x_rail", attrs.XRail)
		ys, yErr := intervalFromSlice(attrPath+".y_rail", attrs.YRail)
		err = multierr.Combine(xErr, yErr, positive(attrPath+".reach", attrs.Reach))
		if err != nil {
			return nil, err
		}
		return workcell.NewGantry(r.Name, pose, xs, ys, attrs.Reach)
	}
	return nil, errors.Errorf("%s.type %q has no builder", path, r.Type)
}

// decodeAttributes decodes raw into the typed attributes, rejecting unknown keys.
func decodeAttributes(path string, raw map[string]interface{}, to interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      to,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return errors.Wrap(err, path)
	}
	return nil
}

func wrapPath(err error, path string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, path)
}

func finite(path string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Errorf("%s must be finite, got %v", path, v)
	}
	return nil
}

func positive(path string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return errors.Errorf("%s must be positive, got %v", path, v)
	}
	return nil
}

func vectorFromSlice(path string, vals []float64) (r3.Vector, error) {
	if len(vals) != 3 {
		return r3.Vector{}, errors.Errorf("%s must have 3 elements, got %d", path, len(vals))
	}
	var err error
	for i, v := range vals {
		err = multierr.Append(err, finite(fmt.Sprintf("%s.%d", path, i), v))
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, err
}

func intervalFromSlice(path string, vals []float64) (spatialmath.Interval, error) {
	i, err := spatialmath.IntervalFromSlice(vals)
	if err != nil {
		return spatialmath.Interval{}, errors.Wrap(err, path)
	}
	return i, nil
}
