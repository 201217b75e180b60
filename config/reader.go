package config

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"github.com/ariaclab/workcell/kinematics"
	"github.com/ariaclab/workcell/logging"
	"github.com/ariaclab/workcell/workcell"
)

//go:embed data/reference.json
var referenceJSON []byte

// AttributeSchemas holds the JSON schema of the attributes of each robot kind.
var AttributeSchemas = map[workcell.Kind]*jsonschema.Schema{
	workcell.KindKitting:  jsonschema.Reflect(&KittingAttributes{}),
	workcell.KindConveyor: jsonschema.Reflect(&ConveyorAttributes{}),
	workcell.KindAGV:      jsonschema.Reflect(&AGVAttributes{}),
	workcell.KindGantry:   jsonschema.Reflect(&GantryAttributes{}),
}

// Schema returns the JSON schema of a config file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// Read reads a config from the given file, substituting ${VAR} references from the environment.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := fromReader(originalPath, r)
	if err != nil {
		return nil, err
	}
	logger.Debugw("read config", "path", originalPath, "robots", len(cfg.Robots), "mode", cfg.IntersectionMode)
	return cfg, nil
}

func fromReader(originalPath string, r io.Reader) (*Config, error) {
	// unset arm fields keep the defaults
	cfg := &Config{
		ConfigFilePath: originalPath,
		Arm:            kinematics.DefaultArmConfig(),
	}
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", originalPath)
	}
	return cfg, nil
}

// ReferenceLayout returns the demonstration work cell: one kitting arm fed by a conveyor and
// unloading onto an AGV.
func ReferenceLayout() (*Config, error) {
	return fromReader("reference.json", bytes.NewReader(referenceJSON))
}
