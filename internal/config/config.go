// Package config loads the YAML run configuration of the born-fit CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for an unrunnable configuration.
var ErrInvalid = errors.New("invalid config")

// Optimizer kinds.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Name    string `yaml:"name"`
	DataDir string `yaml:"data_dir"`
	WorkDir string `yaml:"work_dir"`

	Download bool   `yaml:"download"`
	Mirror   string `yaml:"mirror"`
	MaxTrain int    `yaml:"max_train"`
	MaxTest  int    `yaml:"max_test"`

	Epochs        int   `yaml:"epochs"`
	BatchSize     int   `yaml:"batch_size"`
	EvalBatchSize int   `yaml:"eval_batch_size"`
	MaxRunSize    int   `yaml:"max_run_size"`
	Hidden        []int `yaml:"hidden"`
	Seed          int64 `yaml:"seed"`

	Optimizer Optimizer `yaml:"optimizer"`

	Progress       bool `yaml:"progress"`
	LogWrite       bool `yaml:"log_write"`
	LogAppend      bool `yaml:"log_append"`
	LoadCheckpoint bool `yaml:"load_checkpoint"`
	SaveCheckpoint bool `yaml:"save_checkpoint"`
	InitialEval    bool `yaml:"initial_eval"`
}

// Optimizer selects and tunes the optimizer.
type Optimizer struct {
	Kind     string  `yaml:"kind"`
	LR       float64 `yaml:"lr"`
	Momentum float64 `yaml:"momentum"`
}

// Overrides captures CLI supplied values. Nil fields leave the config
// untouched, so an explicit zero (e.g. epochs 0) still applies.
type Overrides struct {
	Name      *string
	DataDir   *string
	WorkDir   *string
	Mirror    *string
	Epochs    *int
	BatchSize *int
	MaxTrain  *int
	MaxTest   *int
	LR        *float64
	Seed      *int64
}

// Default returns the configuration used when no file is given: an MNIST
// MLP with one hidden layer trained with Adam.
func Default() *Config {
	return &Config{
		Name:           "mnist",
		DataDir:        "data",
		WorkDir:        ".",
		Download:       true,
		Epochs:         1,
		BatchSize:      16,
		Hidden:         []int{128},
		Seed:           1,
		Optimizer:      Optimizer{Kind: OptimizerAdam, LR: 0.001},
		Progress:       true,
		LogWrite:       true,
		LogAppend:      true,
		LoadCheckpoint: true,
		SaveCheckpoint: true,
	}
}

// Load reads a Config from YAML on top of Default and validates it.
// Unknown keys are rejected; an empty file keeps every default.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // config path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c with every non-nil override. Values are not
// checked here; call Validate afterwards.
func (c *Config) ApplyOverrides(o Overrides) {
	set(&c.Name, o.Name)
	set(&c.DataDir, o.DataDir)
	set(&c.WorkDir, o.WorkDir)
	set(&c.Mirror, o.Mirror)
	set(&c.Epochs, o.Epochs)
	set(&c.BatchSize, o.BatchSize)
	set(&c.MaxTrain, o.MaxTrain)
	set(&c.MaxTest, o.MaxTest)
	set(&c.Optimizer.LR, o.LR)
	set(&c.Seed, o.Seed)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// EvalBatch returns the evaluation mini-batch size: EvalBatchSize, or
// BatchSize when unset.
func (c *Config) EvalBatch() int {
	if c.EvalBatchSize > 0 {
		return c.EvalBatchSize
	}
	return c.BatchSize
}

// Validate verifies the config is runnable and fills derived defaults.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalid)
	}
	if c.Name == "" || strings.ContainsAny(c.Name, `/\`) {
		return fmt.Errorf("%w: name must be a non-empty file name component (got %q)", ErrInvalid, c.Name)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must be set", ErrInvalid)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("%w: epochs must be >= 0 (got %d)", ErrInvalid, c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be > 0 (got %d)", ErrInvalid, c.BatchSize)
	}
	if c.EvalBatchSize < 0 {
		return fmt.Errorf("%w: eval_batch_size must be >= 0 (got %d)", ErrInvalid, c.EvalBatchSize)
	}
	if c.MaxRunSize < 0 || c.MaxTrain < 0 || c.MaxTest < 0 {
		return fmt.Errorf("%w: max_run_size, max_train and max_test must be >= 0", ErrInvalid)
	}
	for _, h := range c.Hidden {
		if h <= 0 {
			return fmt.Errorf("%w: hidden layer sizes must be > 0 (got %v)", ErrInvalid, c.Hidden)
		}
	}
	switch c.Optimizer.Kind {
	case OptimizerSGD, OptimizerAdam:
	default:
		return fmt.Errorf("%w: unknown optimizer %q", ErrInvalid, c.Optimizer.Kind)
	}
	if c.Optimizer.LR <= 0 {
		return fmt.Errorf("%w: optimizer.lr must be > 0 (got %g)", ErrInvalid, c.Optimizer.LR)
	}
	if c.Optimizer.Momentum < 0 || c.Optimizer.Momentum >= 1 {
		return fmt.Errorf("%w: optimizer.momentum must be in [0, 1) (got %g)", ErrInvalid, c.Optimizer.Momentum)
	}

	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	return nil
}
