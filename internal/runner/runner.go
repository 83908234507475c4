package runner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/born-ml/fit/internal/datasets"
	"github.com/born-ml/fit/internal/progress"
)

// DefaultMiniBatchSize is used when FitOptions or Evaluate leave the
// mini-batch size at zero.
const DefaultMiniBatchSize = 16

// Config enumerates every Runner option.
type Config struct {
	Name string // Run name; prefixes the log and checkpoint files

	Loss       Loss            // Required by Fit
	Metrics    Metrics         // Optional; omitted from summary lines when nil
	Optimizer  Optimizer       // Required by Fit
	Checkpoint CheckpointStore // Required when Fit loads or saves a checkpoint

	Dir        string // Directory holding {name}_log.txt and {name}_net.json (default: ".")
	MaxRunSize int    // Samples processed per pass (0 = all)

	PrintProgress        bool // Show a progress display per pass
	PrintProgressLoss    bool // Include the loss in the progress display
	PrintProgressMetrics bool // Include the metrics in the progress display

	LogWrite  bool // Append one line per epoch to {name}_log.txt
	LogAppend bool // Keep existing log content (false truncates at Fit start)

	Output   io.Writer        // Console output (default: os.Stdout)
	Progress progress.Factory // Progress display (default: bar on os.Stderr)
}

// DefaultConfig returns a Config with progress display and logging enabled.
func DefaultConfig(name string) Config {
	return Config{
		Name:                 name,
		PrintProgress:        true,
		PrintProgressLoss:    true,
		PrintProgressMetrics: true,
		LogWrite:             true,
		LogAppend:            true,
	}
}

// FitOptions configures one Fit call.
type FitOptions struct {
	Epochs         int  // Number of training epochs
	MiniBatchSize  int  // Samples per chunk (default: 16)
	LoadCheckpoint bool // Restore {name}_net.json before training
	SaveCheckpoint bool // Write {name}_net.json after every training pass
	InitialEval    bool // Evaluate the test split once before the first epoch
}

// Runner trains and evaluates a network over a TrainData split.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	net      Network
	cfg      Config
	out      io.Writer
	progress progress.Factory
	epoch    int
}

// New creates a Runner for net.
//
// Returns ErrMissingCollaborator for a nil network and ErrInvalidConfig for
// a run name containing path separators or a negative MaxRunSize.
func New(net Network, cfg Config) (*Runner, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: network is nil", ErrMissingCollaborator)
	}
	if strings.ContainsAny(cfg.Name, `/\`) {
		return nil, fmt.Errorf("%w: name %q contains a path separator", ErrInvalidConfig, cfg.Name)
	}
	if cfg.MaxRunSize < 0 {
		return nil, fmt.Errorf("%w: max run size must be >= 0 (got %d)", ErrInvalidConfig, cfg.MaxRunSize)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	factory := progress.Nop()
	if cfg.PrintProgress {
		factory = cfg.Progress
		if factory == nil {
			factory = progress.Bar(os.Stderr, false)
		}
	}

	return &Runner{
		net:      net,
		cfg:      cfg,
		out:      out,
		progress: factory,
	}, nil
}

// Name returns the run name.
func (r *Runner) Name() string {
	return r.cfg.Name
}

// Epoch returns the number of completed epochs, including any restored from
// a checkpoint.
func (r *Runner) Epoch() int {
	return r.epoch
}

// LogPath returns the path of the per-epoch log file.
func (r *Runner) LogPath() string {
	return filepath.Join(r.cfg.Dir, r.cfg.Name+"_log.txt")
}

// CheckpointPath returns the path of the checkpoint file.
func (r *Runner) CheckpointPath() string {
	return filepath.Join(r.cfg.Dir, r.cfg.Name+"_net.json")
}

// Fit trains the network for opts.Epochs epochs.
//
// Sequence:
//  1. open {name}_log.txt (when LogWrite), closed on every return path
//  2. optionally load the checkpoint; failures are reported, not fatal
//  3. optionally evaluate the test split and print an "[initial]" line,
//     which is not logged
//  4. per epoch: train pass, optional checkpoint save (failures reported,
//     not fatal), evaluation pass, then print and log
//     "epoch={n} {metrics}={value} loss={value}"
//
// Configuration problems are returned before any file is opened.
func (r *Runner) Fit(td *datasets.TrainData, opts FitOptions) (err error) {
	if opts.MiniBatchSize == 0 {
		opts.MiniBatchSize = DefaultMiniBatchSize
	}
	if err := r.checkFit(td, opts); err != nil {
		return err
	}

	logw := io.Discard
	if r.cfg.LogWrite {
		f, openErr := r.openLog()
		if openErr != nil {
			return openErr
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close log: %w", closeErr)
			}
		}()
		logw = f
	}

	if opts.LoadCheckpoint {
		r.loadCheckpoint()
	}

	if opts.InitialEval {
		res, err := r.pass(td, false, opts.MiniBatchSize, 1, "initial")
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "[initial] %s\n", r.summary(res))
	}

	for i := 0; i < opts.Epochs; i++ {
		r.epoch++

		if _, err := r.pass(td, true, opts.MiniBatchSize, opts.MiniBatchSize, fmt.Sprintf("epoch %d", r.epoch)); err != nil {
			return err
		}

		if opts.SaveCheckpoint {
			r.saveCheckpoint()
		}

		res, err := r.pass(td, false, opts.MiniBatchSize, 1, "eval")
		if err != nil {
			return err
		}

		line := fmt.Sprintf("epoch=%d %s", r.epoch, r.summary(res))
		fmt.Fprintln(r.out, line)
		if _, err := fmt.Fprintln(logw, line); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
	}

	return nil
}

// Evaluate runs one evaluation pass over the test split and prints a
// summary line. It never runs backward or update, writes no log and touches
// no checkpoint.
func (r *Runner) Evaluate(td *datasets.TrainData, miniBatchSize int) (Result, error) {
	if miniBatchSize == 0 {
		miniBatchSize = DefaultMiniBatchSize
	}
	if td == nil {
		return Result{}, fmt.Errorf("%w: dataset is nil", ErrInvalidConfig)
	}
	if r.cfg.Loss == nil && r.cfg.Metrics == nil {
		return Result{}, fmt.Errorf("%w: evaluation needs a loss or metrics", ErrMissingCollaborator)
	}

	res, err := r.pass(td, false, miniBatchSize, 1, "eval")
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintln(r.out, r.summary(res))
	return res, nil
}

func (r *Runner) checkFit(td *datasets.TrainData, opts FitOptions) error {
	switch {
	case td == nil:
		return fmt.Errorf("%w: dataset is nil", ErrInvalidConfig)
	case opts.Epochs < 0:
		return fmt.Errorf("%w: epochs must be >= 0 (got %d)", ErrInvalidConfig, opts.Epochs)
	case opts.MiniBatchSize < 0:
		return fmt.Errorf("%w: mini batch size must be > 0 (got %d)", ErrInvalidConfig, opts.MiniBatchSize)
	case r.cfg.Loss == nil:
		return fmt.Errorf("%w: training needs a loss", ErrMissingCollaborator)
	case r.cfg.Optimizer == nil:
		return fmt.Errorf("%w: training needs an optimizer", ErrMissingCollaborator)
	case (opts.LoadCheckpoint || opts.SaveCheckpoint) && r.cfg.Checkpoint == nil:
		return fmt.Errorf("%w: checkpoint requested without a checkpoint store", ErrMissingCollaborator)
	}
	return td.Validate()
}

func (r *Runner) openLog() (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if !r.cfg.LogAppend {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(r.LogPath(), flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func (r *Runner) loadCheckpoint() {
	path := r.CheckpointPath()
	epoch, err := r.cfg.Checkpoint.Load(path, r.cfg.Name)
	switch {
	case err == nil:
		r.epoch = epoch
		fmt.Fprintf(r.out, "[load] %s\n", path)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(r.out, "[file not found] %s\n", path)
	default:
		fmt.Fprintf(r.out, "[load error] %s: %v\n", path, err)
	}
}

func (r *Runner) saveCheckpoint() {
	path := r.CheckpointPath()
	if err := r.cfg.Checkpoint.Save(path, r.cfg.Name, r.epoch); err != nil {
		fmt.Fprintf(r.out, "[write error] %s: %v\n", path, err)
	}
}

// pass runs Calculate over the train or test split, capped at MaxRunSize.
func (r *Runner) pass(td *datasets.TrainData, train bool, batch, minBatch int, desc string) (Result, error) {
	x, t := td.XTest, td.TTest
	if train {
		x, t = td.XTrain, td.TTrain
	}
	if n := r.cfg.MaxRunSize; n > 0 && len(x) > n {
		x, t = x[:n], t[:min(n, len(t))]
	}

	opts := CalcOptions{
		MaxBatchSize: batch,
		MinBatchSize: minBatch,
		Metrics:      r.cfg.Metrics,
		Loss:         r.cfg.Loss,
		Train:        train,
		QuietLoss:    !r.cfg.PrintProgressLoss,
		QuietMetrics: !r.cfg.PrintProgressMetrics,
		Progress:     r.progress,
		Description:  desc,
	}
	if train {
		opts.Optimizer = r.cfg.Optimizer
	}

	return Calculate(r.net, x, td.XShape, t, td.TShape, opts)
}

// summary formats "{metrics}={value} loss={value}" for the configured
// accumulators.
func (r *Runner) summary(res Result) string {
	var parts []string
	if r.cfg.Metrics != nil {
		parts = append(parts, fmt.Sprintf("%s=%f", res.MetricsName, res.Metrics))
	}
	if r.cfg.Loss != nil {
		parts = append(parts, fmt.Sprintf("loss=%f", res.Loss))
	}
	return strings.Join(parts, " ")
}
