// Package main provides the born-fit CLI: MNIST download, training and
// evaluation driven by a YAML run configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/fit/internal/config"
	"github.com/born-ml/fit/internal/datasets"
	"github.com/born-ml/fit/internal/runner"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "version":
		fmt.Printf("born-fit %s\n", version)
	case "info":
		printInfo(os.Stdout)
	case "download":
		download(args)
	case "train":
		train(args)
	case "eval":
		eval(args)
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage(os.Stdout)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "born-fit - MNIST training runner")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  info       Show CPU features")
	fmt.Fprintln(w, "  download   Download and extract MNIST (-dir d, -mirror url)")
	fmt.Fprintln(w, "  train      Train a model (-config run.yaml)")
	fmt.Fprintln(w, "  eval       Evaluate the saved checkpoint (-config run.yaml)")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "MNIST is fetched from %s by default; if that host refuses the\n", datasets.MNISTBaseURL)
	fmt.Fprintln(w, "download, pass -mirror with another base URL. Archive digests are checked.")
}

func download(args []string) {
	flags := flag.NewFlagSet("download", flag.ExitOnError)
	dir := flags.String("dir", "data", "Directory for the MNIST files")
	mirror := flags.String("mirror", "", "Base URL of the MNIST archives (default host often refuses downloads)")
	_ = flags.Parse(args) //nolint:errcheck // ExitOnError

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := datasets.MNISTFetcher(*mirror)
	fetcher.Output = os.Stdout
	if err := fetcher.Fetch(ctx, *dir); err != nil {
		log.Fatalf("download failed: %v", err)
	}
}

// runFlags are the flags shared by train and eval.
type runFlags struct {
	fs      *flag.FlagSet
	cfgPath *string
	values  runValues
}

// runValues hold the parsed override flags.
type runValues struct {
	name     string
	dataDir  string
	workDir  string
	mirror   string
	epochs   int
	batch    int
	maxTrain int
	maxTest  int
	lr       float64
	seed     int64
}

func newRunFlags(name string) *runFlags {
	f := &runFlags{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	v := &f.values
	f.cfgPath = f.fs.String("config", "", "Path to YAML config (default: built-in MNIST MLP)")
	f.fs.StringVar(&v.name, "name", "", "Override run name")
	f.fs.StringVar(&v.dataDir, "data", "", "Override data directory")
	f.fs.StringVar(&v.workDir, "workdir", "", "Override directory for log and checkpoint")
	f.fs.StringVar(&v.mirror, "mirror", "", "Override MNIST mirror (base URL of the .gz archives)")
	f.fs.IntVar(&v.epochs, "epochs", 0, "Override number of epochs (0 evaluates only)")
	f.fs.IntVar(&v.batch, "batch", 0, "Override mini-batch size")
	f.fs.IntVar(&v.maxTrain, "max-train", 0, "Override max training samples (0 = all)")
	f.fs.IntVar(&v.maxTest, "max-test", 0, "Override max test samples (0 = all)")
	f.fs.Float64Var(&v.lr, "lr", 0, "Override learning rate")
	f.fs.Int64Var(&v.seed, "seed", 0, "Override PRNG seed")
	return f
}

// overrides returns the flags given on the command line. Flags left at their
// default are not overrides, so an explicit "-epochs 0" still applies.
func (f *runFlags) overrides() config.Overrides {
	var o config.Overrides
	v := &f.values
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			o.Name = &v.name
		case "data":
			o.DataDir = &v.dataDir
		case "workdir":
			o.WorkDir = &v.workDir
		case "mirror":
			o.Mirror = &v.mirror
		case "epochs":
			o.Epochs = &v.epochs
		case "batch":
			o.BatchSize = &v.batch
		case "max-train":
			o.MaxTrain = &v.maxTrain
		case "max-test":
			o.MaxTest = &v.maxTest
		case "lr":
			o.LR = &v.lr
		case "seed":
			o.Seed = &v.seed
		}
	})
	return o
}

func (f *runFlags) parse(args []string) *config.Config {
	_ = f.fs.Parse(args) //nolint:errcheck // ExitOnError

	cfg, err := loadConfig(*f.cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyOverrides(f.overrides())
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return cfg
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func prepareData(cfg *config.Config) *datasets.TrainData {
	if cfg.Download {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fetcher := datasets.MNISTFetcher(cfg.Mirror)
		fetcher.Output = os.Stdout
		if err := fetcher.Fetch(ctx, cfg.DataDir); err != nil {
			log.Fatalf("download failed: %v", err)
		}
	}

	td, err := datasets.LoadMNIST(cfg.DataDir, cfg.MaxTrain, cfg.MaxTest)
	if err != nil {
		log.Fatalf("failed to load MNIST: %v", err)
	}
	log.Printf("train=%d test=%d shape=%v", len(td.XTrain), len(td.XTest), td.XShape)
	return td
}

func train(args []string) {
	cfg := newRunFlags("train").parse(args)
	td := prepareData(cfg)

	run, err := newRun(cfg, td.XShape, td.TShape)
	if err != nil {
		log.Fatalf("failed to build run: %v", err)
	}
	log.Printf("model=%v optimizer=%s lr=%g params=%d",
		layerSizes(cfg, td.XShape, td.TShape), cfg.Optimizer.Kind, cfg.Optimizer.LR, countParams(run.model))

	if err := run.runner.Fit(td, fitOptions(cfg)); err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf("finished at epoch %d", run.runner.Epoch())
}

func fitOptions(cfg *config.Config) runner.FitOptions {
	return runner.FitOptions{
		Epochs:         cfg.Epochs,
		MiniBatchSize:  cfg.BatchSize,
		LoadCheckpoint: cfg.LoadCheckpoint,
		SaveCheckpoint: cfg.SaveCheckpoint,
		InitialEval:    cfg.InitialEval,
	}
}

func eval(args []string) {
	cfg := newRunFlags("eval").parse(args)
	td := prepareData(cfg)

	run, err := newRun(cfg, td.XShape, td.TShape)
	if err != nil {
		log.Fatalf("failed to build run: %v", err)
	}

	path := run.runner.CheckpointPath()
	epoch, err := run.store.Load(path, cfg.Name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Fatalf("no checkpoint at %s", path)
	case err != nil:
		log.Fatalf("failed to load checkpoint: %v", err)
	}
	log.Printf("loaded %s (epoch %d)", path, epoch)

	if _, err := run.runner.Evaluate(td, cfg.EvalBatch()); err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}
}
