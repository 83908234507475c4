package main

import (
	"math/rand"

	"github.com/born-ml/fit/internal/config"
	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/nn"
	"github.com/born-ml/fit/internal/optim"
	"github.com/born-ml/fit/internal/runner"
)

// run bundles a model with the runner and checkpoint store driving it.
type run struct {
	model  *nn.Sequential
	store  *nn.RunStatus
	runner *runner.Runner
}

// layerSizes returns the MLP widths: input, hidden..., output.
func layerSizes(cfg *config.Config, xShape, tShape []int) []int {
	sizes := []int{frame.NodeSize(xShape)}
	sizes = append(sizes, cfg.Hidden...)
	return append(sizes, frame.NodeSize(tShape))
}

// buildModel creates an MLP with ReLU between Linear layers.
func buildModel(cfg *config.Config, xShape, tShape []int) *nn.Sequential {
	//nolint:gosec // weight initialization is not security-critical
	rng := rand.New(rand.NewSource(cfg.Seed))
	sizes := layerSizes(cfg, xShape, tShape)

	model := nn.NewSequential()
	for i := 0; i+1 < len(sizes); i++ {
		if i > 0 {
			model.Add(nn.NewReLU())
		}
		model.Add(nn.NewLinear(sizes[i], sizes[i+1], rng))
	}
	model.SetInputShape(xShape)
	return model
}

func buildOptimizer(cfg *config.Config, params []*nn.Parameter) optim.Optimizer {
	if cfg.Optimizer.Kind == config.OptimizerSGD {
		return optim.NewSGD(params, optim.SGDConfig{LR: cfg.Optimizer.LR, Momentum: cfg.Optimizer.Momentum})
	}
	return optim.NewAdam(params, optim.AdamConfig{LR: cfg.Optimizer.LR})
}

func newRun(cfg *config.Config, xShape, tShape []int) (*run, error) {
	model := buildModel(cfg, xShape, tShape)
	store := nn.NewRunStatus(model)

	rc := runner.DefaultConfig(cfg.Name)
	rc.Dir = cfg.WorkDir
	rc.Loss = nn.NewSoftmaxCrossEntropy()
	rc.Metrics = nn.NewCategoricalAccuracy()
	rc.Optimizer = buildOptimizer(cfg, model.Parameters())
	rc.Checkpoint = store
	rc.MaxRunSize = cfg.MaxRunSize
	rc.PrintProgress = cfg.Progress
	rc.LogWrite = cfg.LogWrite
	rc.LogAppend = cfg.LogAppend

	r, err := runner.New(model, rc)
	if err != nil {
		return nil, err
	}
	return &run{model: model, store: store, runner: r}, nil
}

func countParams(model *nn.Sequential) int {
	var n int
	for _, p := range model.Parameters() {
		n += len(p.Data())
	}
	return n
}
