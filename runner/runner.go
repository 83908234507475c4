// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package runner trains and evaluates a network over a dataset.
//
// # Overview
//
// Calculate runs one chunked pass (forward, loss, metrics, backward,
// update). Runner sequences passes into epochs, keeps the epoch counter,
// appends one line per epoch to "{name}_log.txt" and stores checkpoints in
// "{name}_net.json".
//
// # Basic Usage
//
//	cfg := runner.DefaultConfig("mnist")
//	cfg.Loss = nn.NewSoftmaxCrossEntropy()
//	cfg.Metrics = nn.NewCategoricalAccuracy()
//	cfg.Optimizer = optim.NewAdam(model.Parameters(), optim.AdamConfig{})
//	cfg.Checkpoint = nn.NewRunStatus(model)
//
//	r, err := runner.New(model, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = r.Fit(td, runner.FitOptions{Epochs: 10, LoadCheckpoint: true, SaveCheckpoint: true})
package runner

import (
	"github.com/born-ml/fit/internal/runner"
)

// Collaborators

// Network is the engine being trained.
type Network = runner.Network

// Loss accumulates a loss value over the chunks of a pass.
type Loss = runner.Loss

// Metrics accumulates an evaluation metric over the chunks of a pass.
type Metrics = runner.Metrics

// Optimizer applies one parameter update from accumulated gradients.
type Optimizer = runner.Optimizer

// CheckpointStore persists network parameters together with the run state.
type CheckpointStore = runner.CheckpointStore

// Batch loop

// Chunk is one contiguous slice of a dataset.
type Chunk = runner.Chunk

// CalcOptions configures one pass of Calculate.
type CalcOptions = runner.CalcOptions

// Result is the outcome of one pass.
type Result = runner.Result

// Chunks partitions n samples into consecutive chunks of at most
// maxChunkSize samples.
func Chunks(n, maxChunkSize int) []Chunk {
	return runner.Chunks(n, maxChunkSize)
}

// Calculate runs one chunked pass of net over (x, t).
func Calculate(net Network, x [][]float32, xShape []int, t [][]float32, tShape []int, opts CalcOptions) (Result, error) {
	return runner.Calculate(net, x, xShape, t, tShape, opts)
}

// Runner

// Runner trains and evaluates one named run.
type Runner = runner.Runner

// Config configures a Runner.
type Config = runner.Config

// FitOptions configures one Fit call.
type FitOptions = runner.FitOptions

// DefaultMiniBatchSize is used by Fit when FitOptions.MiniBatchSize is zero.
const DefaultMiniBatchSize = runner.DefaultMiniBatchSize

// Errors.
var (
	ErrInvalidConfig       = runner.ErrInvalidConfig
	ErrMissingCollaborator = runner.ErrMissingCollaborator
	ErrShapeMismatch       = runner.ErrShapeMismatch
)

// DefaultConfig returns a Config with progress bars and an appended log.
func DefaultConfig(name string) Config {
	return runner.DefaultConfig(name)
}

// New creates a Runner for net.
func New(net Network, cfg Config) (*Runner, error) {
	return runner.New(net, cfg)
}
