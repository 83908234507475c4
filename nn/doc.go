// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the dense network engine used by the runner.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, Sigmoid
//   - Loss functions: SoftmaxCrossEntropy, MeanSquaredError
//   - Metrics: CategoricalAccuracy, MeanSquaredErrorMetrics
//   - Utilities: Sequential, Module interface, Parameter
//   - Checkpoints: RunStatus
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/fit/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//
//	    // Build a simple MLP
//	    model := nn.NewSequential(
//	        nn.NewLinear(784, 128, rng),
//	        nn.NewReLU(),
//	        nn.NewLinear(128, 10, rng),
//	    )
//	    model.SetInputShape([]int{1, 28, 28})
//	}
//
// # Layers
//
// Linear: Fully connected layer with Xavier initialization
//
// Sequential runs on frame buffers and satisfies runner.Network, so a model
// can be handed directly to runner.New. Losses and metrics satisfy
// runner.Loss and runner.Metrics; RunStatus satisfies
// runner.CheckpointStore.
package nn
