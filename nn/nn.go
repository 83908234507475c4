// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/fit/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// Module interface defines the common interface for all network modules.
type Module = nn.Module

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and value.
func NewParameter(name string, value *mat.Dense) *Parameter {
	return nn.NewParameter(name, value)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	layer := nn.NewLinear(784, 128, rng)
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, rng)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Sigmoid represents the logistic activation function.
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return nn.NewSigmoid()
}

// Containers

// Sequential chains modules and runs them on frame buffers.
type Sequential = nn.Sequential

// NewSequential creates a Sequential container from modules.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Loss functions

// SoftmaxCrossEntropy is softmax followed by cross-entropy.
type SoftmaxCrossEntropy = nn.SoftmaxCrossEntropy

// NewSoftmaxCrossEntropy creates a cross-entropy loss.
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return nn.NewSoftmaxCrossEntropy()
}

// MeanSquaredError is the halved squared error loss.
type MeanSquaredError = nn.MeanSquaredError

// NewMeanSquaredError creates a mean squared error loss.
func NewMeanSquaredError() *MeanSquaredError {
	return nn.NewMeanSquaredError()
}

// Metrics

// CategoricalAccuracy is the argmax match ratio ("accuracy").
type CategoricalAccuracy = nn.CategoricalAccuracy

// NewCategoricalAccuracy creates an accuracy metric.
func NewCategoricalAccuracy() *CategoricalAccuracy {
	return nn.NewCategoricalAccuracy()
}

// MeanSquaredErrorMetrics is the mean squared error metric ("mse").
type MeanSquaredErrorMetrics = nn.MeanSquaredErrorMetrics

// NewMeanSquaredErrorMetrics creates an MSE metric.
func NewMeanSquaredErrorMetrics() *MeanSquaredErrorMetrics {
	return nn.NewMeanSquaredErrorMetrics()
}

// Checkpoints

// RunStatus stores a model's parameters with the run name and epoch.
type RunStatus = nn.RunStatus

// NewRunStatus creates a JSON checkpoint store bound to model.
//
// Example:
//
//	store := nn.NewRunStatus(model)
//	cfg := runner.DefaultConfig("mnist")
//	cfg.Checkpoint = store
func NewRunStatus(model *Sequential) *RunStatus {
	return nn.NewRunStatus(model)
}

// Errors returned by RunStatus and Sequential.LoadStateDict.
var (
	ErrNameMismatch     = nn.ErrNameMismatch
	ErrShapeMismatch    = nn.ErrShapeMismatch
	ErrMissingParameter = nn.ErrMissingParameter
)
