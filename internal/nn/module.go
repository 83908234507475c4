// Package nn is a small dense-network engine for the runner.
//
// This package provides:
//   - Module interface: forward/backward over row-major batches
//   - Parameter: a trainable matrix with its accumulated gradient
//   - Linear, ReLU, Sigmoid and Sequential modules
//   - Losses: SoftmaxCrossEntropy, MeanSquaredError
//   - Metrics: CategoricalAccuracy, MeanSquaredErrorMetrics
//   - RunStatus: JSON checkpoints of parameters and run state
//
// Sequential is the entry point for the runner: it converts frame buffers
// to gonum matrices, chains its modules, and converts back.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, rng),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, rng),
//	)
//	y := model.Forward(x, true)
package nn

import "gonum.org/v1/gonum/mat"

// Module is a layer operating on a batch matrix of shape [batch, features].
type Module interface {
	// Forward computes the output for x. With train set, the module keeps
	// what Backward needs.
	Forward(x *mat.Dense, train bool) *mat.Dense

	// Backward takes the gradient of the output, accumulates parameter
	// gradients, and returns the gradient of the input.
	Backward(dy *mat.Dense) *mat.Dense

	// Parameters returns the trainable parameters (nil for activations).
	Parameters() []*Parameter
}
