// Package optim implements optimization algorithms for the nn engine.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients accumulated in nn.Parameter by Backward,
// apply one step in Update, and clear the gradients afterwards.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
//	y := model.Forward(x, true)
//	model.Backward(loss.CalculateLoss(y, t, batchSize))
//	optimizer.Update()
package optim

import "github.com/born-ml/fit/internal/nn"

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Update: Apply one step from accumulated gradients, then clear them
//   - ZeroGrad: Clear gradients without stepping
//   - LR: Get the learning rate (for monitoring)
type Optimizer interface {
	// Update applies one step to every parameter and zeroes the gradients.
	Update()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// LR returns the learning rate.
	LR() float64
}

func zeroGrad(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
