// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers for the nn engine.
//
// # Overview
//
// Optimizers update parameters from the gradients accumulated by
// Sequential.Backward and clear them afterwards. Both satisfy
// runner.Optimizer.
//
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// # Basic Usage
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//	cfg := runner.DefaultConfig("mnist")
//	cfg.Optimizer = optimizer
package optim
