// Package runner drives a network engine through mini-batch training and
// evaluation passes.
//
// This package provides:
//   - Collaborator interfaces: Network, Loss, Metrics, Optimizer, CheckpointStore
//   - Calculate: one pass over a dataset in fixed-size chunks
//   - Runner: multi-epoch training with checkpointing and a text log
//
// The engine itself (tensor math, gradients, parameter storage) is opaque:
// the runner only sequences forward, loss, metrics, backward and update
// calls and reports progress.
//
// Example:
//
//	cfg := runner.DefaultConfig("mnist-mlp")
//	cfg.Loss = nn.NewSoftmaxCrossEntropy()
//	cfg.Metrics = nn.NewCategoricalAccuracy()
//	cfg.Optimizer = optim.NewAdam(model.Parameters(), optim.AdamConfig{})
//	cfg.Checkpoint = nn.NewRunStatus(model)
//
//	r, err := runner.New(model, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = r.Fit(td, runner.FitOptions{Epochs: 3, MiniBatchSize: 32, SaveCheckpoint: true})
package runner
