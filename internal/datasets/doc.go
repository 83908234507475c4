// Package datasets downloads and loads the datasets used by the runner.
//
// It provides:
//   - Fetcher: idempotent download + gunzip of a fixed set of archives
//   - MNIST: archive table, digests and an IDX loader producing TrainData
//   - TrainData: a train/test split with per-sample shapes
//
// Example:
//
//	if err := datasets.DownloadMNIST(ctx, "./data"); err != nil {
//	    log.Fatal(err)
//	}
//	td, err := datasets.LoadMNIST("./data", 0, 0)
package datasets
