// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package datasets downloads and loads training data.
//
// # MNIST
//
//	if err := datasets.DownloadMNIST(ctx, "data"); err != nil {
//	    log.Fatal(err)
//	}
//	td, err := datasets.LoadMNIST("data", 0, 0)
//
// Downloads are idempotent: archives and extracted files already present
// are not fetched again.
package datasets

import (
	"context"

	"github.com/born-ml/fit/internal/datasets"
)

// TrainData holds the training and test splits with their sample shapes.
type TrainData = datasets.TrainData

// Archive describes one gzip archive to fetch and extract.
type Archive = datasets.Archive

// Fetcher downloads and extracts a set of archives.
type Fetcher = datasets.Fetcher

// MNIST constants.
const (
	MNISTBaseURL     = datasets.MNISTBaseURL
	MNISTClasses     = datasets.MNISTClasses
	MNISTTrainImages = datasets.MNISTTrainImages
	MNISTTrainLabels = datasets.MNISTTrainLabels
	MNISTTestImages  = datasets.MNISTTestImages
	MNISTTestLabels  = datasets.MNISTTestLabels
)

// Errors.
var (
	ErrHTTPStatus     = datasets.ErrHTTPStatus
	ErrDigestMismatch = datasets.ErrDigestMismatch
	ErrShapeMismatch  = datasets.ErrShapeMismatch
	ErrInvalidMagic   = datasets.ErrInvalidMagic
)

// MNISTFetcher returns a Fetcher for the four MNIST archives at baseURL.
// An empty baseURL selects MNISTBaseURL.
func MNISTFetcher(baseURL string) *Fetcher {
	return datasets.MNISTFetcher(baseURL)
}

// DownloadMNIST fetches and extracts MNIST into dir from MNISTBaseURL. That
// host often refuses downloads; use MNISTFetcher with a mirror instead.
func DownloadMNIST(ctx context.Context, dir string) error {
	return datasets.DownloadMNIST(ctx, dir)
}

// LoadMNIST reads the extracted MNIST files from dir. Non-zero maxTrain and
// maxTest cap the number of samples per split.
func LoadMNIST(dir string, maxTrain, maxTest int) (*TrainData, error) {
	return datasets.LoadMNIST(dir, maxTrain, maxTest)
}

// OneHot encodes class labels as one-hot vectors.
func OneHot(labels []byte, classes int) ([][]float32, error) {
	return datasets.OneHot(labels, classes)
}
