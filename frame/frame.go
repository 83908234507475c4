// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package frame provides the fixed-shape sample batches exchanged between
// the runner and a network.
package frame

import "github.com/born-ml/fit/internal/frame"

// Buffer is a batch of equally shaped samples in contiguous storage.
type Buffer = frame.Buffer

// ErrSampleSize is returned by Buffer.SetData for a wrongly sized sample.
var ErrSampleSize = frame.ErrSampleSize

// New creates a zeroed buffer of size samples with the given shape.
func New(size int, shape []int) *Buffer {
	return frame.New(size, shape)
}

// NodeSize returns the number of values in one sample of the given shape.
func NodeSize(shape []int) int {
	return frame.NodeSize(shape)
}
