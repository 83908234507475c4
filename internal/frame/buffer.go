// Package frame provides the batch buffer exchanged between the training
// loop and a network engine.
//
// A Buffer holds up to one mini-batch of samples ("frames") of a fixed
// per-sample shape, stored contiguously in row-major order:
//
//	data[i*NodeSize() : (i+1)*NodeSize()] is sample i
//
// Buffers are meant to be reused: Resize keeps the backing array whenever
// its capacity is large enough, so a loop that shrinks the batch for the
// final partial chunk does not reallocate.
package frame

import (
	"errors"
	"fmt"
)

// ErrSampleSize is returned by SetData when a sample does not match the
// buffer's node size.
var ErrSampleSize = errors.New("sample size does not match buffer shape")

// Buffer is a resizable container for a mini-batch of samples.
type Buffer struct {
	size     int
	shape    []int
	nodeSize int
	data     []float32
}

// NodeSize returns the number of values in one sample of the given shape.
//
// An empty shape describes a scalar sample (node size 1).
func NodeSize(shape []int) int {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	return n
}

// New creates a zeroed buffer of size samples with the given shape.
func New(size int, shape []int) *Buffer {
	b := &Buffer{}
	b.Resize(size, shape)
	return b
}

// Resize sets the number of samples and the per-sample shape.
//
// The backing array is reused when it can hold size*NodeSize(shape) values.
// Contents after a resize are unspecified until SetData or direct writes.
func (b *Buffer) Resize(size int, shape []int) {
	if size < 0 {
		panic(fmt.Sprintf("frame.Resize: negative size %d", size))
	}
	for _, dim := range shape {
		if dim <= 0 {
			panic(fmt.Sprintf("frame.Resize: invalid shape %v", shape))
		}
	}

	b.size = size
	b.shape = append(b.shape[:0], shape...)
	b.nodeSize = NodeSize(shape)

	n := size * b.nodeSize
	if cap(b.data) >= n {
		b.data = b.data[:n]
		return
	}
	b.data = make([]float32, n)
}

// SetData copies samples into the buffer.
//
// len(samples) must equal Len() and every sample must hold NodeSize() values.
func (b *Buffer) SetData(samples [][]float32) error {
	if len(samples) != b.size {
		return fmt.Errorf("frame: got %d samples for buffer of %d", len(samples), b.size)
	}
	for i, s := range samples {
		if len(s) != b.nodeSize {
			return fmt.Errorf("frame: sample %d has %d values, want %d: %w", i, len(s), b.nodeSize, ErrSampleSize)
		}
		copy(b.data[i*b.nodeSize:], s)
	}
	return nil
}

// Len returns the number of samples in the buffer.
func (b *Buffer) Len() int {
	return b.size
}

// Shape returns the per-sample shape. The returned slice must not be modified.
func (b *Buffer) Shape() []int {
	return b.shape
}

// NodeSize returns the number of values per sample.
func (b *Buffer) NodeSize() int {
	return b.nodeSize
}

// Data returns the contiguous backing storage of Len()*NodeSize() values.
func (b *Buffer) Data() []float32 {
	return b.data
}

// Sample returns a view of sample i.
func (b *Buffer) Sample(i int) []float32 {
	return b.data[i*b.nodeSize : (i+1)*b.nodeSize]
}
