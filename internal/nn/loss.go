package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// probFloor keeps log(p) finite when a softmax probability underflows.
const probFloor = 1e-12

// lossAccumulator keeps the sample-weighted running mean of a loss.
type lossAccumulator struct {
	sum     float64
	samples int
}

// Clear resets the accumulator.
func (a *lossAccumulator) Clear() {
	a.sum, a.samples = 0, 0
}

// Loss returns the mean loss per sample since the last Clear.
func (a *lossAccumulator) Loss() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *lossAccumulator) add(sum float64, n int) {
	a.sum += sum
	a.samples += n
}

// SoftmaxCrossEntropy applies softmax to the network output and computes
// cross-entropy against one-hot (or soft) targets.
//
// The per-sample loss is -Σ t·log(softmax(y)); the returned gradient is
// (softmax(y) - t) / batchSize.
type SoftmaxCrossEntropy struct {
	lossAccumulator
	Parallel parallel.Config
}

// NewSoftmaxCrossEntropy creates a cross-entropy loss.
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return &SoftmaxCrossEntropy{Parallel: parallel.DefaultConfig()}
}

// CalculateLoss accumulates the loss of y against t and returns dL/dy.
func (l *SoftmaxCrossEntropy) CalculateLoss(y, t *frame.Buffer, batchSize int) *frame.Buffer {
	checkPair("SoftmaxCrossEntropy.CalculateLoss", y, t)

	n, c := y.Len(), y.NodeSize()
	dy := frame.New(n, []int{c})
	scale := 1 / float64(batchSize)

	sum := parallel.Sum(n, l.Parallel, func(i int) float64 {
		p := make([]float64, c)
		for j, v := range y.Sample(i) {
			p[j] = float64(v)
		}
		softmax(p)

		var loss float64
		g := dy.Sample(i)
		for j, tv := range t.Sample(i) {
			target := float64(tv)
			if target != 0 {
				loss -= target * math.Log(math.Max(p[j], probFloor))
			}
			g[j] = float32((p[j] - target) * scale)
		}
		return loss
	})

	l.add(sum, n)
	return dy
}

// softmax replaces x with its numerically stable softmax.
func softmax(x []float64) {
	m := floats.Max(x)
	for i, v := range x {
		x[i] = math.Exp(v - m)
	}
	floats.Scale(1/floats.Sum(x), x)
}

// MeanSquaredError computes ½Σ(y - t)² per sample; the returned gradient is
// (y - t) / batchSize.
type MeanSquaredError struct {
	lossAccumulator
	Parallel parallel.Config
}

// NewMeanSquaredError creates a mean squared error loss.
func NewMeanSquaredError() *MeanSquaredError {
	return &MeanSquaredError{Parallel: parallel.DefaultConfig()}
}

// CalculateLoss accumulates the loss of y against t and returns dL/dy.
func (l *MeanSquaredError) CalculateLoss(y, t *frame.Buffer, batchSize int) *frame.Buffer {
	checkPair("MeanSquaredError.CalculateLoss", y, t)

	n, c := y.Len(), y.NodeSize()
	dy := frame.New(n, []int{c})
	scale := 1 / float64(batchSize)

	sum := parallel.Sum(n, l.Parallel, func(i int) float64 {
		var loss float64
		g := dy.Sample(i)
		ts := t.Sample(i)
		for j, v := range y.Sample(i) {
			d := float64(v) - float64(ts[j])
			loss += 0.5 * d * d
			g[j] = float32(d * scale)
		}
		return loss
	})

	l.add(sum, n)
	return dy
}

func checkPair(op string, y, t *frame.Buffer) {
	if y.Len() != t.Len() || y.NodeSize() != t.NodeSize() {
		panic(fmt.Sprintf("%s: output [%d x %d] does not match target [%d x %d]",
			op, y.Len(), y.NodeSize(), t.Len(), t.NodeSize()))
	}
}
