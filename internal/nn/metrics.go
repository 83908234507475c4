package nn

import (
	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/parallel"
)

// CategoricalAccuracy is the fraction of samples whose output argmax matches
// the target argmax.
type CategoricalAccuracy struct {
	Parallel parallel.Config

	correct float64
	samples int
}

// NewCategoricalAccuracy creates an accuracy metric.
func NewCategoricalAccuracy() *CategoricalAccuracy {
	return &CategoricalAccuracy{Parallel: parallel.DefaultConfig()}
}

// Clear resets the counters.
func (m *CategoricalAccuracy) Clear() {
	m.correct, m.samples = 0, 0
}

// CalculateMetrics counts the matches in y against t.
func (m *CategoricalAccuracy) CalculateMetrics(y, t *frame.Buffer) {
	checkPair("CategoricalAccuracy.CalculateMetrics", y, t)

	m.correct += parallel.Sum(y.Len(), m.Parallel, func(i int) float64 {
		if argmax(y.Sample(i)) == argmax(t.Sample(i)) {
			return 1
		}
		return 0
	})
	m.samples += y.Len()
}

// Metrics returns the accuracy in [0, 1].
func (m *CategoricalAccuracy) Metrics() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.correct / float64(m.samples)
}

// MetricsName returns "accuracy".
func (m *CategoricalAccuracy) MetricsName() string {
	return "accuracy"
}

// MeanSquaredErrorMetrics is the mean of (y - t)² over all elements.
type MeanSquaredErrorMetrics struct {
	Parallel parallel.Config

	sum      float64
	elements int
}

// NewMeanSquaredErrorMetrics creates an MSE metric.
func NewMeanSquaredErrorMetrics() *MeanSquaredErrorMetrics {
	return &MeanSquaredErrorMetrics{Parallel: parallel.DefaultConfig()}
}

// Clear resets the accumulator.
func (m *MeanSquaredErrorMetrics) Clear() {
	m.sum, m.elements = 0, 0
}

// CalculateMetrics accumulates squared errors of y against t.
func (m *MeanSquaredErrorMetrics) CalculateMetrics(y, t *frame.Buffer) {
	checkPair("MeanSquaredErrorMetrics.CalculateMetrics", y, t)

	m.sum += parallel.Sum(y.Len(), m.Parallel, func(i int) float64 {
		var s float64
		ts := t.Sample(i)
		for j, v := range y.Sample(i) {
			d := float64(v) - float64(ts[j])
			s += d * d
		}
		return s
	})
	m.elements += y.Len() * y.NodeSize()
}

// Metrics returns the mean squared error.
func (m *MeanSquaredErrorMetrics) Metrics() float64 {
	if m.elements == 0 {
		return 0
	}
	return m.sum / float64(m.elements)
}

// MetricsName returns "mse".
func (m *MeanSquaredErrorMetrics) MetricsName() string {
	return "mse"
}

func argmax(v []float32) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
