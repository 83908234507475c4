package nn_test

import (
	"testing"

	"github.com/born-ml/fit/internal/nn"
	"github.com/born-ml/fit/internal/parallel"
	"github.com/stretchr/testify/assert"
)

func TestCategoricalAccuracy(t *testing.T) {
	m := nn.NewCategoricalAccuracy()
	assert.Equal(t, "accuracy", m.MetricsName())
	assert.Zero(t, m.Metrics())

	m.CalculateMetrics(
		buffer(t, []int{2}, []float32{0.1, 0.9}, []float32{0.8, 0.2}, []float32{0.3, 0.7}),
		buffer(t, []int{2}, []float32{0, 1}, []float32{0, 1}, []float32{0, 1}),
	)
	assert.InDelta(t, 2.0/3.0, m.Metrics(), 1e-12)

	m.CalculateMetrics(
		buffer(t, []int{2}, []float32{0.4, 0.6}),
		buffer(t, []int{2}, []float32{0, 1}),
	)
	assert.InDelta(t, 0.75, m.Metrics(), 1e-12)

	m.Clear()
	assert.Zero(t, m.Metrics())
}

func TestCategoricalAccuracy_Parallel(t *testing.T) {
	m := nn.NewCategoricalAccuracy()
	m.Parallel = parallel.Config{Workers: 3, MinRows: 1}

	y := make([][]float32, 10)
	target := make([][]float32, 10)
	for i := range y {
		y[i] = []float32{1, 0}
		target[i] = []float32{float32(i % 2), float32(1 - i%2)}
	}
	m.CalculateMetrics(buffer(t, []int{2}, y...), buffer(t, []int{2}, target...))
	assert.InDelta(t, 0.5, m.Metrics(), 1e-12)
}

func TestMeanSquaredErrorMetrics(t *testing.T) {
	m := nn.NewMeanSquaredErrorMetrics()
	assert.Equal(t, "mse", m.MetricsName())

	m.CalculateMetrics(
		buffer(t, []int{2}, []float32{1, 2}),
		buffer(t, []int{2}, []float32{0, 0}),
	)
	assert.InDelta(t, 2.5, m.Metrics(), 1e-12)

	m.Clear()
	assert.Zero(t, m.Metrics())
}
