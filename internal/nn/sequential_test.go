package nn_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/fit/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMLP(seed int64) *nn.Sequential {
	rng := rand.New(rand.NewSource(seed))
	return nn.NewSequential(
		nn.NewLinear(3, 4, rng),
		nn.NewSigmoid(),
		nn.NewLinear(4, 2, rng),
	)
}

func TestSequential_Shapes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := nn.NewSequential(nn.NewLinear(4, 3, rng), nn.NewReLU())

	x := buffer(t, []int{1, 2, 2},
		[]float32{1, 2, 3, 4},
		[]float32{0, 0, 0, 0},
	)
	y := model.Forward(x, true)
	assert.Equal(t, 2, y.Len())
	assert.Equal(t, []int{3}, y.Shape())

	dx := model.Backward(buffer(t, []int{3}, []float32{1, 1, 1}, []float32{1, 1, 1}))
	assert.Equal(t, 2, dx.Len())
	assert.Equal(t, []int{1, 2, 2}, dx.Shape())
	assert.Equal(t, []int{1, 2, 2}, model.InputShape())
}

func TestSequential_SetInputShape(t *testing.T) {
	model := newMLP(1)
	model.SetInputShape([]int{3})
	assert.Equal(t, []int{3}, model.InputShape())

	assert.Panics(t, func() { model.SetInputShape([]int{2, 2}) })
	assert.Panics(t, func() {
		model.Forward(buffer(t, []int{4}, []float32{1, 2, 3, 4}), false)
	})
}

// TestSequential_GradientCheck compares backprop gradients against central
// differences of the cross-entropy loss.
func TestSequential_GradientCheck(t *testing.T) {
	model := newMLP(7)
	x := buffer(t, []int{3},
		[]float32{0.5, -1, 2},
		[]float32{-0.3, 0.8, 0.1},
	)
	target := buffer(t, []int{2},
		[]float32{1, 0},
		[]float32{0, 1},
	)

	loss := func() float64 {
		l := nn.NewSoftmaxCrossEntropy()
		l.CalculateLoss(model.Forward(x, false), target, 2)
		return l.Loss()
	}

	model.ZeroGrad()
	l := nn.NewSoftmaxCrossEntropy()
	model.Backward(l.CalculateLoss(model.Forward(x, true), target, 2))

	const eps = 1e-3
	for _, p := range model.Parameters() {
		data, grad := p.Data(), p.GradData()
		for k := range data {
			orig := data[k]
			data[k] = orig + eps
			plus := loss()
			data[k] = orig - eps
			minus := loss()
			data[k] = orig

			numeric := (plus - minus) / (2 * eps)
			assert.InDelta(t, numeric, grad[k], 1e-2, "%s[%d]", p.Name(), k)
		}
	}
}

func TestSequential_StateDict(t *testing.T) {
	a, b := newMLP(1), newMLP(2)

	state := a.StateDict()
	assert.Len(t, state, 4)
	for _, key := range []string{"0.weight", "0.bias", "2.weight", "2.bias"} {
		assert.Contains(t, state, key)
	}

	require.NoError(t, b.LoadStateDict(state))
	for key, m := range b.StateDict() {
		assert.Equal(t, state[key].RawMatrix().Data, m.RawMatrix().Data, key)
	}
}

func TestSequential_LoadStateDictErrors(t *testing.T) {
	model := newMLP(1)
	before := append([]float64(nil), model.Parameters()[0].Data()...)

	state := newMLP(2).StateDict()
	delete(state, "2.bias")
	require.ErrorIs(t, model.LoadStateDict(state), nn.ErrMissingParameter)

	rng := rand.New(rand.NewSource(3))
	wide := nn.NewSequential(nn.NewLinear(3, 5, rng), nn.NewSigmoid(), nn.NewLinear(5, 2, rng))
	require.ErrorIs(t, model.LoadStateDict(wide.StateDict()), nn.ErrShapeMismatch)

	assert.Equal(t, before, model.Parameters()[0].Data(), "failed load must not modify parameters")
}
