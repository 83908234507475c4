package optim_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/nn"
	"github.com/born-ml/fit/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func scalar(v, grad float64) *nn.Parameter {
	p := nn.NewParameter("x", mat.NewDense(1, 1, []float64{v}))
	p.GradData()[0] = grad
	return p
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	p := scalar(2.0, 1.0)
	opt := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: 0.1})

	opt.Update()

	// x_new = 2.0 - 0.1 * 1.0
	assert.InDelta(t, 1.9, p.Data()[0], 1e-12)
	assert.Zero(t, p.GradData()[0], "Update must clear gradients")
	assert.InDelta(t, 0.1, opt.LR(), 1e-12)
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	p := scalar(1.0, 1.0)
	opt := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// Step 1: v = 1, x = 1 - 0.1 = 0.9
	opt.Update()
	assert.InDelta(t, 0.9, p.Data()[0], 1e-12)

	// Step 2: v = 0.9 + 1 = 1.9, x = 0.9 - 0.19 = 0.71
	p.GradData()[0] = 1.0
	opt.Update()
	assert.InDelta(t, 0.71, p.Data()[0], 1e-12)
}

func TestSGD_Defaults(t *testing.T) {
	opt := optim.NewSGD(nil, optim.SGDConfig{})
	assert.InDelta(t, 0.01, opt.LR(), 1e-12)
	opt.Update()
}

// TestAdam_FirstStep checks that the bias-corrected first step moves each
// parameter by lr in the direction opposite to its gradient.
func TestAdam_FirstStep(t *testing.T) {
	a, b := scalar(1.0, 0.5), scalar(1.0, -4.0)
	opt := optim.NewAdam([]*nn.Parameter{a, b}, optim.AdamConfig{LR: 0.01})

	opt.Update()

	assert.InDelta(t, 0.99, a.Data()[0], 1e-6)
	assert.InDelta(t, 1.01, b.Data()[0], 1e-6)
	assert.Equal(t, 1, opt.Timestep())
	assert.Zero(t, a.GradData()[0])
}

func TestAdam_Defaults(t *testing.T) {
	opt := optim.NewAdam(nil, optim.AdamConfig{})
	assert.InDelta(t, 0.001, opt.LR(), 1e-12)
}

func TestZeroGrad(t *testing.T) {
	p := scalar(1.0, 3.0)
	for _, opt := range []optim.Optimizer{
		optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{}),
		optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{}),
	} {
		p.GradData()[0] = 3.0
		opt.ZeroGrad()
		assert.Zero(t, p.GradData()[0])
		assert.InDelta(t, 1.0, p.Data()[0], 1e-12, "ZeroGrad must not step")
	}
}

// TestOptimizers_Regression fits y = 2x - 1 with a single Linear layer.
func TestOptimizers_Regression(t *testing.T) {
	const n = 32
	x := frame.New(n, []int{1})
	y := frame.New(n, []int{1})
	for i := 0; i < n; i++ {
		v := float32(i)/n*2 - 1
		x.Sample(i)[0] = v
		y.Sample(i)[0] = 2*v - 1
	}

	tests := []struct {
		name  string
		build func([]*nn.Parameter) optim.Optimizer
	}{
		{"sgd", func(p []*nn.Parameter) optim.Optimizer {
			return optim.NewSGD(p, optim.SGDConfig{LR: 0.1, Momentum: 0.5})
		}},
		{"adam", func(p []*nn.Parameter) optim.Optimizer {
			return optim.NewAdam(p, optim.AdamConfig{LR: 0.02})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := nn.NewSequential(nn.NewLinear(1, 1, rand.New(rand.NewSource(1))))
			opt := tt.build(model.Parameters())
			loss := nn.NewMeanSquaredError()

			for i := 0; i < 1000; i++ {
				loss.Clear()
				model.Backward(loss.CalculateLoss(model.Forward(x, true), y, n))
				opt.Update()
			}

			require.Less(t, loss.Loss(), 1e-3)
			params := model.Parameters()
			assert.InDelta(t, 2.0, params[0].Data()[0], 0.05)
			assert.InDelta(t, -1.0, params[1].Data()[0], 0.05)
			assert.False(t, math.IsNaN(params[0].Data()[0]))
		})
	}
}
