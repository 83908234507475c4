package optim

import (
	"github.com/born-ml/fit/internal/nn"
	"gonum.org/v1/gonum/floats"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter][]float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Parameters:
//   - params: Model parameters to optimize
//   - config: SGD configuration (LR, Momentum)
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter][]float64),
	}
}

// Update performs a single optimization step and clears the gradients.
func (s *SGD) Update() {
	for _, p := range s.params {
		grad := p.GradData()
		if s.momentum == 0 {
			floats.AddScaled(p.Data(), -s.lr, grad)
			continue
		}

		v, ok := s.velocities[p]
		if !ok {
			v = make([]float64, len(grad))
			s.velocities[p] = v
		}
		floats.Scale(s.momentum, v)
		floats.Add(v, grad)
		floats.AddScaled(p.Data(), -s.lr, v)
	}
	zeroGrad(s.params)
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// LR returns the learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}
