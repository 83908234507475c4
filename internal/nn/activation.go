package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ReLU applies f(x) = max(0, x) element-wise.
type ReLU struct {
	x *mat.Dense
}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies max(0, x).
func (r *ReLU) Forward(x *mat.Dense, train bool) *mat.Dense {
	var y mat.Dense
	y.Apply(func(_, _ int, v float64) float64 {
		return math.Max(0, v)
	}, x)

	r.x = nil
	if train {
		r.x = x
	}
	return &y
}

// Backward passes the gradient where the input was positive.
func (r *ReLU) Backward(dy *mat.Dense) *mat.Dense {
	if r.x == nil {
		panic("ReLU.Backward: no training forward pass to differentiate")
	}

	var dx mat.Dense
	dx.Apply(func(i, j int, g float64) float64 {
		if r.x.At(i, j) > 0 {
			return g
		}
		return 0
	}, dy)
	return &dx
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

// Sigmoid applies f(x) = 1 / (1 + exp(-x)) element-wise.
type Sigmoid struct {
	y *mat.Dense
}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

// Forward applies the logistic function.
func (s *Sigmoid) Forward(x *mat.Dense, train bool) *mat.Dense {
	var y mat.Dense
	y.Apply(func(_, _ int, v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	}, x)

	s.y = nil
	if train {
		s.y = &y
	}
	return &y
}

// Backward computes dx = dy * y * (1 - y).
func (s *Sigmoid) Backward(dy *mat.Dense) *mat.Dense {
	if s.y == nil {
		panic("Sigmoid.Backward: no training forward pass to differentiate")
	}

	var dx mat.Dense
	dx.Apply(func(i, j int, g float64) float64 {
		y := s.y.At(i, j)
		return g * y * (1 - y)
	}, dy)
	return &dx
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid) Parameters() []*Parameter {
	return nil
}
