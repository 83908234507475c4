package nn

import "gonum.org/v1/gonum/mat"

// Parameter is a trainable matrix and its accumulated gradient.
//
// Gradients accumulate across Backward calls until ZeroGrad, which
// optimizers call after each update.
type Parameter struct {
	name  string
	value *mat.Dense
	grad  *mat.Dense
}

// NewParameter creates a parameter with a zero gradient of the same shape.
func NewParameter(name string, value *mat.Dense) *Parameter {
	r, c := value.Dims()
	return &Parameter{
		name:  name,
		value: value,
		grad:  mat.NewDense(r, c, nil),
	}
}

// Name returns the parameter name (e.g. "weight").
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter matrix.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Grad returns the accumulated gradient.
func (p *Parameter) Grad() *mat.Dense {
	return p.grad
}

// Data returns the contiguous backing storage of the value.
func (p *Parameter) Data() []float64 {
	return p.value.RawMatrix().Data
}

// GradData returns the contiguous backing storage of the gradient.
func (p *Parameter) GradData() []float64 {
	return p.grad.RawMatrix().Data
}

// ZeroGrad clears the accumulated gradient.
func (p *Parameter) ZeroGrad() {
	p.grad.Zero()
}
