package nn

import (
	"fmt"

	"github.com/born-ml/fit/internal/frame"
	"gonum.org/v1/gonum/mat"
)

// Sequential chains modules and runs them on frame buffers.
//
// Forward flattens each sample of the input into one matrix row, so
// image-shaped inputs ([1, 28, 28]) feed directly into a Linear layer.
// Backward returns a gradient buffer with the input shape of the last
// training Forward.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, rng),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, rng),
//	)
//	model.SetInputShape([]int{1, 28, 28})
type Sequential struct {
	modules    []Module
	inputShape []int
}

// NewSequential creates a Sequential container from modules.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Add appends a module to the chain.
func (s *Sequential) Add(m Module) {
	s.modules = append(s.modules, m)
}

// Modules returns the chained modules.
func (s *Sequential) Modules() []Module {
	return s.modules
}

// SetInputShape fixes the per-sample input shape.
//
// It panics when the shape does not match the first Linear layer. Without
// a fixed shape, Forward takes the shape of each incoming batch.
func (s *Sequential) SetInputShape(shape []int) {
	size := frame.NodeSize(shape)
	for _, m := range s.modules {
		if l, ok := m.(*Linear); ok {
			if l.InFeatures() != size {
				panic(fmt.Sprintf("Sequential.SetInputShape: shape %v has %d features, first layer expects %d",
					shape, size, l.InFeatures()))
			}
			break
		}
	}
	s.inputShape = append([]int(nil), shape...)
}

// InputShape returns the per-sample input shape (nil until known).
func (s *Sequential) InputShape() []int {
	return s.inputShape
}

// Forward runs every module on x and returns a [len, features] buffer.
func (s *Sequential) Forward(x *frame.Buffer, train bool) *frame.Buffer {
	if s.inputShape != nil && x.NodeSize() != frame.NodeSize(s.inputShape) {
		panic(fmt.Sprintf("Sequential.Forward: expected sample shape %v, got %v", s.inputShape, x.Shape()))
	}
	if s.inputShape == nil || train {
		s.inputShape = append(s.inputShape[:0], x.Shape()...)
	}

	y := s.ForwardDense(toDense(x), train)
	_, c := y.Dims()
	return fromDense(y, []int{c})
}

// Backward propagates dy through the modules in reverse order.
func (s *Sequential) Backward(dy *frame.Buffer) *frame.Buffer {
	dx := s.BackwardDense(toDense(dy))
	return fromDense(dx, s.inputShape)
}

// ForwardDense runs every module on a batch matrix.
func (s *Sequential) ForwardDense(x *mat.Dense, train bool) *mat.Dense {
	for _, m := range s.modules {
		x = m.Forward(x, train)
	}
	return x
}

// BackwardDense propagates a gradient matrix in reverse module order.
func (s *Sequential) BackwardDense(dy *mat.Dense) *mat.Dense {
	for i := len(s.modules) - 1; i >= 0; i-- {
		dy = s.modules[i].Backward(dy)
	}
	return dy
}

// Parameters returns all parameters in module order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// ZeroGrad clears the gradients of every parameter.
func (s *Sequential) ZeroGrad() {
	for _, p := range s.Parameters() {
		p.ZeroGrad()
	}
}

// StateDict returns the parameters keyed "{index}.{name}", where index is
// the module position in the chain (e.g. "0.weight", "2.bias").
func (s *Sequential) StateDict() map[string]*mat.Dense {
	state := make(map[string]*mat.Dense)
	for i, m := range s.modules {
		for _, p := range m.Parameters() {
			state[fmt.Sprintf("%d.%s", i, p.Name())] = p.Value()
		}
	}
	return state
}

// LoadStateDict copies values from state into the parameters.
//
// Every parameter must be present with its exact shape. Nothing is copied
// unless the whole dict validates.
func (s *Sequential) LoadStateDict(state map[string]*mat.Dense) error {
	type pair struct {
		dst *Parameter
		src *mat.Dense
	}
	var pairs []pair

	for i, m := range s.modules {
		for _, p := range m.Parameters() {
			key := fmt.Sprintf("%d.%s", i, p.Name())
			src, ok := state[key]
			if !ok {
				return fmt.Errorf("%w: %s", ErrMissingParameter, key)
			}
			wr, wc := p.Value().Dims()
			sr, sc := src.Dims()
			if wr != sr || wc != sc {
				return fmt.Errorf("%w: %s: expected [%d %d], got [%d %d]", ErrShapeMismatch, key, wr, wc, sr, sc)
			}
			pairs = append(pairs, pair{dst: p, src: src})
		}
	}

	for _, pr := range pairs {
		pr.dst.Value().Copy(pr.src)
	}
	return nil
}
