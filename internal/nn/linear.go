package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias row with shape [1, out_features]
//
// Weights are initialized with Xavier/Glorot uniform, biases with zeros.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter
	bias        *Parameter
	x           *mat.Dense // input cached by a training forward pass
}

// NewLinear creates a new Linear layer drawing its weights from rng.
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", Xavier(inFeatures, outFeatures, outFeatures, inFeatures, rng)),
		bias:        NewParameter("bias", mat.NewDense(1, outFeatures, nil)),
	}
}

// Forward computes y = x @ W.T + b.
func (l *Linear) Forward(x *mat.Dense, train bool) *mat.Dense {
	n, c := x.Dims()
	if c != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, c))
	}

	y := mat.NewDense(n, l.outFeatures, nil)
	y.Mul(x, l.weight.value.T())

	b := l.bias.value.RawRowView(0)
	for i := 0; i < n; i++ {
		floats.Add(y.RawRowView(i), b)
	}

	if train {
		l.x = x
	} else {
		l.x = nil
	}
	return y
}

// Backward accumulates dW += dy.T @ x and db += Σ_rows dy, and returns
// dx = dy @ W.
func (l *Linear) Backward(dy *mat.Dense) *mat.Dense {
	if l.x == nil {
		panic("Linear.Backward: no training forward pass to differentiate")
	}
	n, c := dy.Dims()
	if c != l.outFeatures {
		panic(fmt.Sprintf("Linear.Backward: expected gradient with %d features, got %d", l.outFeatures, c))
	}

	var dw mat.Dense
	dw.Mul(dy.T(), l.x)
	l.weight.grad.Add(l.weight.grad, &dw)

	db := l.bias.grad.RawRowView(0)
	for i := 0; i < n; i++ {
		floats.Add(db, dy.RawRowView(i))
	}

	dx := mat.NewDense(n, l.inFeatures, nil)
	dx.Mul(dy, l.weight.value)
	return dx
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
