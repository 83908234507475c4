package nn

import (
	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// conversion splits frame <-> matrix copies for large evaluation batches.
var conversion = parallel.DefaultConfig()

// toDense copies a frame buffer into a [len, nodeSize] matrix.
func toDense(b *frame.Buffer) *mat.Dense {
	n, size := b.Len(), b.NodeSize()
	data := make([]float64, n*size)
	src := b.Data()
	parallel.Rows(n, conversion, func(lo, hi int) {
		for i := lo * size; i < hi*size; i++ {
			data[i] = float64(src[i])
		}
	})
	return mat.NewDense(n, size, data)
}

// fromDense copies m into a new frame buffer with the given per-sample shape.
// The shape must describe m's column count.
func fromDense(m *mat.Dense, shape []int) *frame.Buffer {
	n, _ := m.Dims()
	b := frame.New(n, shape)
	parallel.Rows(n, conversion, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst := b.Sample(i)
			for j, v := range m.RawRowView(i) {
				dst[j] = float32(v)
			}
		}
	})
	return b
}
